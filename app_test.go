package postshelf

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTestPost(t *testing.T, root, dir, id string, ordering int, content string) string {
	t.Helper()
	path := filepath.Join(root, dir)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	meta := map[string]interface{}{
		"id":          id,
		"title":       "Title " + id,
		"author":      "Author " + id,
		"description": "About " + id,
		"ordering":    ordering,
	}
	writeTestJSON(t, filepath.Join(path, "meta.json"), meta)
	if content != "" {
		if err := os.WriteFile(filepath.Join(path, "post.md"), []byte(content), 0o644); err != nil {
			t.Fatalf("write content: %v", err)
		}
	}
	return path
}

func writeTestJSON(t *testing.T, path string, v interface{}) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func setupTestApp(t *testing.T, root string, opts ...Option) *App {
	t.Helper()
	a := New(SiteConfig{
		PostsDir:     root,
		URL:          "http://example.com",
		Name:         "Test Blog",
		PostCacheTTL: time.Minute,
	}, opts...)
	t.Cleanup(func() { a.Close() })
	return a
}

func doGet(a *App, target string) *httptest.ResponseRecorder {
	return serve(a, httptestRequest(target))
}

func httptestRequest(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}

func serve(a *App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}
