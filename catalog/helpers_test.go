package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// writePost creates root/dir with a meta.json built from meta and, when
// content is non-empty, a post.md.
func writePost(t *testing.T, root, dir string, meta map[string]interface{}, content string) string {
	t.Helper()
	path := filepath.Join(root, dir)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if meta != nil {
		data, err := json.Marshal(meta)
		if err != nil {
			t.Fatalf("marshal meta: %v", err)
		}
		writeFile(t, filepath.Join(path, DefaultMetaFile), string(data))
	}
	if content != "" {
		writeFile(t, filepath.Join(path, DefaultContentFile), content)
	}
	return path
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func validMeta(id string, ordering int) map[string]interface{} {
	return map[string]interface{}{
		"id":          id,
		"title":       "Title " + id,
		"author":      "Author",
		"description": "About " + id,
		"ordering":    ordering,
	}
}

type recordingLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Warnf(format string, args ...interface{}) {
	l.mu.Lock()
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
	l.mu.Unlock()
}

func (l *recordingLogger) Errorf(format string, args ...interface{}) {
	l.Warnf(format, args...)
}

func (l *recordingLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.warns)
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestScanner(root string) (*DirScanner, *recordingLogger) {
	logger := &recordingLogger{}
	s := NewDirScanner(root)
	s.Logger = logger
	return s, logger
}
