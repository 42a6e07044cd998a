package catalog

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestCatalogue(t *testing.T, root string) *Catalogue {
	t.Helper()
	s, _ := newTestScanner(root)
	return NewCatalogue(NewCache(s, time.Minute))
}

func TestCatalogueEndToEnd(t *testing.T) {
	root := t.TempDir()
	dirA := writePost(t, root, "a", validMeta("a", 0), "# A")
	writePost(t, root, "b", nil, "# B")

	q := newTestCatalogue(t, root)

	posts, err := q.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("List = %v, want only a", posts)
	}
	if _, ok := posts["a"]; !ok {
		t.Fatalf("List missing a: %v", posts)
	}

	meta, err := q.Metadata("a")
	if err != nil {
		t.Fatalf("Metadata(a) failed: %v", err)
	}
	if meta.ID != "a" || meta.Title != "Title a" {
		t.Errorf("Metadata(a) = %+v", meta)
	}

	path, err := q.ContentPath("a")
	if err != nil {
		t.Fatalf("ContentPath(a) failed: %v", err)
	}
	if path != filepath.Join(dirA, DefaultContentFile) {
		t.Errorf("ContentPath(a) = %q", path)
	}

	if _, err := q.Metadata("b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Metadata(b) err = %v, want ErrNotFound", err)
	}
	if q.Cache().Scans() != 1 {
		t.Errorf("scans = %d, want 1 across all queries", q.Cache().Scans())
	}
}

func TestCatalogueUnknownID(t *testing.T) {
	q := newTestCatalogue(t, t.TempDir())

	if _, err := q.Metadata("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Metadata(nope) err = %v, want ErrNotFound", err)
	}
	if _, err := q.ContentPath("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ContentPath(nope) err = %v, want ErrNotFound", err)
	}
}

func TestCatalogueFatalRoot(t *testing.T) {
	q := newTestCatalogue(t, filepath.Join(t.TempDir(), "missing"))

	if _, err := q.List(); !errors.Is(err, ErrFatalConfig) {
		t.Errorf("List err = %v, want ErrFatalConfig", err)
	}
	if _, err := q.Metadata("a"); !errors.Is(err, ErrFatalConfig) {
		t.Errorf("Metadata err = %v, want ErrFatalConfig", err)
	}
	if _, err := q.ContentPath("a"); errors.Is(err, ErrNotFound) {
		t.Errorf("a fatal scan must not be reported as not found")
	}
}

func TestCatalogueSeesNewPostsAfterTTL(t *testing.T) {
	root := t.TempDir()
	writePost(t, root, "a", validMeta("a", 0), "")

	clock := newFakeClock()
	s, _ := newTestScanner(root)
	q := NewCatalogue(NewCache(s, time.Minute, WithClock(clock.Now)))

	if _, err := q.Metadata("a"); err != nil {
		t.Fatalf("Metadata(a) failed: %v", err)
	}
	writePost(t, root, "new", validMeta("new", 1), "")

	if _, err := q.Metadata("new"); !errors.Is(err, ErrNotFound) {
		t.Errorf("new post visible before TTL expiry: err = %v", err)
	}
	clock.Advance(time.Minute)
	if _, err := q.Metadata("new"); err != nil {
		t.Errorf("new post not visible after TTL: %v", err)
	}
}
