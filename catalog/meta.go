// Package catalog scans a directory of blog posts and serves the parsed
// catalog from a TTL cache.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// PostMetadata describes one post as read from its meta.json.
type PostMetadata struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"` // relative to the post directory
	Ordering    int    `json:"ordering"`
}

// PostRecord pairs metadata with the location of the post on disk.
type PostRecord struct {
	Meta        PostMetadata
	ContentPath string
	Dir         string
}

// Catalog maps post id to record. A Catalog handed out by the cache is shared
// between readers and must not be modified.
type Catalog map[string]PostRecord

// Sorted returns the records ordered by Ordering, then by id.
func (c Catalog) Sorted() []PostRecord {
	out := make([]PostRecord, 0, len(c))
	for _, r := range c {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Meta.Ordering != out[j].Meta.Ordering {
			return out[i].Meta.Ordering < out[j].Meta.Ordering
		}
		return out[i].Meta.ID < out[j].Meta.ID
	})
	return out
}

// Metadata returns the id -> metadata view used for JSON listings.
func (c Catalog) Metadata() map[string]PostMetadata {
	out := make(map[string]PostMetadata, len(c))
	for id, r := range c {
		out[id] = r.Meta
	}
	return out
}

// rawMetadata mirrors PostMetadata with pointers so absent fields can be told
// apart from zero values.
type rawMetadata struct {
	ID          *string `json:"id"`
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Ordering    *int    `json:"ordering"`
}

// LoadMetadata reads and validates dir/metaFile. Every failure wraps
// ErrInvalidPost and names the offending path.
func LoadMetadata(dir, metaFile string) (PostMetadata, error) {
	path := filepath.Join(dir, metaFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return PostMetadata{}, fmt.Errorf("%w: read %s: %v", ErrInvalidPost, path, err)
	}
	var raw rawMetadata
	if err := json.Unmarshal(data, &raw); err != nil {
		return PostMetadata{}, fmt.Errorf("%w: parse %s: %v", ErrInvalidPost, path, err)
	}
	missing := func(field string) error {
		return fmt.Errorf("%w: %s: missing field %q", ErrInvalidPost, path, field)
	}
	switch {
	case raw.ID == nil:
		return PostMetadata{}, missing("id")
	case raw.Title == nil:
		return PostMetadata{}, missing("title")
	case raw.Author == nil:
		return PostMetadata{}, missing("author")
	case raw.Description == nil:
		return PostMetadata{}, missing("description")
	case raw.Ordering == nil:
		return PostMetadata{}, missing("ordering")
	}
	if *raw.ID == "" {
		return PostMetadata{}, fmt.Errorf("%w: %s: empty id", ErrInvalidPost, path)
	}
	if *raw.Ordering < 0 {
		return PostMetadata{}, fmt.Errorf("%w: %s: negative ordering %d", ErrInvalidPost, path, *raw.Ordering)
	}
	meta := PostMetadata{
		ID:          *raw.ID,
		Title:       *raw.Title,
		Author:      *raw.Author,
		Description: *raw.Description,
		Ordering:    *raw.Ordering,
	}
	if raw.Image != nil {
		meta.Image = *raw.Image
	}
	return meta, nil
}
