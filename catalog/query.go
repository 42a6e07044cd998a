package catalog

// Catalogue answers post queries from a Cache. Each call takes one snapshot,
// so a single query never triggers more than one scan.
type Catalogue struct {
	cache *Cache
}

// NewCatalogue wraps cache.
func NewCatalogue(cache *Cache) *Catalogue {
	return &Catalogue{cache: cache}
}

// Cache returns the underlying cache.
func (q *Catalogue) Cache() *Cache {
	return q.cache
}

// List returns the full catalog. The only error is a failed scan of the
// posts root.
func (q *Catalogue) List() (Catalog, error) {
	return q.cache.Snapshot()
}

// Record returns the catalog entry for id.
func (q *Catalogue) Record(id string) (PostRecord, error) {
	posts, err := q.cache.Snapshot()
	if err != nil {
		return PostRecord{}, err
	}
	rec, ok := posts[id]
	if !ok {
		return PostRecord{}, ErrNotFound
	}
	return rec, nil
}

// Metadata returns the metadata for id, or ErrNotFound.
func (q *Catalogue) Metadata(id string) (PostMetadata, error) {
	rec, err := q.Record(id)
	if err != nil {
		return PostMetadata{}, err
	}
	return rec.Meta, nil
}

// ContentPath returns the content file path for id, or ErrNotFound. The file
// itself is not checked; callers opening it map a missing file to not found.
func (q *Catalogue) ContentPath(id string) (string, error) {
	rec, err := q.Record(id)
	if err != nil {
		return "", err
	}
	return rec.ContentPath, nil
}
