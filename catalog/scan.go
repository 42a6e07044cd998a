package catalog

import (
	"os"
	"path/filepath"

	"github.com/labstack/gommon/log"
)

const (
	DefaultMetaFile    = "meta.json"
	DefaultContentFile = "post.md"
)

// Logger is the subset of echo.Logger the catalog writes to.
type Logger interface {
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Scanner produces a complete catalog snapshot.
type Scanner interface {
	Scan() (Catalog, error)
}

// DirScanner builds a catalog from the immediate subdirectories of Root.
type DirScanner struct {
	Root        string
	MetaFile    string // default "meta.json"
	ContentFile string // default "post.md"
	Logger      Logger
}

// NewDirScanner returns a DirScanner for root with default file names and
// an Echo-style logger.
func NewDirScanner(root string) *DirScanner {
	return &DirScanner{
		Root:        root,
		MetaFile:    DefaultMetaFile,
		ContentFile: DefaultContentFile,
		Logger:      log.New("catalog"),
	}
}

// Scan lists Root and loads every post directory in it. Directories with
// missing or malformed metadata are logged and skipped. A Root that cannot be
// listed returns a *FatalError.
func (s *DirScanner) Scan() (Catalog, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return nil, &FatalError{Root: s.Root, Err: err}
	}
	metaFile := s.MetaFile
	if metaFile == "" {
		metaFile = DefaultMetaFile
	}
	contentFile := s.ContentFile
	if contentFile == "" {
		contentFile = DefaultContentFile
	}

	posts := make(Catalog, len(entries))
	for _, entry := range entries {
		dir := filepath.Join(s.Root, entry.Name())
		if !isDir(entry, dir) {
			continue
		}
		meta, err := LoadMetadata(dir, metaFile)
		if err != nil {
			s.warnf("skipping %s: %v", dir, err)
			continue
		}
		if prev, ok := posts[meta.ID]; ok {
			s.warnf("post id %q in %s replaces %s", meta.ID, dir, prev.Dir)
		}
		posts[meta.ID] = PostRecord{
			Meta:        meta,
			ContentPath: filepath.Join(dir, contentFile),
			Dir:         dir,
		}
	}
	return posts, nil
}

func (s *DirScanner) warnf(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Warnf(format, args...)
	}
}

// isDir follows symlinks so a linked post directory is still picked up.
func isDir(entry os.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
