package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a post id is not in the current catalog.
	ErrNotFound = errors.New("catalog: post not found")

	// ErrInvalidPost marks a post directory whose metadata could not be loaded.
	// The scanner logs and skips these; they never reach callers of the cache.
	ErrInvalidPost = errors.New("catalog: invalid post")

	// ErrFatalConfig marks a posts root that cannot be listed at all.
	ErrFatalConfig = errors.New("catalog: posts root unavailable")
)

// FatalError reports that the posts root itself could not be read. It is not
// recoverable per request and should fail startup.
type FatalError struct {
	Root string
	Err  error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("catalog: read posts root %s: %v", e.Root, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

func (e *FatalError) Is(target error) bool {
	return target == ErrFatalConfig
}
