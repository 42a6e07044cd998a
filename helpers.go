package postshelf

import (
	"net/url"
	"path"
)

// BuildURL joins a base URL with path segments.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(append([]string{"/", u.Path}, pathSegments...)...)
	return u.String()
}
