// Package utils holds small, dependency-free conversions shared across the
// pipeline. Kept from the teacher's internal/utils/utils.go verbatim for
// the two URI<->path helpers every component that talks to the filesystem
// or the protocol needs.
package utils

import (
	"net/url"
	"strings"
)

// UriToPath converts a "file://" URI to a filesystem path.
func UriToPath(u string) string {
	if strings.HasPrefix(u, "file://") {
		uu, err := url.Parse(u)
		if err == nil {
			return uu.Path
		}
	}
	return u
}

// PathToURI converts a filesystem path to a "file://" URI.
func PathToURI(p string) string {
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}
