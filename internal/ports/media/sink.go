package media

import (
	"context"
	"io"
	"net/url"
)

// Sink stores uploaded images and returns a reference clients can resolve.
type Sink interface {
	Store(ctx context.Context, name string, content io.Reader, size int64, contentType string) (string, error)
}

// escapePath percent-encodes name for use as a URL path, keeping "/" separators.
func escapePath(name string) string {
	return (&url.URL{Path: name}).EscapedPath()
}
