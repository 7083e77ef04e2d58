package source

import (
	"context"
	"errors"
	"strings"
)

// ErrUnsupported is returned by Watch for sources that cannot be watched.
var ErrUnsupported = errors.New("source: watching not supported")

// Source produces the complete current list on every Fetch.
type Source interface {
	Fetch(ctx context.Context) ([]string, error)
	Describe() string
}

// Ensure implementations satisfy Source at compile time.
var (
	_ Source = (*File)(nil)
	_ Source = (*HTTP)(nil)
)

// Open returns an HTTP source for http(s) URLs and a File source otherwise.
func Open(location string, maxItems int) (Source, error) {
	trimmed := strings.TrimSpace(location)
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return NewHTTP(trimmed, maxItems)
	}
	return NewFile(trimmed, maxItems)
}

// keepLast trims items to the trailing n entries. n <= 0 keeps everything.
func keepLast(items []string, n int) []string {
	if n <= 0 || len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}
