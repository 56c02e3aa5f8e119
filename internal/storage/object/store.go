package object

import (
	"context"
	"io"
)

// Store saves rendered documents with their descriptive metadata. Put
// overwrites any existing object under the same file name.
type Store interface {
	Put(ctx context.Context, fileName, contentType string, metadata map[string]string, r io.Reader) (int64, error)
}
