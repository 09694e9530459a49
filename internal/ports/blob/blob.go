package blob

import (
	"context"
	"io"
)

// Store persists an uploaded file and returns its public relative path.
type Store interface {
	Store(ctx context.Context, field, filename string, r io.Reader) (string, error)
}

// File is an uploaded payload on its way to the Store.
type File struct {
	Filename string
	Reader   io.Reader
}
