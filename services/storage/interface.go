package storage

import (
	"context"
	"io"
)

// StorageService stores rendered documents and hands back a public URL.
type StorageService interface {
	UploadRaw(ctx context.Context, r io.Reader, folder, publicID string) (string, error)
}
