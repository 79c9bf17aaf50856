package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// PhotoStore abstracts where uploaded image bytes land. The production
// implementation writes to local disk; an object-store backend would satisfy
// the same interface.
type PhotoStore interface {
	// Save persists the content under name and returns the public URL.
	Save(ctx context.Context, name string, content io.Reader) (string, error)
}

// DiskStore writes uploads beneath a local directory served statically.
type DiskStore struct {
	root         string
	publicPrefix string
}

// NewDiskStore creates a store rooted at dir/issues, served under
// publicPrefix/issues.
func NewDiskStore(dir, publicPrefix string) *DiskStore {
	return &DiskStore{
		root:         filepath.Join(dir, "issues"),
		publicPrefix: publicPrefix + "/issues",
	}
}

func (s *DiskStore) Save(ctx context.Context, name string, content io.Reader) (string, error) {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	dst, err := os.Create(filepath.Join(s.root, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, content); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return s.publicPrefix + "/" + name, nil
}
