package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Store persists uploaded item images and returns their public URL.
type Store interface {
	Save(itemID uint, ext string, src io.Reader) (string, error)
}

// LocalStore writes images to local disk under <baseDir>/items, served by
// the router's /uploads static route.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates a disk-backed image store rooted at baseDir.
func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{baseDir: baseDir}
}

// Save writes the image as items/<id><ext>, replacing any previous upload
// for the same item.
func (s *LocalStore) Save(itemID uint, ext string, src io.Reader) (string, error) {
	dir := filepath.Join(s.baseDir, "items")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := fmt.Sprintf("%d%s", itemID, ext)
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}

	return "/uploads/items/" + name, nil
}
