package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
)

// LocalStore keeps uploads in one flat directory per category under Root
type LocalStore struct {
	root  string
	names *namer
}

// NewLocalStore creates the category directories under root
func NewLocalStore(root string) (*LocalStore, error) {
	for _, category := range Categories {
		if err := os.MkdirAll(filepath.Join(root, string(category)), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory %s: %w", category, err)
		}
	}

	return &LocalStore{root: root, names: newNamer()}, nil
}

// Dir returns the directory backing a category
func (s *LocalStore) Dir(category Category) string {
	return filepath.Join(s.root, string(category))
}

// Save writes content to disk and returns its public path
func (s *LocalStore) Save(ctx context.Context, category Category, originalName string, content io.Reader, _ int64, _ string) (string, error) {
	if err := checkCategory(category); err != nil {
		return "", err
	}

	storedName, err := s.names.name(originalName)
	if err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	dst := filepath.Join(s.Dir(category), storedName)
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", storedName, err)
	}

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("failed to write %s: %w", storedName, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", storedName, err)
	}

	return PublicPath(category, storedName), nil
}

// Open reads a stored file back from disk
func (s *LocalStore) Open(_ context.Context, category Category, name string) (*Object, error) {
	if err := checkCategory(category); err != nil {
		return nil, err
	}

	base := cleanName(name)
	if base == "" || base != name {
		return nil, ErrNotFound
	}

	f, err := os.Open(filepath.Join(s.Dir(category), base))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", base, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat %s: %w", base, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, ErrNotFound
	}

	return &Object{
		ReadCloser:  f,
		Size:        info.Size(),
		ContentType: contentTypeFor(base),
	}, nil
}

func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
