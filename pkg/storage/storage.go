// Package storage persists uploaded files and hands back the root-relative
// path under which they are later served.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Category selects the destination of an upload. The value doubles as the
// directory name and the public URL prefix.
type Category string

const (
	Documents     Category = "uploads"
	HomeBanners   Category = "homebanners"
	SliderImages  Category = "bannerimages"
	GalleryImages Category = "galleryimages"
)

// Categories lists every upload destination
var Categories = []Category{Documents, HomeBanners, SliderImages, GalleryImages}

// ErrNotFound is returned by Open when no stored file has the given name
var ErrNotFound = errors.New("stored file not found")

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Object is an opened stored file
type Object struct {
	io.ReadCloser
	Size        int64
	ContentType string
}

// Store writes uploaded content and reads it back
type Store interface {
	// Save stores content under a generated name and returns its public path
	Save(ctx context.Context, category Category, originalName string, content io.Reader, size int64, contentType string) (string, error)
	// Open reads back a file previously returned by Save
	Open(ctx context.Context, category Category, name string) (*Object, error)
}

// PublicPath is the root-relative URL of a stored file
func PublicPath(category Category, storedName string) string {
	return path.Join("/", string(category), storedName)
}

// namer issues "<epoch-ms>-<original>" names. Timestamps are strictly
// increasing per namer so files saved within the same millisecond still differ.
type namer struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func newNamer() *namer {
	return &namer{now: time.Now}
}

func (n *namer) name(originalName string) (string, error) {
	base := cleanName(originalName)
	if base == "" {
		return "", fmt.Errorf("invalid file name %q", originalName)
	}

	n.mu.Lock()
	stamp := n.now().UnixMilli()
	if stamp <= n.last {
		stamp = n.last + 1
	}
	n.last = stamp
	n.mu.Unlock()

	return strconv.FormatInt(stamp, 10) + "-" + base, nil
}

// cleanName strips any directory part a client sent along with the file name
func cleanName(originalName string) string {
	base := filepath.Base(strings.ReplaceAll(originalName, "\\", "/"))
	switch base {
	case ".", "/", "..":
		return ""
	}
	return base
}

func checkCategory(category Category) error {
	if !category.Valid() {
		return fmt.Errorf("unknown upload category %q", category)
	}
	return nil
}
