// Package storage keeps product images on local disk and hands out the
// public URLs they are served under. The served route is registered by the
// HTTP layer; this package only owns the files.
package storage

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const publicPrefix = "/images"

type ImageStore struct {
	dir     string
	baseURL string
}

func NewImageStore(dir, publicBaseURL string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("image dir: %w", err)
	}
	return &ImageStore{
		dir:     dir,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// Dir is the directory the HTTP layer serves under PublicPrefix.
func (s *ImageStore) Dir() string { return s.dir }

func (s *ImageStore) PublicPrefix() string { return publicPrefix }

// Save writes the upload under a fresh random name, keeping the original
// extension, and returns the public URL.
func (s *ImageStore) Save(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write image file: %w", err)
	}

	return s.baseURL + publicPrefix + "/" + name, nil
}

// Remove deletes the stored file behind a public URL. A file that is
// already gone returns fs.ErrNotExist; callers treat that as non-fatal.
func (s *ImageStore) Remove(publicURL string) error {
	name := path.Base(publicURL)
	if name == "." || name == "/" || name == "" {
		return fs.ErrNotExist
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("remove image %s: %w", name, err)
	}
	return nil
}
