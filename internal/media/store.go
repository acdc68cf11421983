// Package media stores uploaded game images on local disk and cleans them up.
package media

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// URLPrefix is the public path under which stored images are served.
const URLPrefix = "/uploads/"

var acceptedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

var ErrOutsidePublicDir = errors.New("image path escapes the public directory")

// Store writes uploads to <publicDir>/uploads and hands back paths relative
// to publicDir, e.g. "/uploads/<uuid>.png".
type Store struct {
	publicDir string
}

// NewStore creates the uploads directory if needed.
func NewStore(publicDir string) (*Store, error) {
	s := &Store{publicDir: publicDir}
	if err := os.MkdirAll(s.UploadsDir(), 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return s, nil
}

// UploadsDir is the directory served at URLPrefix.
func (s *Store) UploadsDir() string {
	return filepath.Join(s.publicDir, "uploads")
}

// Accepts reports whether the upload has an image extension we keep.
func (s *Store) Accepts(fh *multipart.FileHeader) bool {
	if fh == nil {
		return false
	}
	return acceptedExtensions[strings.ToLower(filepath.Ext(fh.Filename))]
}

// Save copies the upload under a generated name and returns its public path.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", errors.New("no image uploaded")
	}
	if !s.Accepts(fh) {
		return "", fmt.Errorf("unsupported image %q", fh.Filename)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	dst, err := os.Create(filepath.Join(s.UploadsDir(), name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("write image file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close image file: %w", err)
	}
	return URLPrefix + name, nil
}

// Remove deletes the file behind a public path returned by Save.
func (s *Store) Remove(rel string) error {
	full, err := s.resolve(rel)
	if err != nil {
		return err
	}
	return os.Remove(full)
}

func (s *Store) resolve(rel string) (string, error) {
	clean := path.Clean("/" + rel)
	if !strings.HasPrefix(clean, URLPrefix) {
		return "", ErrOutsidePublicDir
	}
	return filepath.Join(s.publicDir, filepath.FromSlash(clean)), nil
}
