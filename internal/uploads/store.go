// Package uploads manages the local image upload directory. Files saved
// here are "locally owned": their public URLs share a configured prefix and
// the store may delete them when the owning review goes away. Any other URL
// is treated as externally hosted and never touched.
package uploads

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

type Store struct {
	dir       string
	urlPrefix string
	logger    *slog.Logger
}

func NewStore(dir, urlPrefix string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	if !strings.HasSuffix(urlPrefix, "/") {
		urlPrefix += "/"
	}
	return &Store{dir: dir, urlPrefix: urlPrefix, logger: logger}, nil
}

// Dir returns the directory the store writes into, for static file serving.
func (s *Store) Dir() string {
	return s.dir
}

// URLPrefix returns the public path prefix for locally owned files.
func (s *Store) URLPrefix() string {
	return s.urlPrefix
}

// Allowed reports whether the file name carries an accepted image extension.
func (s *Store) Allowed(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Save writes an uploaded file under a unique name and returns its public
// URL path.
func (s *Store) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	// filepath.Base strips any directory components a client may smuggle in.
	name := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(file.Filename))
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return s.urlPrefix + name, nil
}

// Owns reports whether a URL path points into the managed upload directory.
func (s *Store) Owns(urlPath string) bool {
	return strings.HasPrefix(urlPath, s.urlPrefix)
}

// Remove deletes the local file behind a managed URL path. Unowned paths
// and already-missing files are ignored.
func (s *Store) Remove(urlPath string) error {
	if !s.Owns(urlPath) {
		return nil
	}
	name := filepath.Base(strings.TrimPrefix(urlPath, s.urlPrefix))
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// RemoveAll removes every locally owned path in the list, logging failures
// and carrying on. Deletion here is cleanup after the review row is gone
// and must never fail the caller.
func (s *Store) RemoveAll(urlPaths []string) {
	for _, p := range urlPaths {
		if err := s.Remove(p); err != nil {
			s.logger.Warn("failed to remove upload file", "path", p, "error", err)
		}
	}
}
