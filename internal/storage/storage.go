// Package storage persists uploaded menu images on the local filesystem.
// Files are grouped per tenant and served back through the HTTP layer's
// /uploads/ file server.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Store saves and removes tenant-scoped files under a base directory.
type Store interface {
	// Save writes the content and returns the path relative to the base
	// directory, suitable for building a public URL.
	Save(taxID, originalName string, content io.Reader) (string, error)
	Remove(relativePath string) error
}

// LocalStore is a filesystem-backed Store.
type LocalStore struct {
	baseDir string
	logger  zerolog.Logger
}

// NewLocalStore creates the base directory if needed and returns a store
// rooted there.
func NewLocalStore(baseDir string, logger zerolog.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &LocalStore{
		baseDir: baseDir,
		logger:  logger.With().Str("store", "local").Logger(),
	}, nil
}

// Save writes the file under <base>/<taxID>/<millis>_<sanitized-name>. The
// timestamp prefix keeps repeated uploads of the same filename from
// clobbering each other.
func (s *LocalStore) Save(taxID, originalName string, content io.Reader) (string, error) {
	dir := filepath.Join(s.baseDir, taxID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create tenant directory: %w", err)
	}

	name := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), sanitizeName(originalName))
	fullPath := filepath.Join(dir, name)

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	relative := filepath.ToSlash(filepath.Join(taxID, name))
	s.logger.Debug().Str("path", relative).Msg("file stored")
	return relative, nil
}

// Remove deletes a previously saved file. Paths escaping the base directory
// are rejected.
func (s *LocalStore) Remove(relativePath string) error {
	cleaned := filepath.Clean(relativePath)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) || filepath.IsAbs(cleaned) {
		return fmt.Errorf("invalid file path %q", relativePath)
	}

	if err := os.Remove(filepath.Join(s.baseDir, cleaned)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// sanitizeName keeps only characters safe for a filename; everything else
// becomes an underscore.
func sanitizeName(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
