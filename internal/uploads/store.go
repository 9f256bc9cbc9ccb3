// Package uploads stores user-submitted files (resumes, company logos) on
// local disk under randomized names.
package uploads

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/jobfinder/jobfinder-api/config"
	apperrors "github.com/jobfinder/jobfinder-api/internal/errors"
)

// Extension allowlists per upload slot.
var (
	ResumeExts = []string{".pdf"}
	LogoExts   = []string{".png", ".jpg", ".jpeg", ".webp"}
)

// Store saves uploads under a base directory. The returned paths are
// relative to the process working directory and are what gets persisted.
type Store struct {
	dir     string
	maxSize int64
}

// New creates a Store from config. The directory is created lazily on the
// first save.
func New(cfg config.UploadsConfig) *Store {
	return &Store{dir: cfg.Dir, maxSize: cfg.MaxSizeBytes}
}

// MaxSize returns the per-file size limit in bytes.
func (s *Store) MaxSize() int64 { return s.maxSize }

// Dir returns the base directory uploads are stored under.
func (s *Store) Dir() string { return s.dir }

// Save validates and writes the uploaded file, returning its stored path.
// The original filename only contributes its extension; the stored name is
// a fresh UUID.
func (s *Store) Save(header *multipart.FileHeader, allowedExts []string) (string, error) {
	if header == nil {
		return "", apperrors.Validation("a file upload is required")
	}
	if header.Size > s.maxSize {
		return "", apperrors.Validationf("file exceeds the %d byte limit", s.maxSize)
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !slices.Contains(allowedExts, ext) {
		return "", apperrors.Validationf("file type %q is not allowed", ext)
	}

	src, err := header.Open()
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to open upload")
	}
	defer src.Close()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to create upload directory")
	}

	path := filepath.Join(s.dir, uuid.NewString()+ext)
	dst, err := os.Create(path)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to store upload")
	}
	defer dst.Close()

	// LimitReader guards against a forged Content-Length in the part header.
	if _, err := io.Copy(dst, io.LimitReader(src, s.maxSize+1)); err != nil {
		_ = os.Remove(path)
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to store upload")
	}
	return path, nil
}
