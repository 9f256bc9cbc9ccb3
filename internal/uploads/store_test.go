package uploads

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobfinder/jobfinder-api/config"
	apperrors "github.com/jobfinder/jobfinder-api/internal/errors"
)

func multipartFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, "/", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(config.UploadsConfig{Dir: t.TempDir(), MaxSizeBytes: 1024})
}

func TestStore_Save(t *testing.T) {
	store := newTestStore(t)
	header := multipartFile(t, "resume.PDF", []byte("%PDF-1.4 test"))

	path, err := store.Save(header, ResumeExts)
	require.NoError(t, err)
	assert.Equal(t, ".pdf", filepath.Ext(path), "extension is lowercased")
	assert.NotContains(t, filepath.Base(path), "resume", "original name never reused")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 test"), data)
}

func TestStore_Save_Rejections(t *testing.T) {
	store := newTestStore(t)

	t.Run("nil header", func(t *testing.T) {
		_, err := store.Save(nil, ResumeExts)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("disallowed extension", func(t *testing.T) {
		header := multipartFile(t, "malware.exe", []byte("mz"))
		_, err := store.Save(header, ResumeExts)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("oversized file", func(t *testing.T) {
		header := multipartFile(t, "big.pdf", []byte(strings.Repeat("a", 2048)))
		_, err := store.Save(header, ResumeExts)
		assert.True(t, apperrors.IsValidation(err))
	})
}
