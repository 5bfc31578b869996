package upload

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds the size limit")
	ErrTypeNotAllowed  = errors.New("file type is not allowed")
	ErrMissingFilename = errors.New("file has no name")
)

// Size ceilings per route family.
const (
	MaxDocumentSize = 10 << 20 // 10MB
	MaxEvidenceSize = 50 << 20 // 50MB
)

// allowedTypes maps accepted MIME types to their storage extension.
var allowedTypes = map[string]string{
	"application/pdf":    ".pdf",
	"image/png":          ".png",
	"image/jpeg":         ".jpg",
	"image/webp":         ".webp",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"application/vnd.ms-excel": ".xls",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": ".xlsx",
}

// Validate checks the upload against the allow-list and size ceiling before
// any disk write happens.
func Validate(header *multipart.FileHeader, maxSize int64) (mimeType string, err error) {
	if header.Filename == "" {
		return "", ErrMissingFilename
	}
	if header.Size > maxSize {
		return "", ErrFileTooLarge
	}

	mimeType = strings.TrimSpace(strings.Split(header.Header.Get("Content-Type"), ";")[0])
	if _, ok := allowedTypes[mimeType]; !ok {
		return "", ErrTypeNotAllowed
	}
	return mimeType, nil
}

// StoredName generates a collision-free on-disk name for an upload.
// The original name never touches the filesystem.
func StoredName(mimeType string) string {
	ext, ok := allowedTypes[mimeType]
	if !ok {
		ext = ".bin"
	}
	return uuid.New().String() + ext
}

// SafeOriginalName strips any path components from a client-supplied filename.
func SafeOriginalName(name string) string {
	return filepath.Base(strings.ReplaceAll(name, "\\", "/"))
}
