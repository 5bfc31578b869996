package upload

import (
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func header(name, contentType string, size int64) *multipart.FileHeader {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", contentType)
	return &multipart.FileHeader{
		Filename: name,
		Size:     size,
		Header:   h,
	}
}

func TestValidate_Accepted(t *testing.T) {
	t.Parallel()

	mime, err := Validate(header("report.pdf", "application/pdf", 1024), MaxDocumentSize)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mime)

	// parameters after the media type are stripped
	mime, err = Validate(header("scan.png", "image/png; charset=binary", 1024), MaxDocumentSize)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
}

func TestValidate_Rejected(t *testing.T) {
	t.Parallel()

	_, err := Validate(header("", "application/pdf", 10), MaxDocumentSize)
	assert.ErrorIs(t, err, ErrMissingFilename)

	_, err = Validate(header("big.pdf", "application/pdf", MaxDocumentSize+1), MaxDocumentSize)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = Validate(header("script.sh", "application/x-sh", 10), MaxDocumentSize)
	assert.ErrorIs(t, err, ErrTypeNotAllowed)
}

func TestStoredName(t *testing.T) {
	t.Parallel()

	name := StoredName("application/pdf")
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.NotEqual(t, name, StoredName("application/pdf"), "stored names must not collide")

	assert.True(t, strings.HasSuffix(StoredName("unknown/type"), ".bin"))
}

func TestSafeOriginalName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "evidence.pdf", SafeOriginalName("evidence.pdf"))
	assert.Equal(t, "evidence.pdf", SafeOriginalName("../../etc/evidence.pdf"))
	assert.Equal(t, "evidence.pdf", SafeOriginalName(`C:\Users\admin\evidence.pdf`))
}
