package document

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectMIMEType(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"invoice.pdf", "application/pdf"},
		{"SCAN.PDF", "application/pdf"},
		{"photo.jpg", "image/jpeg"},
		{"photo.jpeg", "image/jpeg"},
		{"screenshot.png", "image/png"},
		{"scan.webp", "image/webp"},
		{"notes.txt", "text/plain"},
		{"archive.zzz", ""},
		{"noextension", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectMIMEType(tt.name))
		})
	}
}

func TestLoadLocalTextFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("invoice text"), 0o644))

	doc, err := NewLoader(nil, nil).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", doc.Name)
	assert.Equal(t, "text/plain", doc.MIMEType)
	assert.Equal(t, []byte("invoice text"), doc.Data)
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.zzz")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := NewLoader(nil, nil).Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot determine document type")
}

func TestLoadRejectsOversizeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.txt")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(MaxFileSizeBytes+1))
	require.NoError(t, f.Close())

	_, err = NewLoader(nil, nil).Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum")
}

func TestLoadRejectsCorruptPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o644))

	_, err := NewLoader(nil, nil).Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a readable PDF")
}

func TestLoadGCSWithoutClient(t *testing.T) {
	_, err := NewLoader(nil, nil).Load(context.Background(), "gs://bucket/doc.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no storage client")
}

func TestSplitGCSURI(t *testing.T) {
	bucket, object, err := splitGCSURI("gs://my-bucket/path/to/doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "my-bucket", bucket)
	assert.Equal(t, "path/to/doc.pdf", object)

	for _, bad := range []string{"gs://", "gs://bucketonly", "gs:///object"} {
		_, _, err := splitGCSURI(bad)
		assert.Error(t, err, "uri %q must be rejected", bad)
	}
}

func TestPDFPageCountRejectsGarbage(t *testing.T) {
	_, err := PDFPageCount([]byte("garbage"))
	assert.Error(t, err)
}
