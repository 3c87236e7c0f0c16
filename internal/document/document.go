// Package document is the input boundary: it turns a local path or
// gs:// URI into decoded bytes plus a MIME type for the model gateway.
package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
)

// MaxFileSizeBytes is the upload ceiling. Anything larger is rejected
// before it reaches the model.
const MaxFileSizeBytes = 10 << 20 // 10 MB

// Document is a decoded upload ready for the gateway.
type Document struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Loader reads documents from the local filesystem or, when a storage
// client is supplied, from GCS.
type Loader struct {
	gcs *storage.Client
	log *slog.Logger
}

func NewLoader(gcs *storage.Client, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{gcs: gcs, log: logger}
}

// Load reads the document at source, which is either a local path or a
// gs://bucket/object URI.
func (l *Loader) Load(ctx context.Context, source string) (*Document, error) {
	if strings.HasPrefix(source, "gs://") {
		return l.loadGCS(ctx, source)
	}
	return l.loadLocal(source)
}

func (l *Loader) loadLocal(p string) (*Document, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", p, err)
	}
	if info.Size() > MaxFileSizeBytes {
		return nil, fmt.Errorf("file %s is %d bytes; maximum is %d", p, info.Size(), MaxFileSizeBytes)
	}

	mimeType := DetectMIMEType(p)
	if mimeType == "" {
		return nil, fmt.Errorf("cannot determine document type of %s", p)
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	if err := l.validate(mimeType, data); err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return &Document{Name: filepath.Base(p), MIMEType: mimeType, Data: data}, nil
}

// validate runs cheap local checks so malformed uploads fail here
// instead of at the model.
func (l *Loader) validate(mimeType string, data []byte) error {
	if mimeType != "application/pdf" {
		return nil
	}
	pages, err := PDFPageCount(data)
	if err != nil {
		return err
	}
	l.log.Debug("PDF validated.", "pages", pages)
	return nil
}

func (l *Loader) loadGCS(ctx context.Context, uri string) (*Document, error) {
	if l.gcs == nil {
		return nil, fmt.Errorf("no storage client configured for %s", uri)
	}
	bucket, object, err := splitGCSURI(uri)
	if err != nil {
		return nil, err
	}

	mimeType := DetectMIMEType(object)
	if mimeType == "" {
		return nil, fmt.Errorf("cannot determine document type of %s", uri)
	}

	rc, err := l.gcs.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		var gerr *googleapi.Error
		if errors.Is(err, storage.ErrObjectNotExist) || (errors.As(err, &gerr) && gerr.Code == http.StatusNotFound) {
			return nil, fmt.Errorf("object %s does not exist", uri)
		}
		return nil, fmt.Errorf("open %s: %w", uri, err)
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			l.log.Warn("Failed to close GCS reader", "uri", uri, "error", cerr)
		}
	}()

	data, err := io.ReadAll(io.LimitReader(rc, MaxFileSizeBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", uri, err)
	}
	if len(data) > MaxFileSizeBytes {
		return nil, fmt.Errorf("object %s exceeds the %d byte maximum", uri, MaxFileSizeBytes)
	}
	if err := l.validate(mimeType, data); err != nil {
		return nil, fmt.Errorf("%s: %w", uri, err)
	}
	return &Document{Name: path.Base(object), MIMEType: mimeType, Data: data}, nil
}

func splitGCSURI(uri string) (bucket, object string, err error) {
	trimmed := strings.TrimPrefix(uri, "gs://")
	bucket, object, ok := strings.Cut(trimmed, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", fmt.Errorf("malformed GCS URI: %s", uri)
	}
	return bucket, object, nil
}

// DetectMIMEType maps a file name to a MIME type via its extension.
// Returns "" for extensions the pipeline does not understand.
func DetectMIMEType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".txt":
		return "text/plain"
	}
	// Fall back to the platform table for anything else the gateway
	// might learn to accept.
	if mt := mime.TypeByExtension(ext); mt != "" {
		if base, _, err := mime.ParseMediaType(mt); err == nil {
			return base
		}
	}
	return ""
}
