// internal/uploads/uploads.go
package uploads

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrNotImage          = errors.New("payload is not an image")
)

// AllowedExtensions are the accepted upload file extensions.
var AllowedExtensions = []string{"jpg", "jpeg", "png", "webp"}

// Store persists uploaded images and returns the URL they are served from.
type Store interface {
	Save(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

// Inspect validates an upload by extension and by sniffing its content. It
// returns the normalized extension and the detected MIME type.
func Inspect(filename string, data []byte) (ext, contentType string, err error) {
	ext = strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	allowed := false
	for _, a := range AllowedExtensions {
		if ext == a {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	contentType = http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", "", fmt.Errorf("%w: detected %s", ErrNotImage, contentType)
	}
	return ext, contentType, nil
}

// FileName builds a unique, sortable name such as 20240501_123000_1a2b3c4d.jpg.
func FileName(now time.Time, ext string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s_%s.%s", now.Format("20060102_150405"), id[:8], ext)
}
