// internal/recognition/recognition.go
package recognition

import (
	"context"
	"errors"

	"calee/internal/models"
)

// ErrUpstream marks failures of the external recognition service.
var ErrUpstream = errors.New("recognition service failed")

// Recognizer turns an image into food guesses. contentType is the sniffed
// MIME type of image, e.g. "image/jpeg".
type Recognizer interface {
	Recognize(ctx context.Context, image []byte, contentType string) ([]models.RecognizedFood, error)
}
