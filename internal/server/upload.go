// internal/server/upload.go
package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/dustin/go-humanize"

	"calee/internal/models"
	"calee/internal/uploads"
)

// multipartOverhead leaves room for boundaries and headers around the file.
const multipartOverhead = 64 << 10

func (s *Server) handleRecognize(w http.ResponseWriter, r *http.Request) {
	maxSize := s.config.MaxUploadSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.writeError(w, r, err)
			return
		}
		s.writeError(w, r, badRequest("multipart field \"file\" is required: %v", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		s.writeError(w, r, badRequest("failed to read upload: %v", err))
		return
	}
	if int64(len(data)) > maxSize {
		s.writeError(w, r, &http.MaxBytesError{Limit: maxSize})
		return
	}

	ext, contentType, err := uploads.Inspect(header.Filename, data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	name := uploads.FileName(s.now(), ext)
	imageURL, err := s.images.Save(r.Context(), name, data, contentType)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info("image uploaded", "url", imageURL, "size", humanize.IBytes(uint64(len(data))), "content_type", contentType)

	foods, err := s.recognizer.Recognize(r.Context(), data, contentType)
	if err != nil {
		s.logger.Warn("recognition failed", "url", imageURL, "err", err)
		s.writeErrorData(w, r, err, map[string]string{"image_url": imageURL})
		return
	}

	writeData(w, http.StatusOK, "recognized", models.RecognitionResult{ImageURL: imageURL, Foods: foods})
}
