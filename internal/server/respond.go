// internal/server/respond.go
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"calee/internal/recognition"
	"calee/internal/storage"
	"calee/internal/uploads"
)

// apiResponse is the envelope every /api/v1 endpoint answers with.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// errBadRequest wraps client input problems that are not validator errors.
var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, apiResponse{Success: true, Message: message, Data: data})
}

// writeError maps err onto an HTTP status. Unexpected errors are logged and
// reported without detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.writeErrorData(w, r, err, nil)
}

func (s *Server) writeErrorData(w http.ResponseWriter, r *http.Request, err error, data any) {
	status, message := s.classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", r.Method, "path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()), "err", err)
	}
	writeJSON(w, status, apiResponse{Success: false, Message: message, Data: data})
}

func (s *Server) classify(err error) (int, string) {
	var verrs validator.ValidationErrors
	var maxErr *http.MaxBytesError

	switch {
	case errors.As(err, &verrs):
		return http.StatusBadRequest, validationMessage(verrs)
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file too large, maximum is %s", humanize.IBytes(uint64(s.config.MaxUploadSize)))
	case errors.Is(err, errBadRequest),
		errors.Is(err, storage.ErrUnknownFood),
		errors.Is(err, uploads.ErrUnsupportedFormat),
		errors.Is(err, uploads.ErrNotImage):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, storage.ErrFoodInUse):
		return http.StatusConflict, err.Error()
	case errors.Is(err, recognition.ErrUpstream):
		return http.StatusBadGateway, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func validationMessage(verrs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// decodeJSON reads a JSON body into dst and validates it.
func (s *Server) decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		return badRequest("invalid JSON: %v", err)
	}
	return s.validate.Struct(dst)
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest("invalid %s %q", name, raw)
	}
	return id, nil
}
