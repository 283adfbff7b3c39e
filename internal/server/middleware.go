// internal/server/middleware.go
package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"calee/internal/models"
	"calee/internal/storage"
)

// deviceHeader selects the user a request acts as.
const deviceHeader = "X-Device-ID"

type ctxKey int

const userKey ctxKey = iota

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			s.logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()))
		}()

		next.ServeHTTP(ww, r)
	})
}

// resolveUser loads (or creates) the user for the device header; requests
// without one act as the default user.
func (s *Server) resolveUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deviceID := strings.TrimSpace(r.Header.Get(deviceHeader))
		if deviceID == "" {
			deviceID = storage.DefaultDeviceID
		}
		if len(deviceID) > 100 {
			s.writeError(w, r, badRequest("%s too long", deviceHeader))
			return
		}

		user, err := s.storage.EnsureUser(r.Context(), deviceID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}
