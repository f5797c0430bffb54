package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/zenscore/internal/common"
	"github.com/dmitrijs2005/zenscore/internal/logging"
	"github.com/dmitrijs2005/zenscore/internal/server/services"
)

// RequireAuth extracts credentials from the Authorization header and resolves
// them through the auth chokepoint. Two forms are accepted:
//
//	Bearer <token>              — the token is the identifier, no secret
//	Basic  <base64 user:pass>   — user may carry either a username or a token
//
// Every failure, whatever the cause, produces the same 401 body so a caller
// cannot probe which mode or field was wrong.
func RequireAuth(users *services.UserService, logger logging.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identifier, secret, ok := extractCredentials(r)
			if !ok {
				respondWithError(w, http.StatusUnauthorized, "unauthorized", logger)
				return
			}

			user, err := users.Authenticate(r.Context(), identifier, secret)
			if err != nil {
				if errors.Is(err, common.ErrorUnauthorized) {
					respondWithError(w, http.StatusUnauthorized, "unauthorized", logger)
					return
				}
				logger.Error(r.Context(), "authentication backend failure", "error", err)
				respondWithError(w, http.StatusInternalServerError, "internal error", logger)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

func extractCredentials(r *http.Request) (identifier, secret string, ok bool) {
	header := r.Header.Get("Authorization")

	if token, found := strings.CutPrefix(header, "Bearer "); found {
		token = strings.TrimSpace(token)
		if token == "" {
			return "", "", false
		}
		return token, "", true
	}

	return r.BasicAuth()
}

// RequestLogger logs one line per request with status and duration.
func RequestLogger(logger logging.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r)

			logger.Info(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// responseWriter captures the status code written by the handler.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
