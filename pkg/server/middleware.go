/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/google/uuid"

	cnserrors "github.com/NVIDIA/osrange/pkg/errors"
)

type contextKey string

const (
	contextKeyRequestID contextKey = "requestID"

	// HeaderRequestID carries the request ID in both directions.
	HeaderRequestID = "X-Request-Id"

	// HeaderAPIVersion reports the negotiated API version.
	HeaderAPIVersion = "X-API-Version"

	// DefaultAPIVersion is used when the client does not ask for a specific one.
	DefaultAPIVersion = "v1"

	maxRequestIDLength = 128
)

var (
	supportedAPIVersions = map[string]bool{"v1": true}
	vendorMediaType      = regexp.MustCompile(`^application/vnd\.nvidia\.osrange\.(v[0-9]+)\+json`)
)

// RequestID returns the request ID stored in ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID).(string)
	return id
}

// withMiddleware wraps an API handler with request ID, version, rate limit and logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return s.requestIDMiddleware(s.versionMiddleware(s.rateLimitMiddleware(s.loggingMiddleware(next))))
}

func (s *Server) requestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.New().String()
		}
		w.Header().Set(HeaderRequestID, id)
		next(w, r.WithContext(context.WithValue(r.Context(), contextKeyRequestID, id)))
	}
}

func (s *Server) versionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(HeaderAPIVersion, negotiateAPIVersion(r))
		next(w, r)
	}
}

func (s *Server) rateLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			WriteError(w, r, http.StatusTooManyRequests, cnserrors.ErrCodeRateLimitExceeded,
				"Rate limit exceeded", true, map[string]any{
					"limit": float64(s.config.RateLimit),
					"burst": s.config.RateLimitBurst,
				})
			return
		}
		next(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		slog.Debug("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"request_id", RequestID(r.Context()),
			"duration", time.Since(start),
		)
	}
}

// negotiateAPIVersion picks the API version from a vendor media type in Accept.
func negotiateAPIVersion(r *http.Request) string {
	m := vendorMediaType.FindStringSubmatch(r.Header.Get("Accept"))
	if len(m) == 2 && isValidAPIVersion(m[1]) {
		return m[1]
	}
	return DefaultAPIVersion
}

func isValidAPIVersion(v string) bool {
	return supportedAPIVersions[v]
}
