package server

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	traceSpan "go.opentelemetry.io/otel/trace"
)

// statusWriter records the status code a handler wrote so the middleware
// can log and label it.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// cors applies the permissive policy the API has always shipped with: any
// origin, any method, any header. Preflight requests are answered here and
// never reach the mux.
func (s *Server) cors(next http.Handler) http.Handler {
	if !s.cfg.CORSAllowAll {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			h.Set("Access-Control-Allow-Methods", "*")
			h.Set("Access-Control-Allow-Headers", "*")
			h.Set("Access-Control-Max-Age", "600")
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// instrument wraps one route with logging, duration metrics and a trace
// span. It runs inside the mux so r.Pattern carries the matched route, which
// keeps metric labels bounded regardless of path parameters.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()
		endpoint := routePattern(r)

		var span traceSpan.Span
		if s.tracer != nil {
			carrier := make(map[string]string, 2)
			for key, values := range r.Header {
				if len(values) > 0 {
					carrier[strings.ToLower(key)] = values[0]
				}
			}
			ctx = s.tracer.SetCarrierOnContext(ctx, carrier)
			ctx, span = s.tracer.StartSpan(ctx, r.Method+" "+endpoint)
			defer span.End()
			s.tracer.SetAttributes(span, map[string]interface{}{
				"http.method": r.Method,
				"http.route":  endpoint,
			})
		}

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r.WithContext(ctx))

		if span != nil {
			s.tracer.SetAttributes(span, map[string]interface{}{
				"http.status_code": sw.status,
			})
		}
		if s.metrics != nil {
			s.metrics.RecordRequestDuration(start, endpoint)
		}
		s.logDebug(ctx, "request handled", map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      sw.status,
			"duration_ms": time.Since(start).Milliseconds(),
		})
	})
}

// requireAuth enforces the bearer token on protected routes.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			w.Header().Set("WWW-Authenticate", "Bearer")
			s.writeError(w, http.StatusUnauthorized, detailNotAuthenticated)
			return
		}
		if subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.APIToken)) != 1 {
			w.Header().Set("WWW-Authenticate", "Bearer")
			s.writeError(w, http.StatusUnauthorized, detailInvalidToken)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// routePattern returns the matched mux pattern without its method prefix,
// falling back to the raw path for unmatched requests.
func routePattern(r *http.Request) string {
	pattern := r.Pattern
	if pattern == "" {
		return r.URL.Path
	}
	if _, path, found := strings.Cut(pattern, " "); found {
		return path
	}
	return pattern
}
