package handlers

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LoggingMiddleware logs the details of each HTTP request
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()
		// Wrap ResponseWriter to capture status code
		ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(ww, r)
		slog.Info("HTTP Request",
			"id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.statusCode,
			"duration", time.Since(start),
			"ip", r.RemoteAddr,
		)
	})
}

// Custom ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// SecurityHeadersMiddleware adds standard security headers
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; script-src 'self'")
		next.ServeHTTP(w, r)
	})
}

// RateLimiter struct to hold state
type RateLimiter struct {
	visitors sync.Map
	window   time.Duration
}

// NewRateLimiter creates a new rate limiter with a cleanup goroutine.
// A window of zero disables the limiter entirely.
func NewRateLimiter(window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		window: window,
	}
	if window > 0 {
		// Background cleanup
		go rl.cleanup()
	}
	return rl
}

// cleanup removes old entries to prevent memory leaks
func (rl *RateLimiter) cleanup() {
	for {
		time.Sleep(time.Minute)
		now := time.Now()
		rl.visitors.Range(func(key, value interface{}) bool {
			lastSeen := value.(time.Time)
			if now.Sub(lastSeen) > rl.window {
				rl.visitors.Delete(key)
			}
			return true
		})
	}
}

// Middleware enforces the rate limit per remote address
func (rl *RateLimiter) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if rl.window <= 0 {
			next(w, r)
			return
		}

		ip := r.RemoteAddr
		if lastSeen, ok := rl.visitors.Load(ip); ok {
			if time.Since(lastSeen.(time.Time)) < rl.window {
				slog.Warn("Rate limit exceeded", "ip", ip)
				respondError(w, http.StatusTooManyRequests, "Demasiados intentos. Intenta de nuevo más tarde.")
				return
			}
		}

		rl.visitors.Store(ip, time.Now())
		next(w, r)
	}
}
