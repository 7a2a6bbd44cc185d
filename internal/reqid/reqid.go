// Package reqid assigns request IDs to incoming daemon requests so log
// lines from one request can be correlated.
package reqid

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

const (
	// Header is the HTTP header name for request IDs.
	Header = "X-Request-Id"

	// MaxLength is the maximum allowed length for a request ID.
	MaxLength = 256
)

// Request IDs are alphanumeric plus dashes and underscores.
var requestIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,256}$`)

type contextKey struct{}

// IsValid reports whether a request ID matches the allowed pattern.
func IsValid(id string) bool {
	if id == "" || len(id) > MaxLength {
		return false
	}
	return requestIDPattern.MatchString(id)
}

// Generate returns a new UUID v4 request ID.
func Generate() string {
	return uuid.New().String()
}

// GetOrGenerate returns the provided ID if valid, otherwise a new one.
func GetOrGenerate(providedID string) string {
	if IsValid(providedID) {
		return providedID
	}
	return Generate()
}

// FromContext returns the request ID stored in ctx, or "" if none.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// Middleware ensures every request carries a valid request ID, stores
// it in the request context, and echoes it in the response header.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := GetOrGenerate(r.Header.Get(Header))
		w.Header().Set(Header, id)
		ctx := context.WithValue(r.Context(), contextKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
