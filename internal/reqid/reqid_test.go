package reqid

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("abc-123_XYZ"))
	assert.True(t, IsValid(uuid.New().String()))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("has spaces"))
	assert.False(t, IsValid("semi;colon"))
	assert.False(t, IsValid(strings.Repeat("a", MaxLength+1)))
}

func TestGetOrGenerate(t *testing.T) {
	assert.Equal(t, "client-id-1", GetOrGenerate("client-id-1"))

	generated := GetOrGenerate("not valid!")
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)
}

func TestMiddleware(t *testing.T) {
	var seen string
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	}))

	// Valid inbound ID is preserved.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(Header, "trace-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "trace-42", seen)
	assert.Equal(t, "trace-42", rec.Header().Get(Header))

	// Missing ID gets generated.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.NotEmpty(t, seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(Header))
}
