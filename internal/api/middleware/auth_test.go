package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAuth(t *testing.T) {
	providerID := uuid.New()

	var got uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetProviderID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "valid", header: providerID.String(), status: http.StatusOK},
		{name: "missing", header: "", status: http.StatusUnauthorized},
		{name: "not a uuid", header: "42", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set(ProviderIDHeader, tt.header)
			}
			w := httptest.NewRecorder()

			Auth(next).ServeHTTP(w, r)
			assert.Equal(t, tt.status, w.Code)
		})
	}

	assert.Equal(t, providerID, got)
}

func TestInternalAuth(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.Header.Set(InternalTokenHeader, "secret")
	w := httptest.NewRecorder()
	InternalAuth("secret")(next).ServeHTTP(w, r)
	assert.Equal(t, http.StatusNoContent, w.Code)

	r = httptest.NewRequest(http.MethodPost, "/", nil)
	r.Header.Set(InternalTokenHeader, "guess")
	w = httptest.NewRecorder()
	InternalAuth("secret")(next).ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	r = httptest.NewRequest(http.MethodPost, "/", nil)
	w = httptest.NewRecorder()
	InternalAuth("")(next).ServeHTTP(w, r)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
