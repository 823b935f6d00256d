package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AgendaService/internal/api/handlers"
)

const (
	// ProviderIDHeader заголовок с ID провайдера, выставляется шлюзом после проверки сессии
	ProviderIDHeader = "X-Provider-ID"

	// InternalTokenHeader заголовок с токеном внутреннего вызова
	InternalTokenHeader = "X-Internal-Token"
)

type contextKey string

const providerIDKey contextKey = "provider_id"

// Auth требует валидный X-Provider-ID и кладет его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(ProviderIDHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, "missing provider id")
			return
		}

		providerID, err := uuid.Parse(raw)
		if err != nil {
			handlers.RespondUnauthorized(w, "invalid provider id")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithProviderID(r.Context(), providerID)))
	})
}

// WithProviderID кладет ID провайдера в контекст
func WithProviderID(ctx context.Context, providerID uuid.UUID) context.Context {
	return context.WithValue(ctx, providerIDKey, providerID)
}

// GetProviderID возвращает ID провайдера из контекста
func GetProviderID(ctx context.Context) (uuid.UUID, bool) {
	providerID, ok := ctx.Value(providerIDKey).(uuid.UUID)
	return providerID, ok
}

// InternalAuth пропускает только вызовы с совпадающим X-Internal-Token.
// Пустой token отключает проверку.
func InternalAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(InternalTokenHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				handlers.RespondUnauthorized(w, "invalid internal token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
