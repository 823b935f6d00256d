package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-AgendaService/internal/api/handlers"
)

// idleLimiterTTL через сколько неиспользуемый лимитер удаляется
const idleLimiterTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов с одного IP
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time

	// trustForwarded включается только за прокси, который перезаписывает X-Forwarded-For
	trustForwarded bool
}

// NewRateLimiter создает лимитер rps запросов в секунду с запасом burst
func NewRateLimiter(rps float64, burst int, trustForwarded bool) *RateLimiter {
	return &RateLimiter{
		visitors:       make(map[string]*visitor),
		limit:          rate.Limit(rps),
		burst:          burst,
		now:            time.Now,
		trustForwarded: trustForwarded,
	}
}

// Allow проверяет, можно ли пропустить запрос с ключом key
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > idleLimiterTTL {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > idleLimiterTTL {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// Middleware отвечает 429 при превышении лимита
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(l.clientIP(r)) {
			w.Header().Set("Retry-After", "1")
			handlers.RespondError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP берет адрес из RemoteAddr, а за доверенным прокси первый адрес из X-Forwarded-For
func (l *RateLimiter) clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); l.trustForwarded && forwarded != "" {
		if ip := strings.TrimSpace(strings.Split(forwarded, ",")[0]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
