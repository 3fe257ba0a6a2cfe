package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/felixge/httpsnoop"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

// Области ограничителей в meta ответа 429
const (
	ScopeIP    = "IP"
	ScopeAdmin = "ADMIN"
)

// RateLimitMeta meta ответа 429
type RateLimitMeta struct {
	Scope string `json:"scope,omitempty"`
	Retry string `json:"retry"`
	Max   int    `json:"max"`
}

// RateLimit ограничивает частоту запросов с одного IP.
// При недоступности Redis запрос пропускается.
func RateLimit(limiter RateLimiter, scope string, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)

			allowed, err := limiter.Allow(r.Context(), ip)
			if err != nil {
				log.Warn("%s %s - Rate limiter unavailable, passing request: %v", r.Method, r.URL.Path, err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				log.Warn("%s %s - Rate limit exceeded: ip=%s", r.Method, r.URL.Path, ip)
				respondLimited(w, limiter, scope)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminBruteforce ограничивает подбор админского токена.
// Учитываются только ответы 401, поэтому ставится до AdminAuth.
func AdminBruteforce(limiter BruteforceLimiter, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)

			exceeded, err := limiter.Exceeded(r.Context(), ip)
			if err != nil {
				log.Warn("%s %s - Admin limiter unavailable, passing request: %v", r.Method, r.URL.Path, err)
				next.ServeHTTP(w, r)
				return
			}
			if exceeded {
				log.Warn("%s %s - Admin failures limit exceeded: ip=%s", r.Method, r.URL.Path, ip)
				respondLimited(w, limiter, ScopeAdmin)
				return
			}

			m := httpsnoop.CaptureMetrics(next, w, r)
			if m.Code != http.StatusUnauthorized {
				return
			}
			if _, err := limiter.Allow(r.Context(), ip); err != nil {
				log.Warn("%s %s - Failed to count admin failure: %v", r.Method, r.URL.Path, err)
			}
		})
	}
}

func respondLimited(w http.ResponseWriter, limiter RateLimiter, scope string) {
	w.Header().Set("Retry-After", strconv.Itoa(int(limiter.Window().Seconds())))
	handlers.RespondTooManyRequests(w, handlers.KindRateLimit, RateLimitMeta{
		Scope: scope,
		Retry: formatRetry(limiter.Window()),
		Max:   limiter.Limit(),
	})
}

// formatRetry окно в виде "5m", если делится на минуты, иначе "90s"
func formatRetry(d time.Duration) string {
	if d >= time.Minute && d%time.Minute == 0 {
		return fmt.Sprintf("%dm", int(d/time.Minute))
	}
	return fmt.Sprintf("%ds", int(d/time.Second))
}

// ClientIP адрес клиента с учетом X-Forwarded-For
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}
