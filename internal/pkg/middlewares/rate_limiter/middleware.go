package rate_limiter

import (
	"net"
	"net/http"
	"strconv"

	"dorm-delivery/internal/handlers/rest/httperr"
	"dorm-delivery/internal/pkg/middlewares/metrics"
	"dorm-delivery/pkg/logger"
)

// Middleware ограничивает запросы по IP клиента: у каждого адреса свой bucket.
func Middleware(log handlerLogger, capacity int, limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ClientKey(r)
			if limiter.Allow(key) {
				next.ServeHTTP(w, r)
				return
			}

			route := metrics.RouteTemplate(r)
			log.With(
				logger.NewField("request", map[string]any{
					"method": r.Method,
					"path":   r.URL.Path,
					"route":  route,
					"client": key,
				}),
			).Warn("rate limit exceeded")

			RateLimitExceededTotal.WithLabelValues(r.Method, route).Inc()

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(capacity))
			w.Header().Set("Retry-After", "1")
			if err := httperr.Write(w, http.StatusTooManyRequests, "Rate limit exceeded. Try again later."); err != nil {
				log.With(logger.NewField("error", err)).Error("failed to write rate limit response")
			}
		})
	}
}

// ClientKey - IP без порта. X-Forwarded-For не учитывается: заголовок подделывается клиентом.
func ClientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
