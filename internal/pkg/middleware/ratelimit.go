package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"imobiliaria/internal/pkg/cache"
	"imobiliaria/internal/pkg/logger"
	"imobiliaria/internal/pkg/respond"
)

// RateLimiter aplica janela fixa por IP usando INCR + EXPIRE no Redis.
// Se o Redis falhar a requisição segue.
func RateLimiter(client cache.Client, limit int, period time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			key := "rate-limit:" + ip
			ctx := r.Context()

			count, err := client.Incr(ctx, key)
			if err != nil {
				log.Warn("Rate limiter indisponível; liberando requisição.", map[string]interface{}{"error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				if err := client.Expire(ctx, key, period); err != nil {
					log.Warn("Falha ao definir janela do rate limiter.", map[string]interface{}{"error": err.Error()})
				}
			}

			remaining := int64(limit) - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(limit) {
				w.Header().Set("Retry-After", strconv.Itoa(int(period.Seconds())))
				respond.Status(w, log, http.StatusTooManyRequests, "Limite de requisições excedido. Tente novamente mais tarde.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
