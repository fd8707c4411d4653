package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"todoapp/shared"
	"todoapp/shared/constant"
	"todoapp/transport/http/response"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"
	unknownAgent      = "unknown"
	headerRetryAfter  = "Retry-After"
)

// RateLimit counts requests per client in a fixed window stored in redis.
// A failing cache lets the request through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	limits := a.config.App.RateLimiter

	return func(next http.Handler) http.Handler {
		if !limits.Enable {
			return next
		}

		maxRequests := int64(limits.MaxRequests)
		window := strconv.Itoa(limits.WindowSeconds)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := shared.BuildCacheKey(cacheKeyRateLimit, clientIP(r), userAgent(r))

			count, err := a.cache.Incr(r.Context(), key, limits.WindowSeconds)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable")

				next.ServeHTTP(w, r)

				return
			}

			header := w.Header()
			header.Set(constant.RequestHeaderRateLimit, strconv.FormatInt(maxRequests, 10))
			header.Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(max(0, maxRequests-count), 10))
			header.Set(constant.RequestHeaderRateLimitWindow, window)

			if count > maxRequests {
				header.Set(headerRetryAfter, window)
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func userAgent(r *http.Request) string {
	if ua := strings.TrimSpace(r.Header.Get(constant.RequestHeaderUserAgent)); ua != "" {
		return ua
	}

	return unknownAgent
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the
// peer address without its port.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := strings.TrimSpace(r.Header.Get(constant.RequestHeaderRealIP)); xri != "" {
		return xri
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
