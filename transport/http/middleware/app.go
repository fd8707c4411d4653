package middleware

import (
	"net/http"
	"todoapp/config"
	"todoapp/infras/otel"
	"todoapp/shared/cache"
	"todoapp/shared/constant"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

const (
	otelHTTPScopeName = "http"
)

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
}

type appMiddleware struct {
	otel   otel.Otel
	config *config.Config
	cache  cache.RedisCache
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache) AppMiddleware {
	return &appMiddleware{
		otel:   otel,
		config: config,
		cache:  cache,
	}
}

// Tracing opens one span per request. The span is named after the matched
// route once the router has resolved it, so ids do not explode cardinality.
func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := a.otel.NewScope(r.Context(), otelHTTPScopeName, r.Method+" "+r.URL.Path)
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       r.URL.Path,
			"http.method":     r.Method,
			"http.user_agent": r.Header.Get(constant.RequestHeaderUserAgent),
			"http.host":       r.Host,
			"http.source":     clientIP(r),
			"http.request_id": chiMiddleware.GetReqID(r.Context()),
		})

		recorder := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(recorder, r.WithContext(ctx))

		status := recorder.Status()
		if status == 0 {
			status = http.StatusOK
		}

		attributes := map[string]any{"http.status_code": status}
		if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil && routeCtx.RoutePattern() != "" {
			attributes["http.route"] = routeCtx.RoutePattern()
		}

		scope.SetAttributes(attributes)

		if status >= http.StatusInternalServerError {
			scope.AddEvent(http.StatusText(status))
		}
	})
}
