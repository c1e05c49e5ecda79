package api

import (
	"fmt"
	"net/http"
	"time"

	"attendance.service/pkg/logger"
	"github.com/gorilla/handlers"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Wrap applies the middleware chain shared by every deployment:
// tracing, trace-aware logging, access logs, panic recovery and CORS.
func Wrap(router http.Handler, operation string) http.Handler {
	h := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Accept", "Origin"}),
	)(router)

	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{}),
		handlers.PrintRecoveryStack(true),
	)(h)

	h = hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		log.Ctx(r.Context()).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})(h)

	h = loggerMiddleware(h)

	// Wrap the router with OpenTelemetry middleware to create spans for each request
	return otelhttp.NewHandler(h, operation)
}

// loggerMiddleware injects a logger carrying the request's trace ID.
func loggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.EnrichContextWithLogger(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	log.Error().Str("panic", fmt.Sprint(v...)).Msg("Recovered from panic in HTTP handler")
}
