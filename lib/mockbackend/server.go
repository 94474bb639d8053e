// Copyright 2026 The Clogs Authors
// SPDX-License-Identifier: Apache-2.0

package mockbackend

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"

	"github.com/clogs-dev/clogs/lib/clock"
)

type requestStartKey struct{}

// NewHandler wraps the router of NewRouter with the middleware the
// mock backend serves through: panic recovery, permissive CORS for
// browser frontends, and one access log record per request. Request
// durations are measured on the simulator's clock.
func NewHandler(simulator *Simulator, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	var handler http.Handler = NewRouter(simulator, logger)
	handler = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "X-Request-ID"}),
		handlers.ExposedHeaders([]string{"X-Request-ID"}),
	)(handler)
	handler = handlers.CustomLoggingHandler(io.Discard, handler, accessLogFormatter(logger, simulator.clock))
	handler = stampStart(simulator.clock, handler)
	handler = handlers.RecoveryHandler(
		handlers.RecoveryLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError)),
	)(handler)
	return handler
}

// stampStart records the request's arrival time from clk in its
// context for accessLogFormatter.
func stampStart(clk clock.Clock, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), requestStartKey{}, clk.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// accessLogFormatter logs requests through logger instead of writing
// Apache-style lines to the handler's writer.
func accessLogFormatter(logger *slog.Logger, clk clock.Clock) handlers.LogFormatter {
	return func(_ io.Writer, params handlers.LogFormatterParams) {
		level := slog.LevelInfo
		if params.StatusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		var elapsed time.Duration
		if start, ok := params.Request.Context().Value(requestStartKey{}).(time.Time); ok {
			elapsed = clk.Now().Sub(start)
		}
		logger.Log(params.Request.Context(), level, "request",
			"method", params.Request.Method,
			"path", params.URL.Path,
			"query", params.URL.RawQuery,
			"status", params.StatusCode,
			"bytes", params.Size,
			"request_id", params.Request.Header.Get("X-Request-ID"),
			"elapsed", elapsed,
		)
	}
}
