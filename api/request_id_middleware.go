package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	requestIDKey = "request_id"
	loggerKey    = "request_logger"
)

// requestIDMiddleware tags every request with an id, taken from the X-Request-ID header
// when it is a valid UUID and generated otherwise, and logs the request once it is served.
func requestIDMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		requestID := ctx.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}

		logger := log.With().Str("request_id", requestID).Logger()

		ctx.Set(requestIDKey, requestID)
		ctx.Set(loggerKey, &logger)
		ctx.Header(RequestIDHeader, requestID)

		ctx.Next()

		status := ctx.Writer.Status()

		event := logger.Info()
		if status >= 500 {
			event = logger.Error()
		}

		event.
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Int("status_code", status).
			Dur("duration", time.Since(start)).
			Msg("received an HTTP request")
	}
}

// requestLogger returns the logger tagged with the request id, or the global one
// outside of requestIDMiddleware.
func requestLogger(ctx *gin.Context) *zerolog.Logger {
	if v, ok := ctx.Get(loggerKey); ok {
		if logger, ok := v.(*zerolog.Logger); ok {
			return logger
		}
	}
	return &log.Logger
}
