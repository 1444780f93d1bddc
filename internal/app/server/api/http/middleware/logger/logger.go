package logger

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

const RequestIDHeader = "X-Request-ID"

// Observer получает длительность каждого запроса.
type Observer interface {
	ObserveRequest(operation string, status int, d time.Duration)
}

// Logger middleware для логирования входящих HTTP запросов
type Logger struct {
	log      *slog.Logger
	observer Observer
}

// New создает новый экземпляр Logger middleware
func New(log *slog.Logger, observer Observer) *Logger {
	return &Logger{
		log:      log.With(slog.String("component", "http_logger")),
		observer: observer,
	}
}

// Middleware возвращает middleware функцию для логирования HTTP запросов
func (l *Logger) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()

		requestID := ctx.Header(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.SetHeader(RequestIDHeader, requestID)

		method := ctx.Method()
		path := ctx.URL().Path
		remoteAddr := ctx.RemoteAddr()

		next(ctx)

		duration := time.Since(start)
		status := ctx.Status()

		operation := ""
		if op := ctx.Operation(); op != nil {
			operation = op.OperationID
		}
		if l.observer != nil {
			l.observer.ObserveRequest(operation, status, duration)
		}

		l.log.Info("HTTP request",
			slog.String("request_id", requestID),
			slog.String("operation", operation),
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("duration", duration),
			slog.String("remote_addr", remoteAddr),
		)
	}
}
