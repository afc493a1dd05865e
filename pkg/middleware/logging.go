package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/amiskov/simple-ledger/pkg/logger"
)

type requestIDKey string

const (
	RequestIDHeader = "X-Request-ID"

	ridKey requestIDKey = "requestID"
)

type LoggingMiddleware struct {
	log *zap.SugaredLogger
}

func NewLoggingMiddleware(l *zap.SugaredLogger) *LoggingMiddleware {
	return &LoggingMiddleware{
		log: l,
	}
}

// RequestID returns the id SetupTracing attached to the request context.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ridKey).(string)
	return id
}

// SetupTracing keeps the caller's X-Request-ID or generates a new one.
func (m *LoggingMiddleware) SetupTracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), ridKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SetupLogging puts a request scoped logger into the context, see logger.Log.
func (m *LoggingMiddleware) SetupLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := m.log.With("request_id", RequestID(r.Context()))
		ctx := logger.WithLogger(r.Context(), l)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (m *LoggingMiddleware) AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Log(r.Context()).Infow("access",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"remote_addr", r.RemoteAddr,
			"duration", time.Since(start),
		)
	})
}

// Recover turns a panic in a handler into a 500.
func (m *LoggingMiddleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Log(r.Context()).Errorf("middleware: panic while serving %s, %v", r.URL.Path, err)
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
