package logger

import (
	"context"
	"log"
	"strings"
	"sync/atomic"

	"github.com/catalogue-dash/service-catalogue/internal/api/http/middleware"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var minLevel atomic.Int32

func init() {
	minLevel.Store(int32(LevelInfo))
}

// ParseLevel maps LOG_LEVEL values; unknown values mean info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// SetLevel sets the minimum level written by every Logger
func SetLevel(l Level) {
	minLevel.Store(int32(l))
}

func enabled(l Level) bool {
	return int32(l) >= minLevel.Load()
}

// Logger provides structured logging for services
type Logger struct {
	requestID string
}

// New creates a logger with request context
func New(ctx context.Context) *Logger {
	requestID := middleware.GetRequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	return &Logger{requestID: requestID}
}

// LogError logs an error with context
func (l *Logger) LogError(operation string, err error) {
	if !enabled(LevelError) {
		return
	}
	log.Printf("[error] request_id=%s operation=%s error=%v", l.requestID, operation, err)
}

// LogInfof logs a formatted info message with context
func (l *Logger) LogInfof(operation string, format string, args ...interface{}) {
	if !enabled(LevelInfo) {
		return
	}
	log.Printf("[info] request_id=%s operation=%s "+format, append([]interface{}{l.requestID, operation}, args...)...)
}

// LogWarnf logs a formatted warning with context
func (l *Logger) LogWarnf(operation string, format string, args ...interface{}) {
	if !enabled(LevelWarn) {
		return
	}
	log.Printf("[warn] request_id=%s operation=%s "+format, append([]interface{}{l.requestID, operation}, args...)...)
}
