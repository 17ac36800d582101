package utils

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

var (
	loggerMu sync.RWMutex
	logger   = newJSONLogger(os.Stdout, "INFO")
)

// SetupLogger replaces the process logger, e.g. to change level or output.
func SetupLogger(w io.Writer, level string) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = newJSONLogger(w, level)
}

func newJSONLogger(w io.Writer, level string) *slog.Logger {
	lv := new(slog.LevelVar)
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		lv.Set(slog.LevelDebug)
	case "WARN":
		lv.Set(slog.LevelWarn)
	case "ERROR":
		lv.Set(slog.LevelError)
	default:
		lv.Set(slog.LevelInfo)
	}
	host, err := os.Hostname()
	if err != nil {
		host = "localhost"
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: lv,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.MessageKey {
				return slog.Attr{Key: "message", Value: a.Value}
			}
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					return slog.Attr{Key: "timestamp", Value: slog.StringValue(t.Format(time.RFC3339))}
				}
			}
			return a
		},
	})
	return slog.New(h).With("hostname", host)
}

func current() *slog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// LogEvent prints standardized log line with module/action/request_id.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	current().Info(message, "module", strings.ToUpper(module), "action", action, "request_id", strings.TrimSpace(requestID))
}

// LogWarn is LogEvent at warning level, used for degraded-but-handled paths.
func LogWarn(requestID, module, action, message string, err error) {
	args := []any{"module", strings.ToUpper(module), "action", action, "request_id", strings.TrimSpace(requestID)}
	if err != nil {
		args = append(args, "error", err.Error())
	}
	current().Warn(message, args...)
}

func LogError(requestID, module, action, message string, err error) {
	args := []any{"module", strings.ToUpper(module), "action", action, "request_id", strings.TrimSpace(requestID)}
	if err != nil {
		args = append(args, "error", err.Error())
	}
	current().Error(message, args...)
}

// LogHTTP is the access log line written once per request.
func LogHTTP(requestID, method, path string, status int, latency time.Duration, ip string) {
	lvl := slog.LevelInfo
	if status >= 500 {
		lvl = slog.LevelError
	}
	current().Log(context.Background(), lvl, "http request",
		"module", "HTTP",
		"request_id", strings.TrimSpace(requestID),
		"method", method,
		"path", path,
		"status", status,
		"latency_ms", float64(latency.Microseconds())/1000.0,
		"ip", ip,
	)
}
