package logger

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

type Logger struct {
	*slog.Logger
}

func New(logLevel string) *Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLogLevel(logLevel),
		AddSource: logLevel == "debug",
	}

	handler := slog.NewJSONHandler(os.Stdout, opts)

	return &Logger{
		Logger: slog.New(handler),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.Logger.With("component", component),
	}
}

func (l *Logger) WithFields(fields ...interface{}) *Logger {
	return &Logger{
		Logger: l.Logger.With(fields...),
	}
}

func (l *Logger) TableScan(family string, entries, parseErrors int, duration time.Duration) {
	l.Info("Route table scanned",
		slog.String("family", family),
		slog.Int("entries", entries),
		slog.Int("parse_errors", parseErrors),
		slog.Int64("duration_ms", duration.Milliseconds()))
}

func (l *Logger) ScanError(family string, err error) {
	l.Error("Route table scan failed",
		slog.String("family", family),
		slog.String("error", err.Error()))
}

func (l *Logger) ParseFailure(family string, err error) {
	l.Warn("Route line skipped",
		slog.String("family", family),
		slog.String("error", err.Error()))
}

func (l *Logger) ChangeDetected(family string, entries int, oldSignature, newSignature uint64) {
	l.Info("Route table changed",
		slog.String("family", family),
		slog.Int("entries", entries),
		slog.Uint64("old_signature", oldSignature),
		slog.Uint64("new_signature", newSignature))
}

func (l *Logger) MonitorStart(interval string) {
	l.Info("Route table monitor started",
		slog.String("poll_interval", interval))
}

func (l *Logger) MonitorStop() {
	l.Info("Route table monitor stopped")
}

func (l *Logger) ServiceStart(version, pid string) {
	l.Info("Service starting",
		slog.String("version", version),
		slog.String("pid", pid))
}

func (l *Logger) ConfigLoaded(file string, ipv4Path, ipv6Path string) {
	l.Info("Configuration loaded",
		slog.String("config_file", file),
		slog.String("ipv4_route_path", ipv4Path),
		slog.String("ipv6_route_path", ipv6Path))
}
