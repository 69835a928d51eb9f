package logging

import (
	"context"
	"io"
	"log/slog"

	"github.com/golang-cz/devslog"
)

type SlogLogger struct {
	l *slog.Logger
}

func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

// NewDevLogger builds a Logger backed by the devslog handler, which renders
// readable, colorized records for terminal use.
func NewDevLogger(w io.Writer, level slog.Level) *SlogLogger {
	handler := devslog.NewHandler(w, &devslog.Options{
		HandlerOptions: &slog.HandlerOptions{
			Level: level,
		},
		NewLineAfterLog: false,
	})
	return &SlogLogger{l: slog.New(handler)}
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.l.DebugContext(ctx, msg, args...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.l.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.l.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.l.ErrorContext(ctx, msg, args...)
}

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}
