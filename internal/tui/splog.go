package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// consoleHandler writes bare messages without timestamps or level prefixes
type consoleHandler struct {
	writer    io.Writer
	debugMode bool
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	if level == slog.LevelDebug {
		return h.debugMode
	}
	return true
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	_, err := fmt.Fprintln(h.writer, record.Message)
	return err
}

func (h *consoleHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *consoleHandler) WithGroup(_ string) slog.Handler {
	return h
}

// fanoutHandler sends each record to every enabled handler
type fanoutHandler struct {
	handlers []slog.Handler
}

func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		if err := handler.Handle(ctx, record.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithAttrs(attrs)
	}
	return &fanoutHandler{handlers: next}
}

func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithGroup(name)
	}
	return &fanoutHandler{handlers: next}
}

// LogFileOptions configures the rotated log file
type LogFileOptions struct {
	Path       string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
}

// SplogOptions configures a Splog
type SplogOptions struct {
	Writer io.Writer
	Debug  bool
	File   *LogFileOptions
}

// Splog provides structured logging and output
type Splog struct {
	logger    *slog.Logger
	writer    io.Writer
	logWriter io.WriteCloser
}

// NewSplog creates a console-only splog writing to stdout.
// Debug messages are enabled when the DEBUG environment variable is set.
func NewSplog() *Splog {
	splog, _ := NewSplogWithOptions(SplogOptions{Debug: os.Getenv("DEBUG") != ""})
	return splog
}

// NewSplogWithOptions creates a splog with optional file logging
func NewSplogWithOptions(opts SplogOptions) (*Splog, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}
	splog := &Splog{writer: writer}

	handlers := []slog.Handler{&consoleHandler{writer: writer, debugMode: opts.Debug}}

	if opts.File != nil && opts.File.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File.Path), 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		rotated := &lumberjack.Logger{
			Filename:   opts.File.Path,
			MaxSize:    opts.File.MaxSize,
			MaxBackups: opts.File.MaxBackups,
			MaxAge:     opts.File.MaxAge,
			Compress:   false,
		}
		splog.logWriter = rotated

		handlers = append(handlers, slog.NewTextHandler(rotated, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.Attr{Key: a.Key, Value: slog.StringValue(a.Value.Time().Format("2006-01-02 15:04:05.000"))}
				}
				return a
			},
		}))
	}

	splog.logger = slog.New(&fanoutHandler{handlers: handlers})
	return splog, nil
}

func (s *Splog) log(level slog.Level, prefix, format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	s.logger.Log(context.Background(), level, prefix+msg)
}

// Info writes an info message
func (s *Splog) Info(format string, args ...any) {
	s.log(slog.LevelInfo, "", format, args...)
}

// Warn writes a warning message
func (s *Splog) Warn(format string, args ...any) {
	s.log(slog.LevelWarn, "⚠️  ", format, args...)
}

// Error writes an error message
func (s *Splog) Error(format string, args ...any) {
	s.log(slog.LevelError, "❌ ", format, args...)
}

// Debug writes a debug message
func (s *Splog) Debug(format string, args ...any) {
	s.log(slog.LevelDebug, "", format, args...)
}

// Tip writes a tip message
func (s *Splog) Tip(format string, args ...any) {
	s.log(slog.LevelInfo, "💡 ", format, args...)
}

// Page writes raw output to the console only
func (s *Splog) Page(content string) {
	_, _ = fmt.Fprint(s.writer, content)
}

// Newline writes a newline
func (s *Splog) Newline() {
	_, _ = fmt.Fprintln(s.writer)
}

// Close closes the log file if one was opened
func (s *Splog) Close() error {
	if s.logWriter != nil {
		return s.logWriter.Close()
	}
	return nil
}
