package logger

import (
	"fmt"
	"log/slog"
	"os"
)

// Logger is a thin wrapper over slog that carries the package/function
// context and offers error helpers that log and return in one call.
type Logger struct {
	l *slog.Logger
}

var base = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
	Level: slog.LevelDebug,
}))

// SetDefault replaces the process-wide base logger. Intended for tests and
// for main to install a handler matching the deployment environment.
func SetDefault(l *slog.Logger) {
	base = l
}

func New(pkg string) Logger {
	return Logger{l: base.With("package", pkg)}
}

func (l Logger) Function(name string) Logger {
	return Logger{l: l.l.With("function", name)}
}

func (l Logger) File(name string) Logger {
	return Logger{l: l.l.With("file", name)}
}

func (l Logger) With(args ...any) Logger {
	return Logger{l: l.l.With(args...)}
}

func (l Logger) Debug(msg string, args ...any) {
	l.l.Debug(msg, args...)
}

func (l Logger) Info(msg string, args ...any) {
	l.l.Info(msg, args...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.l.Warn(msg, args...)
}

// Err logs the error and returns it wrapped with the message.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.l.Error(msg, append(args, "error", err)...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Er logs the error without returning one. Used on paths that already
// carry an error upward or deliberately swallow it.
func (l Logger) Er(msg string, err error, args ...any) {
	l.l.Error(msg, append(args, "error", err)...)
}

// Error logs at error level and returns a new error built from msg.
func (l Logger) Error(msg string, args ...any) error {
	l.l.Error(msg, args...)
	return fmt.Errorf("%s", msg)
}

// ErrMsg is Error without structured arguments.
func (l Logger) ErrMsg(msg string) error {
	l.l.Error(msg)
	return fmt.Errorf("%s", msg)
}

// ErMsg logs at error level without returning.
func (l Logger) ErMsg(msg string, args ...any) {
	l.l.Error(msg, args...)
}
