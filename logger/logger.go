package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Logger provides framework-level structured logging. The connection loop,
// dispatch pipeline, API callers and extensions share this implementation.
//
// Dev mode (FLUXBOT_DEV=1) → colored console output.
// Otherwise → JSON lines at the configured level.
type Logger struct {
	tag string
	zl  zerolog.Logger
}

var (
	mu   sync.RWMutex
	base = newBase(os.Stderr)
)

func newBase(w io.Writer) zerolog.Logger {
	if IsDev() {
		w = zerolog.ConsoleWriter{Out: w}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// New creates a Logger tagged with the given component name
// (e.g. "bot", "connect", "dispatch", "api").
func New(tag string) *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return &Logger{tag: tag, zl: base.With().Str("component", tag).Logger()}
}

// SetOutput redirects all loggers created afterwards to w.
// Used by tests to silence or capture output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	base = newBase(w)
}

// SetLevel sets the global minimum level.
func SetLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

// IsDev returns true when running in development mode.
func IsDev() bool {
	return os.Getenv("FLUXBOT_DEV") != ""
}

func (l *Logger) prefix() string {
	return fmt.Sprintf("[fluxbot:%s]", l.tag)
}

func (l *Logger) Trace(format string, args ...interface{}) {
	l.zl.Trace().Msgf("%s %s", l.prefix(), fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.zl.Debug().Msgf("%s %s", l.prefix(), fmt.Sprintf(format, args...))
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.zl.Info().Msgf("%s %s", l.prefix(), fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.zl.Warn().Msgf("%s %s", l.prefix(), fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.zl.Error().Msgf("%s %s", l.prefix(), fmt.Sprintf(format, args...))
}
