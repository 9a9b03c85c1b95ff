// Package logger holds the process-wide slog logger. It stays silent below
// error level unless verbose mode raises it to debug; the gate, executor,
// and rule loader all report through Debug so attempted command strings
// never reach normal output.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	log  *slog.Logger
	once sync.Once
)

// Options configures the logger.
type Options struct {
	// Verbose logs at debug level instead of error
	Verbose bool
	// Output is the writer for log output (defaults to os.Stderr)
	Output io.Writer
}

// Init initializes the global logger with the given options.
// It is safe to call multiple times; only the first call takes effect.
func Init(opts Options) {
	once.Do(func() {
		output := opts.Output
		if output == nil {
			output = os.Stderr
		}

		level := slog.LevelError
		if opts.Verbose {
			level = slog.LevelDebug
		}

		log = slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level}))
	})
}

// Debug logs at debug level. Safe before Init; messages are dropped until
// a logger exists.
func Debug(msg string, args ...any) {
	if log != nil {
		log.Debug(msg, args...)
	}
}

// Reset resets the logger state. Used for testing.
func Reset() {
	once = sync.Once{}
	log = nil
}
