// Package logger provides the process-wide zerolog logger.
//
// Call Init once at startup, then Get anywhere. Components derive scoped
// loggers with Component.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger behaviour at initialisation time.
type Options struct {
	// Level is the minimum level: trace, debug, info, warn, error.
	// Empty or unrecognised values mean info.
	Level string
	// Pretty switches to coloured console output instead of JSON.
	Pretty bool
	// Service is attached to every entry when set.
	Service string
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	mu          sync.Mutex
	instance    zerolog.Logger
	initialized bool
)

// Init builds the logger on the first call and returns it. Later calls
// return the existing instance unchanged.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if initialized {
		return instance
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: opts.Output != nil}
	}

	lvl := parseLevel(opts.Level)
	ctx := zerolog.New(out).Level(lvl).With().Timestamp()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	instance = ctx.Logger()
	initialized = true
	return instance
}

// Get returns the logger. Panics if Init has not been called yet.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !initialized {
		panic("logger: Get() called before Init()")
	}
	return instance
}

// Component returns a child of the logger tagged with name.
func Component(name string) zerolog.Logger {
	l := Get()
	return l.With().Str("component", name).Logger()
}

// Reset discards the logger so the next Init rebuilds it. Tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	instance = zerolog.Logger{}
	initialized = false
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
