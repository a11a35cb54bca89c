// Package log provides the zerolog-based logger used by the command line tool
// and an adapter that lets the renderer log through it.
package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/df07/go-ray-payload/pkg/core"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var (
	pkgLogger = zerolog.Nop()
	mu        sync.RWMutex
)

// Init configures the package logger. When console is true output is
// formatted for terminals, otherwise one JSON object per line is written.
func Init(out io.Writer, level string, console bool) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	mu.Lock()
	defer mu.Unlock()
	pkgLogger = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return nil
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := pkgLogger
	return &l
}

func Debug() *zerolog.Event { return current().Debug() }
func Info() *zerolog.Event  { return current().Info() }
func Warn() *zerolog.Event  { return current().Warn() }

// renderLogger adapts the package logger to core.Logger
type renderLogger struct {
	component string
}

func (r renderLogger) Printf(format string, args ...interface{}) {
	current().Info().
		Str("component", r.component).
		Msg(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

// ForComponent returns a core.Logger that tags every line with component
func ForComponent(component string) core.Logger {
	return renderLogger{component: component}
}
