/*package logging holds the run mode flag shared by the radprof command and
constructs its loggers.
*/
package logging

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
)

type Flag int

const (
	Nil Flag = iota
	Performance
	Debug
)

// This is handled this way so that every mode doesn't need to pass the flag
// down through its call stack.
var (
	Mode Flag = Nil
)

func (f Flag) String() string {
	switch f {
	case Nil:
		return "Nil"
	case Performance:
		return "Performance"
	case Debug:
		return "Debug"
	}
	return fmt.Sprintf("Flag(%d)", int(f))
}

// New creates a logger which writes timestamped messages at or above level
// to w.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// Level returns the log level which corresponds to the current Mode.
func Level() log.Level {
	if Mode == Debug {
		return log.DebugLevel
	}
	return log.InfoLevel
}

// MemString returns a string containing various statistics on the current
// memory usage of radprof.
func MemString() string {
	ms := runtime.MemStats{}
	runtime.ReadMemStats(&ms)
	return fmt.Sprintf(
		"Alloc - %d MB; Sys - %d MB Integrated - %d MB",
		ms.Alloc>>20, ms.Sys>>20, ms.TotalAlloc>>20,
	)
}

// Timer logs the duration of a stage when Mode is Performance.
type Timer struct {
	logger *log.Logger
	start  time.Time
}

// NewTimer starts timing a stage.
func NewTimer(logger *log.Logger) *Timer {
	return &Timer{logger: logger, start: time.Now()}
}

// Done logs the time since the timer was created and the current memory
// usage. Nothing is logged outside of Performance mode.
func (t *Timer) Done(stage string) {
	if Mode != Performance {
		return
	}
	t.logger.Info(
		stage, "elapsed", time.Since(t.start).Round(time.Millisecond),
		"mem", MemString(),
	)
}
