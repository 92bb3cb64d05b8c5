package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pillbox/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// The duration is rounded to the nearest millisecond.
// Example output: "Found 3 pills (412ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// SearchHooks returns hooks that log every search outcome at debug level.
// main registers them with [observability.SetSearchHooks].
func (c *CLI) SearchHooks() observability.SearchHooks {
	return logHooks{logger: c.Logger}
}

type logHooks struct {
	observability.NoopSearchHooks
	logger *log.Logger
}

func (h logHooks) OnSearchComplete(_ context.Context, ev observability.SearchEvent) {
	kv := []any{"host", ev.Host, "status", ev.StatusCode, "pills", ev.Pills,
		"elapsed", ev.Duration.Round(time.Millisecond)}
	if ev.Err != nil {
		kv = append(kv, "err", ev.Err)
	}
	h.logger.Debug("search finished", kv...)
}
