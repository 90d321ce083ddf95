package engine

import (
	"log/slog"
	"time"

	"github.com/roach88/matapex/internal/host"
)

// Timer emits named timing measurements, the console.time/timeEnd pair of the
// browser. Measurements are taken only while the host debug level is above
// LevelOff; otherwise Time and TimeEnd do nothing.
//
// Timer is not safe for concurrent use.
type Timer struct {
	host    host.Host
	logger  *slog.Logger
	now     func() time.Time
	started map[string]time.Time
}

// NewTimer creates a timer gated on h's debug level.
func NewTimer(h host.Host, logger *slog.Logger) *Timer {
	return &Timer{
		host:    h,
		logger:  logger,
		now:     time.Now,
		started: make(map[string]time.Time),
	}
}

// Enabled reports whether the host debug level asks for timing.
func (t *Timer) Enabled() bool {
	return t.host.DebugLevel() > host.LevelOff
}

// Time starts the timer called name.
func (t *Timer) Time(name string) {
	if !t.Enabled() {
		return
	}
	t.started[name] = t.now()
}

// TimeEnd stops the timer called name and logs the elapsed time at Debug.
// It returns the elapsed time, or false if timing is off or the timer was
// never started.
func (t *Timer) TimeEnd(name string) (time.Duration, bool) {
	if !t.Enabled() {
		return 0, false
	}
	start, ok := t.started[name]
	if !ok {
		t.logger.Warn("timer does not exist", "timer", name)
		return 0, false
	}
	delete(t.started, name)

	elapsed := t.now().Sub(start)
	t.logger.Debug("timer ended", "timer", name, "elapsed", elapsed)
	return elapsed, true
}
