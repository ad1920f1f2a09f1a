// Package schedule resolves user-supplied schedule expressions into
// either an exact fixed-interval timer period or a parsed cron schedule.
//
// Plain cron evaluators only guarantee minute-level resolution and can
// skew under load, so a small closed set of "every N" expressions is
// special-cased into exact interval timers. Everything else keeps full
// 5-field cron expressiveness, evaluated in UTC.
package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrInvalidSchedule is returned when an expression is neither a known
// interval preset nor a parsable 5-field cron expression. Callers log it
// and leave the affected timer unarmed; it is never fatal to the process.
var ErrInvalidSchedule = errors.New("invalid schedule expression")

// Kind discriminates the two handle representations.
type Kind int

const (
	KindInterval Kind = iota
	KindCron
)

// presets maps the closed set of fine-grained "every N" cron strings to
// exact periods. The table is 1:1 with the settings form's dropdown.
var presets = map[string]time.Duration{
	"* * * * *":    time.Minute,
	"*/10 * * * *": 10 * time.Minute,
	"*/30 * * * *": 30 * time.Minute,
	"0 * * * *":    time.Hour,
	"0 */6 * * *":  6 * time.Hour,
	"0 */12 * * *": 12 * time.Hour,
}

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Handle is a resolved schedule: either a fixed interval or a cron
// schedule, never both.
type Handle struct {
	Expr  string
	Kind  Kind
	Every time.Duration
	sched cron.Schedule
}

// Resolve parses expr into a Handle. Whitespace between fields is
// normalized before the preset lookup so "*/10  * * * *" still maps to
// its exact interval.
func Resolve(expr string) (*Handle, error) {
	norm := strings.Join(strings.Fields(expr), " ")
	if norm == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidSchedule)
	}

	if period, ok := presets[norm]; ok {
		return &Handle{Expr: norm, Kind: KindInterval, Every: period}, nil
	}

	sched, err := parser.Parse(norm)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, norm, err)
	}
	return &Handle{Expr: norm, Kind: KindCron, sched: sched}, nil
}

// Next computes the next run time strictly after now: for an interval
// handle now + period, for a cron handle the next matching instant in UTC.
func (h *Handle) Next(now time.Time) time.Time {
	if h.Kind == KindInterval {
		return now.Add(h.Every)
	}
	return h.sched.Next(now.UTC())
}

// Interval reports the exact period for interval handles.
func (h *Handle) Interval() (time.Duration, bool) {
	if h.Kind != KindInterval {
		return 0, false
	}
	return h.Every, true
}
