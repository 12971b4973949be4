// Package schedule decides when a target's cron expression is due and
// remembers which firings have already been serviced.
package schedule

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Expressions carry six fields with seconds first, e.g. "0 0 * * * *" for
// hourly on the hour.
var parser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
)

// Validate reports whether expr is a parseable cron expression.
func Validate(expr string) error {
	if _, err := parser.Parse(expr); err != nil {
		return fmt.Errorf("parse cron expression %q: %w", expr, err)
	}
	return nil
}

// NextFiring returns the latest instant at which expr fires within
// [windowStart, now]. The second return value is false when the expression
// produces no firing inside the window.
func NextFiring(expr string, windowStart, now time.Time) (time.Time, bool, error) {
	sched, err := parser.Parse(expr)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse cron expression %q: %w", expr, err)
	}

	var due time.Time
	found := false
	// cron.Schedule.Next is exclusive of its argument; backing off one
	// nanosecond keeps windowStart itself inside the window.
	for t := sched.Next(windowStart.Add(-time.Nanosecond)); !t.IsZero() && !t.After(now); t = sched.Next(t) {
		due = t
		found = true
	}
	return due, found, nil
}
