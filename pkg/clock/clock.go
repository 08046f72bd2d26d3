// Package clock makes "now" and "today" injectable.
package clock

import "time"

// Clock reports the current instant in a fixed location.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// Today returns midnight of the current calendar day in the clock's location.
func Today(c Clock) time.Time {
	return StartOfDay(c.Now().In(c.Location()))
}

// StartOfDay truncates t to midnight in t's own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// System reads the wall clock.
type System struct {
	Loc *time.Location
}

// NewSystem returns a wall clock reporting dates in loc (UTC when nil).
func NewSystem(loc *time.Location) System {
	if loc == nil {
		loc = time.UTC
	}
	return System{Loc: loc}
}

func (s System) Now() time.Time           { return time.Now().In(s.Loc) }
func (s System) Location() *time.Location { return s.Loc }

// Fixed always reports the same instant. Useful in tests.
type Fixed struct {
	At time.Time
}

func (f *Fixed) Now() time.Time           { return f.At }
func (f *Fixed) Location() *time.Location { return f.At.Location() }

// Advance moves the fixed clock forward by d.
func (f *Fixed) Advance(d time.Duration) { f.At = f.At.Add(d) }
