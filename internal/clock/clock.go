// Package clock abstracts "now" so booking windows and occurrence dates can
// be computed against the gym's civil timezone and pinned in tests.
package clock

import "time"

// Clock supplies the current instant, already localized to the gym's timezone.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// System is the wall-clock implementation.
type System struct {
	loc *time.Location
}

// NewSystem creates a Clock backed by the wall clock in the given location.
func NewSystem(loc *time.Location) *System {
	return &System{loc: loc}
}

// Now returns the current wall-clock time in the gym's timezone.
func (s *System) Now() time.Time {
	return time.Now().In(s.loc)
}

// Location returns the gym's timezone.
func (s *System) Location() *time.Location {
	return s.loc
}

// Fixed is a Clock frozen at a single instant, for tests.
type Fixed struct {
	t time.Time
}

// NewFixed creates a Clock that always reports t.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{t: t}
}

// Now returns the frozen instant.
func (f *Fixed) Now() time.Time {
	return f.t
}

// Location returns the frozen instant's location.
func (f *Fixed) Location() *time.Location {
	return f.t.Location()
}

// Set moves the frozen instant, so a test can walk through a scenario.
func (f *Fixed) Set(t time.Time) {
	f.t = t
}
