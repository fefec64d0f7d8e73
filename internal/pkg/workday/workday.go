// Package workday holds the shop calendar: the time zone that decides "today",
// the weekly off days, and wall-clock shift boundaries.
package workday

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// Clock is a wall-clock time of day such as a shift start.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM" (24h).
func ParseClock(s string) (Clock, error) {
	t, err := civil.ParseTime(s + ":00")
	if err != nil {
		return Clock{}, fmt.Errorf("invalid clock %q, expected HH:MM", s)
	}
	return Clock{Hour: t.Hour, Minute: t.Minute}, nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Minutes returns minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// On places the clock on a calendar date in loc.
func (c Clock) On(d civil.Date, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, c.Hour, c.Minute, 0, 0, loc)
}

// ShiftLength returns end minus start. Night shifts that wrap past midnight are not supported.
func ShiftLength(start, end Clock) time.Duration {
	return time.Duration(end.Minutes()-start.Minutes()) * time.Minute
}

// Calendar decides calendar dates and working days for the shop.
type Calendar struct {
	loc     *time.Location
	offDays map[time.Weekday]bool
	now     func() time.Time
}

// NewCalendar builds a calendar for the IANA zone name.
func NewCalendar(timezone string, offDays []time.Weekday) (*Calendar, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", timezone, err)
	}
	off := make(map[time.Weekday]bool, len(offDays))
	for _, d := range offDays {
		off[d] = true
	}
	return &Calendar{loc: loc, offDays: off, now: time.Now}, nil
}

// WithClock returns a copy of the calendar that reads the current instant from now.
func (c *Calendar) WithClock(now func() time.Time) *Calendar {
	cp := *c
	cp.now = now
	return &cp
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

// Now returns the current instant in the shop's zone.
func (c *Calendar) Now() time.Time {
	return c.now().In(c.loc)
}

// Today returns the calendar date of the current instant in the shop's zone.
func (c *Calendar) Today() civil.Date {
	return c.DateOf(c.now())
}

// DateOf returns the shop-local calendar date of t.
func (c *Calendar) DateOf(t time.Time) civil.Date {
	return civil.DateOf(t.In(c.loc))
}

func (c *Calendar) IsWorkingDay(d civil.Date) bool {
	return !c.offDays[d.In(time.UTC).Weekday()]
}

// Days lists every date from start to end inclusive.
func (c *Calendar) Days(start, end civil.Date) []civil.Date {
	if end.Before(start) {
		return nil
	}
	days := make([]civil.Date, 0, end.DaysSince(start)+1)
	for d := start; !d.After(end); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// WorkingDays counts the working days from start to end inclusive.
func (c *Calendar) WorkingDays(start, end civil.Date) int {
	n := 0
	for _, d := range c.Days(start, end) {
		if c.IsWorkingDay(d) {
			n++
		}
	}
	return n
}

// InclusiveDays is end - start + 1 in whole calendar days.
func InclusiveDays(start, end civil.Date) int {
	return end.DaysSince(start) + 1
}
