// Package calendar defines the Tuesday-to-Monday week used by the ledger.
package calendar

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/teambition/rrule-go"
)

// WeekStart is the weekday every tracked week begins on.
const WeekStart = time.Tuesday

// DateLayout is the wire and flag format for dates.
const DateLayout = "2006-01-02"

// Week is a seven-day period. End is always Start plus six days.
type Week struct {
	Start civil.Date
	End   civil.Date
}

// Contains reports whether d falls inside the week.
func (w Week) Contains(d civil.Date) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// Label renders the week as "Jan 28 – Feb 03, 2025".
func (w Week) Label() string {
	s := w.Start.In(time.UTC)
	e := w.End.In(time.UTC)
	return fmt.Sprintf("%s – %s", s.Format("Jan 02"), e.Format("Jan 02, 2006"))
}

func weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}

// mondayOrdinal maps a weekday onto a Monday-first week: 0=Monday .. 6=Sunday.
func mondayOrdinal(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// WeekStartOf returns the first day of the week containing d.
func WeekStartOf(d civil.Date) civil.Date {
	offset := (mondayOrdinal(weekday(d)) - mondayOrdinal(WeekStart) + 7) % 7
	return d.AddDays(-offset)
}

// WeekBounds returns the week containing d.
func WeekBounds(d civil.Date) Week {
	start := WeekStartOf(d)
	return Week{Start: start, End: start.AddDays(6)}
}

// IsWeekStart reports whether d falls on WeekStart.
func IsWeekStart(d civil.Date) bool {
	return weekday(d) == WeekStart
}

// Today returns the civil date of now in now's location.
func Today(now time.Time) civil.Date {
	return civil.DateOf(now)
}

// CurrentWeek returns the week containing now.
func CurrentWeek(now time.Time) Week {
	return WeekBounds(Today(now))
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return d, nil
}

// EnumerateWeeks returns every week from the week starting at from up to and
// including the week containing through, oldest first. from is expected to
// be a week start already. An empty slice is returned when through precedes from.
func EnumerateWeeks(from, through civil.Date) []Week {
	last := WeekStartOf(through)
	if last.Before(from) {
		return nil
	}

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.WEEKLY,
		Dtstart: from.In(time.UTC),
		Until:   last.In(time.UTC),
	})
	if err != nil {
		// WEEKLY with a concrete start never fails option validation.
		panic(fmt.Sprintf("calendar: weekly recurrence: %v", err))
	}

	starts := r.All()
	weeks := make([]Week, 0, len(starts))
	for _, t := range starts {
		start := civil.DateOf(t)
		weeks = append(weeks, Week{Start: start, End: start.AddDays(6)})
	}
	return weeks
}
