package ledger

import (
	"errors"
	"fmt"
	"math"
	"time"

	"cloud.google.com/go/civil"
	"github.com/wwlorey/hours/internal/calendar"
	"go.uber.org/multierr"
)

// Invariant identifies a structural rule every persisted ledger obeys.
type Invariant int

const (
	StartOnWeekday Invariant = iota + 1
	EndAligned
	UniqueStart
	NonNegative
	SortedByStart
)

func (i Invariant) String() string {
	switch i {
	case StartOnWeekday:
		return "start on week-start weekday"
	case EndAligned:
		return "end is start plus six days"
	case UniqueStart:
		return "one record per week"
	case NonNegative:
		return "non-negative hours"
	case SortedByStart:
		return "sorted by start"
	}
	return fmt.Sprintf("invariant(%d)", int(i))
}

// Violation describes one broken invariant.
type Violation struct {
	Invariant Invariant
	Start     civil.Date
	Detail    string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("week %s: %s (%s)", v.Start, v.Detail, v.Invariant)
}

// Is makes every violation match ErrInvariantViolation.
func (v *Violation) Is(target error) bool {
	return target == ErrInvariantViolation
}

// Validate checks every invariant and returns all violations combined, or nil.
func (l *Ledger) Validate() error {
	var err error
	seen := make(map[civil.Date]bool, len(l.Weeks))

	for i, w := range l.Weeks {
		if !w.Start.IsValid() {
			err = multierr.Append(err, &Violation{StartOnWeekday, w.Start, "start is not a valid date"})
			continue
		}
		if !calendar.IsWeekStart(w.Start) {
			err = multierr.Append(err, &Violation{StartOnWeekday, w.Start,
				fmt.Sprintf("starts on %s, not %s", w.Start.In(time.UTC).Weekday(), calendar.WeekStart)})
		}
		if w.End != w.Start.AddDays(6) {
			err = multierr.Append(err, &Violation{EndAligned, w.Start,
				fmt.Sprintf("end %s should be %s", w.End, w.Start.AddDays(6))})
		}
		if seen[w.Start] {
			err = multierr.Append(err, &Violation{UniqueStart, w.Start, "duplicate week"})
		}
		seen[w.Start] = true

		for _, c := range Categories {
			v := w.Get(c)
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				err = multierr.Append(err, &Violation{NonNegative, w.Start,
					fmt.Sprintf("%s is %v", c.Key(), v)})
			}
		}

		if i > 0 && w.Start.Before(l.Weeks[i-1].Start) {
			err = multierr.Append(err, &Violation{SortedByStart, w.Start,
				fmt.Sprintf("out of order after %s", l.Weeks[i-1].Start)})
		}
	}
	return err
}

// Violations unpacks the error returned by Validate.
func Violations(err error) []*Violation {
	var out []*Violation
	for _, e := range multierr.Errors(err) {
		var v *Violation
		if errors.As(e, &v) {
			out = append(out, v)
		}
	}
	return out
}
