// Package ledger holds the weekly hours records and their on-disk store.
package ledger

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"cloud.google.com/go/civil"
	"github.com/wwlorey/hours/internal/calendar"
)

var (
	ErrInvalidWeekStart   = errors.New("week start date must be a Tuesday")
	ErrInvalidAmount      = errors.New("hours must be >= 0")
	ErrInvariantViolation = errors.New("ledger invariant violated")
	ErrCorruptStore       = errors.New("hours file is corrupt")
)

// WeekRecord is the hours logged for one week.
type WeekRecord struct {
	Start                 civil.Date `json:"start"`
	End                   civil.Date `json:"end"`
	IndividualSupervision float64    `json:"individual_supervision"`
	GroupSupervision      float64    `json:"group_supervision"`
	Direct                float64    `json:"direct"`
	Indirect              float64    `json:"indirect"`
}

// NewWeekRecord returns an all-zero record for the week starting at start.
func NewWeekRecord(start civil.Date) WeekRecord {
	return WeekRecord{Start: start, End: start.AddDays(6)}
}

func (w *WeekRecord) field(c Category) *float64 {
	switch c {
	case IndividualSupervision:
		return &w.IndividualSupervision
	case GroupSupervision:
		return &w.GroupSupervision
	case Direct:
		return &w.Direct
	case Indirect:
		return &w.Indirect
	}
	panic(fmt.Sprintf("ledger: unknown category %d", int(c)))
}

// Get returns the hours logged for c.
func (w WeekRecord) Get(c Category) float64 { return *w.field(c) }

// Total is the sum of all four categories.
func (w WeekRecord) Total() float64 {
	return w.IndividualSupervision + w.GroupSupervision + w.Direct + w.Indirect
}

// Week returns the record's period.
func (w WeekRecord) Week() calendar.Week {
	return calendar.Week{Start: w.Start, End: w.End}
}

// Ledger is the ordered collection of week records.
type Ledger struct {
	Weeks []WeekRecord `json:"weeks"`
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{Weeks: []WeekRecord{}}
}

func compareDates(a, b civil.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

// Find returns a copy of the record for start, if present.
func (l *Ledger) Find(start civil.Date) (WeekRecord, bool) {
	i := l.index(start)
	if i < 0 {
		return WeekRecord{}, false
	}
	return l.Weeks[i], true
}

func (l *Ledger) index(start civil.Date) int {
	return slices.IndexFunc(l.Weeks, func(w WeekRecord) bool { return w.Start == start })
}

// FindOrCreate returns the record for start, inserting an all-zero record at
// its sorted position when none exists. The pointer is valid until the next
// insertion.
func (l *Ledger) FindOrCreate(start civil.Date) (*WeekRecord, error) {
	if !calendar.IsWeekStart(start) {
		return nil, fmt.Errorf("%w, got %s", ErrInvalidWeekStart, start)
	}
	if i := l.index(start); i >= 0 {
		return &l.Weeks[i], nil
	}

	pos := len(l.Weeks)
	for i, w := range l.Weeks {
		if w.Start.After(start) {
			pos = i
			break
		}
	}
	l.Weeks = slices.Insert(l.Weeks, pos, NewWeekRecord(start))
	return &l.Weeks[pos], nil
}

// CheckAmount rejects negative and non-finite hour values.
func CheckAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return fmt.Errorf("%w, got %v", ErrInvalidAmount, amount)
	}
	return nil
}

// Accumulate adds amount to category c of the week starting at start.
// The ledger is unchanged when an error is returned.
func (l *Ledger) Accumulate(start civil.Date, c Category, amount float64) error {
	if err := CheckAmount(amount); err != nil {
		return err
	}
	current, _ := l.Find(start)
	sum := *current.field(c) + amount
	if math.IsInf(sum, 0) {
		return fmt.Errorf("%w, %v + %v overflows", ErrInvalidAmount, *current.field(c), amount)
	}
	w, err := l.FindOrCreate(start)
	if err != nil {
		return err
	}
	*w.field(c) = sum
	return nil
}

// Overwrite replaces category c of the week starting at start with amount.
// The ledger is unchanged when an error is returned.
func (l *Ledger) Overwrite(start civil.Date, c Category, amount float64) error {
	if err := CheckAmount(amount); err != nil {
		return err
	}
	w, err := l.FindOrCreate(start)
	if err != nil {
		return err
	}
	*w.field(c) = amount
	return nil
}

// Normalize sorts records by start. Records sharing a start keep their
// relative order so Validate can report them.
func (l *Ledger) Normalize() {
	slices.SortStableFunc(l.Weeks, func(a, b WeekRecord) int {
		return compareDates(a.Start, b.Start)
	})
}
