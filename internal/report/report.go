// Package report derives read-only views of a ledger: list rows, totals and
// licensure progress.
package report

import (
	"math"

	"cloud.google.com/go/civil"
	"github.com/wwlorey/hours/internal/calendar"
	"github.com/wwlorey/hours/internal/ledger"
)

// Targets are the licensure requirements progress is measured against.
type Targets struct {
	TotalHours       float64
	DirectHours      float64
	MinMonths        float64
	MinWeeklyAverage float64
}

// Progress is one measured quantity against its target.
type Progress struct {
	Current    float64 `json:"current"`
	Target     float64 `json:"target"`
	Percentage float64 `json:"percentage"`
}

func newProgress(current, target float64) Progress {
	var pct float64
	if target > 0 {
		pct = current / target * 100
	}
	return Progress{Current: Round1(current), Target: target, Percentage: Round1(pct)}
}

// Summary is the licensure progress report.
type Summary struct {
	TotalHours      Progress    `json:"total_hours"`
	DirectHours     Progress    `json:"direct_hours"`
	Months          Progress    `json:"months"`
	WeeklyAverage   Progress    `json:"weekly_average"`
	WeeksLogged     int         `json:"weeks_logged"`
	StartDate       civil.Date  `json:"start_date"`
	FirstWeekStart  *civil.Date `json:"-"`
	LatestWeekStart *civil.Date `json:"latest_week_start,omitempty"`
	LatestWeekEnd   *civil.Date `json:"latest_week_end,omitempty"`
}

// Summarize measures l against t as of today. start is the licensure start.
func Summarize(l *ledger.Ledger, t Targets, start, today civil.Date) Summary {
	sum := Sum(l.Weeks)

	weeksElapsed := 1
	if current := calendar.WeekStartOf(today); !current.Before(start) {
		weeksElapsed = current.DaysSince(start)/7 + 1
	}
	average := sum.Total() / float64(weeksElapsed)

	s := Summary{
		TotalHours:    newProgress(sum.Total(), t.TotalHours),
		DirectHours:   newProgress(sum.Direct, t.DirectHours),
		Months:        newProgress(float64(MonthsBetween(start, today)), t.MinMonths),
		WeeklyAverage: newProgress(average, t.MinWeeklyAverage),
		StartDate:     start,
	}
	for _, w := range l.Weeks {
		if w.Total() > 0 {
			s.WeeksLogged++
		}
	}
	if n := len(l.Weeks); n > 0 {
		first, last := l.Weeks[0], l.Weeks[n-1]
		s.FirstWeekStart = &first.Start
		s.LatestWeekStart = &last.Start
		s.LatestWeekEnd = &last.End
	}
	return s
}

// MonthsBetween counts whole calendar months from start to end. A month is
// complete once end reaches start's day of month.
func MonthsBetween(start, end civil.Date) int {
	if end.Before(start) {
		return 0
	}
	months := (end.Year-start.Year)*12 + int(end.Month) - int(start.Month)
	if end.Day < start.Day {
		months--
	}
	return max(months, 0)
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Sum adds every category across weeks. The dates of the result are zero.
func Sum(weeks []ledger.WeekRecord) ledger.WeekRecord {
	var total ledger.WeekRecord
	for _, w := range weeks {
		total.IndividualSupervision += w.IndividualSupervision
		total.GroupSupervision += w.GroupSupervision
		total.Direct += w.Direct
		total.Indirect += w.Indirect
	}
	return total
}

// Last returns the final n weeks, or all of them when n <= 0 or n exceeds
// the count.
func Last(weeks []ledger.WeekRecord, n int) []ledger.WeekRecord {
	if n <= 0 || n >= len(weeks) {
		return weeks
	}
	return weeks[len(weeks)-n:]
}

// Row is a week record with its total, as emitted by list --json.
type Row struct {
	ledger.WeekRecord
	Total float64 `json:"total"`
}

// Rows pairs each record with its total.
func Rows(weeks []ledger.WeekRecord) []Row {
	rows := make([]Row, len(weeks))
	for i, w := range weeks {
		rows[i] = Row{WeekRecord: w, Total: w.Total()}
	}
	return rows
}
