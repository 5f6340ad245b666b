package report

import (
	"encoding/json"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wwlorey/hours/internal/ledger"
)

func date(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

var defaultTargets = Targets{TotalHours: 3000, DirectHours: 1200, MinMonths: 24, MinWeeklyAverage: 15}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name       string
		start, end civil.Date
		want       int
	}{
		{"same date", date(2025, 1, 28), date(2025, 1, 28), 0},
		{"one month", date(2025, 1, 28), date(2025, 2, 28), 1},
		{"partial month", date(2025, 1, 28), date(2025, 2, 27), 0},
		{"several months", date(2025, 1, 28), date(2025, 6, 28), 5},
		{"across years", date(2025, 1, 28), date(2027, 1, 28), 24},
		{"end before start", date(2025, 6, 1), date(2025, 1, 1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthsBetween(tt.start, tt.end))
		})
	}
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 8.2, Round1(8.233))
	assert.Equal(t, 8.3, Round1(8.25))
	assert.Equal(t, 0.0, Round1(0))
}

func sampleLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	l := ledger.New()
	require.NoError(t, l.Accumulate(date(2025, 1, 28), ledger.Direct, 10))
	require.NoError(t, l.Accumulate(date(2025, 1, 28), ledger.IndividualSupervision, 2))
	require.NoError(t, l.Accumulate(date(2025, 2, 4), ledger.Indirect, 8))
	_, err := l.FindOrCreate(date(2025, 2, 11))
	require.NoError(t, err)
	return l
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleLedger(t), defaultTargets, date(2025, 1, 28), date(2025, 2, 13))

	assert.Equal(t, Progress{Current: 20, Target: 3000, Percentage: 0.7}, s.TotalHours)
	assert.Equal(t, Progress{Current: 10, Target: 1200, Percentage: 0.8}, s.DirectHours)
	assert.Equal(t, Progress{Current: 0, Target: 24, Percentage: 0}, s.Months)
	// three weeks elapsed including the current one
	assert.Equal(t, Progress{Current: 6.7, Target: 15, Percentage: 44.4}, s.WeeklyAverage)
	assert.Equal(t, 2, s.WeeksLogged)
	require.NotNil(t, s.LatestWeekStart)
	assert.Equal(t, date(2025, 2, 11), *s.LatestWeekStart)
	assert.Equal(t, date(2025, 2, 17), *s.LatestWeekEnd)
	assert.Equal(t, date(2025, 1, 28), *s.FirstWeekStart)
}

func TestSummarizeBeforeStart(t *testing.T) {
	s := Summarize(ledger.New(), defaultTargets, date(2025, 1, 28), date(2025, 1, 20))

	assert.Equal(t, 0.0, s.WeeklyAverage.Current)
	assert.Equal(t, 0, s.WeeksLogged)
	assert.Nil(t, s.LatestWeekStart)
}

func TestSummarizeZeroTargets(t *testing.T) {
	s := Summarize(sampleLedger(t), Targets{}, date(2025, 1, 28), date(2025, 2, 13))
	assert.Equal(t, 0.0, s.TotalHours.Percentage)
	assert.Equal(t, 0.0, s.WeeklyAverage.Percentage)
}

func TestSummaryJSON(t *testing.T) {
	s := Summarize(sampleLedger(t), defaultTargets, date(2025, 1, 28), date(2025, 2, 13))

	data, err := json.Marshal(s)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"total_hours": {"current": 20, "target": 3000, "percentage": 0.7},
		"direct_hours": {"current": 10, "target": 1200, "percentage": 0.8},
		"months": {"current": 0, "target": 24, "percentage": 0},
		"weekly_average": {"current": 6.7, "target": 15, "percentage": 44.4},
		"weeks_logged": 2,
		"start_date": "2025-01-28",
		"latest_week_start": "2025-02-11",
		"latest_week_end": "2025-02-17"
	}`, string(data))
}

func TestSumAndLast(t *testing.T) {
	l := sampleLedger(t)

	total := Sum(l.Weeks)
	assert.Equal(t, 20.0, total.Total())
	assert.Equal(t, 10.0, total.Get(ledger.Direct))

	assert.Len(t, Last(l.Weeks, 2), 2)
	assert.Equal(t, date(2025, 2, 4), Last(l.Weeks, 2)[0].Start)
	assert.Len(t, Last(l.Weeks, 10), 3)
	assert.Len(t, Last(l.Weeks, 0), 3)
}

func TestRowsJSON(t *testing.T) {
	l := sampleLedger(t)

	data, err := json.Marshal(Rows(l.Weeks[:1]))
	require.NoError(t, err)

	assert.JSONEq(t, `[{
		"start": "2025-01-28", "end": "2025-02-03",
		"individual_supervision": 2, "group_supervision": 0,
		"direct": 10, "indirect": 0, "total": 12
	}]`, string(data))
}
