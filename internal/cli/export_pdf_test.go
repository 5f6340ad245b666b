package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wwlorey/hours/internal/ledger"
	"github.com/wwlorey/hours/internal/report"
)

func TestRenderReportPDFCreatesFile(t *testing.T) {
	l := ledger.New()
	require.NoError(t, l.Accumulate(date(2025, 1, 28), ledger.Direct, 10))
	require.NoError(t, l.Accumulate(date(2025, 2, 4), ledger.GroupSupervision, 1.5))
	targets := report.Targets{TotalHours: 3000, DirectHours: 1200, MinMonths: 24, MinWeeklyAverage: 15}

	outPath := filepath.Join(t.TempDir(), "report.pdf")
	err := renderReportPDF(exportData{
		Generated: date(2025, 2, 13),
		Summary:   report.Summarize(l, targets, date(2025, 1, 28), date(2025, 2, 13)),
		Weeks:     l.Weeks,
	}, outPath)
	require.NoError(t, err)

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRenderReportPDFEmptyLedger(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "empty.pdf")

	err := renderReportPDF(exportData{Generated: date(2025, 2, 13)}, outPath)
	require.NoError(t, err)
	assert.FileExists(t, outPath)
}

func TestPDFWeekLabel(t *testing.T) {
	w := ledger.NewWeekRecord(date(2025, 1, 28))
	assert.Equal(t, "Jan 28 - Feb 03, 2025", pdfWeekLabel(w))
}
