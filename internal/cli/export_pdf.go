package cli

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/wwlorey/hours/internal/ledger"
	"github.com/wwlorey/hours/internal/report"
)

var (
	pdfHeaderColor = props.Color{Red: 50, Green: 50, Blue: 50}
	pdfMutedColor  = props.Color{Red: 120, Green: 120, Blue: 120}
	pdfLineColor   = props.Color{Red: 200, Green: 200, Blue: 200}
)

// exportData is everything the PDF report shows.
type exportData struct {
	Generated civil.Date
	Summary   report.Summary
	Weeks     []ledger.WeekRecord
}

func addProgressRow(m core.Maroto, label string, p report.Progress, format string) {
	value := fmt.Sprintf(format+" / "+format, p.Current, p.Target)
	m.AddRow(6,
		text.NewCol(6, label, props.Text{Size: 10}),
		text.NewCol(4, value, props.Text{Size: 10, Align: align.Right}),
		text.NewCol(2, fmt.Sprintf("%.1f%%", p.Percentage), props.Text{Size: 10, Align: align.Right, Color: &pdfMutedColor}),
	)
}

// pdfWeekLabel swaps the en dash for a hyphen, which the core PDF fonts encode.
func pdfWeekLabel(w ledger.WeekRecord) string {
	return strings.ReplaceAll(w.Week().Label(), "–", "-")
}

// weekCols lays a week out as label (3) + four categories (2 each) + total (1).
func weekCols(label string, w ledger.WeekRecord, style props.Text) []core.Col {
	left := style
	left.Align = align.Left
	right := style
	right.Align = align.Right

	cols := []core.Col{text.NewCol(3, label, left)}
	for _, c := range ledger.Categories {
		cols = append(cols, text.NewCol(2, fmt.Sprintf("%.1f", w.Get(c)), right))
	}
	return append(cols, text.NewCol(1, fmt.Sprintf("%.1f", w.Total()), right))
}

// renderReportPDF writes the progress report to outputPath.
func renderReportPDF(data exportData, outputPath string) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(12, "Supervised Hours Report", props.Text{
			Style: fontstyle.Bold,
			Size:  16,
			Color: &pdfHeaderColor,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, "Generated "+data.Generated.In(time.UTC).Format("January 2, 2006"), props.Text{
			Size:  11,
			Color: &pdfMutedColor,
		}),
	)
	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(4)

	s := data.Summary
	m.AddRow(8, text.NewCol(12, "Licensure Progress", props.Text{Style: fontstyle.Bold, Size: 12, Color: &pdfHeaderColor}))
	addProgressRow(m, "Total supervised hours", s.TotalHours, "%.1f")
	addProgressRow(m, "Direct client hours", s.DirectHours, "%.1f")
	addProgressRow(m, "Months of experience", s.Months, "%.0f")
	addProgressRow(m, "Weekly average", s.WeeklyAverage, "%.1f")
	m.AddRow(6, text.NewCol(12, fmt.Sprintf("Weeks logged: %d", s.WeeksLogged), props.Text{Size: 10, Color: &pdfMutedColor}))
	m.AddRow(6)

	m.AddRow(8, text.NewCol(12, "Weekly Hours", props.Text{Style: fontstyle.Bold, Size: 12, Color: &pdfHeaderColor}))
	if len(data.Weeks) == 0 {
		m.AddRow(6, text.NewCol(12, "No hours logged yet.", props.Text{Size: 9, Color: &pdfMutedColor}))
	} else {
		headerStyle := props.Text{Style: fontstyle.Bold, Size: 8, Color: &pdfHeaderColor}
		header := []core.Col{text.NewCol(3, "Week", headerStyle)}
		for _, c := range ledger.Categories {
			h := headerStyle
			h.Align = align.Right
			header = append(header, text.NewCol(2, c.Short(), h))
		}
		h := headerStyle
		h.Align = align.Right
		m.AddRow(6, append(header, text.NewCol(1, "Total", h))...)
		m.AddRow(2, line.NewCol(12, props.Line{Color: &pdfLineColor}))

		for _, w := range data.Weeks {
			m.AddRow(5, weekCols(pdfWeekLabel(w), w, props.Text{Size: 8})...)
		}

		m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
		m.AddRow(8, weekCols("Total", report.Sum(data.Weeks), props.Text{
			Style: fontstyle.Bold,
			Size:  9,
			Color: &pdfHeaderColor,
		})...)
	}

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("generating PDF: %w", err)
	}

	return doc.Save(outputPath)
}
