// SPDX-License-Identifier: MIT

package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/phpdave11/gofpdf"

	"github.com/katalvlaran/propel/propulsion"
	"github.com/katalvlaran/propel/results"
)

var reportColumns = []struct {
	title string
	width float64
}{
	{"#", 10}, {"Alt [m]", 22}, {"V [m/s]", 20}, {"Tx [N]", 22}, {"Tz [N]", 22},
	{"Power [W]", 28}, {"SPL [dB]", 22}, {"Status", 44},
}

// WriteReport writes an A4 summary of run: a header block and one table
// row per point.
func WriteReport(w io.Writer, run results.Run, outcomes []propulsion.Outcome) error {
	if w == nil {
		return ErrNilWriter
	}
	title := run.Name
	if title == "" {
		title = "Propulsion sweep"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Run: %s", run.ID))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", run.CreatedAt.Format("2006-01-02 15:04 MST")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Points: %d, not trimmed: %d", len(outcomes), failedPoints(outcomes)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	for _, c := range reportColumns {
		pdf.CellFormat(c.width, 7, c.title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	for i, o := range outcomes {
		c := o.Point.Conditions
		cells := []string{
			strconv.Itoa(i + 1),
			fixed(c.Altitude, 0), fixed(c.Velocity, 1),
			fixed(o.Point.ThrustX, 1), fixed(o.Point.ThrustZ, 1),
			fixed(o.Solution.Power, 1), fixed(o.Solution.SPL, 1),
			status(o),
		}
		for j, col := range reportColumns {
			align := "R"
			if j == len(reportColumns)-1 {
				align = "L"
			}
			pdf.CellFormat(col.width, 6, cells[j], "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}

func failedPoints(outcomes []propulsion.Outcome) int {
	n := 0
	for _, o := range outcomes {
		if !o.OK() {
			n++
		}
	}

	return n
}

func fixed(v float64, prec int) string {
	if num(v) == "" {
		return "-"
	}

	return fmt.Sprintf("%.*f", prec, v)
}

func status(o propulsion.Outcome) string {
	switch {
	case o.Err != nil:
		return "unsolved"
	case len(o.Failures) > 0:
		return fmt.Sprintf("%d failed", len(o.Failures))
	default:
		return "trimmed"
	}
}
