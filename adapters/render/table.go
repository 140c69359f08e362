package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"psychstats/domain/report"
)

// rowCells formats one summary row following the report's rounding
// contract: 2 decimals for means/SDs/d/t, 2 significant figures for p
// (shortest representation), integers for N and df.
func rowCells(row report.Row) []string {
	return []string{
		string(row.StimulusType),
		formatFixed(row.MeanSimultaneous),
		formatFixed(row.MeanSequential),
		formatFixed(row.SDSimultaneous),
		formatFixed(row.SDSequential),
		strconv.Itoa(row.NSimultaneous),
		strconv.Itoa(row.NSequential),
		formatFixed(row.CohensD),
		formatFixed(row.TValue),
		formatShortest(row.PValue),
		strconv.Itoa(row.DF),
	}
}

func formatFixed(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatShortest(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// TextSink renders the report as a fixed-width table for terminals.
type TextSink struct{}

// Write renders the aligned table to w.
func (TextSink) Write(w io.Writer, rep *report.Report) error {
	header := report.Header()
	cells := make([][]string, 0, len(rep.Rows)+1)
	cells = append(cells, header)
	for _, row := range rep.Rows {
		cells = append(cells, rowCells(row))
	}

	widths := make([]int, len(header))
	for _, row := range cells {
		for i, c := range row {
			if len(c) > widths[i] {
				widths[i] = len(c)
			}
		}
	}

	var b strings.Builder
	for n, row := range cells {
		for i, c := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			if i == 0 {
				b.WriteString(fmt.Sprintf("%-*s", widths[i], c))
			} else {
				b.WriteString(fmt.Sprintf("%*s", widths[i], c))
			}
		}
		b.WriteByte('\n')
		if n == 0 {
			for i, width := range widths {
				if i > 0 {
					b.WriteString("  ")
				}
				b.WriteString(strings.Repeat("-", width))
			}
			b.WriteByte('\n')
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
