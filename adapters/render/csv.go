package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"psychstats/domain/core"
	"psychstats/domain/report"
	"psychstats/domain/trial"
)

// CSVSink writes the report in the exact delimited contract of
// report.Header. Writing and re-parsing reproduces every numeric at its
// declared rounding precision.
type CSVSink struct{}

// Write serializes the report as CSV.
func (CSVSink) Write(w io.Writer, rep *report.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(report.Header()); err != nil {
		return err
	}
	for _, row := range rep.Rows {
		if err := cw.Write(rowCells(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseCSV reads a previously exported report back into memory. Used by
// the render command and the round-trip contract; provenance metadata is
// not part of the delimited format, so the parsed report carries none.
func ParseCSV(r io.Reader) (*report.Report, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty report file")
	}

	header := report.Header()
	if len(records[0]) != len(header) {
		return nil, core.NewMissingColumnError(fmt.Sprintf("expected %d columns, got %d", len(header), len(records[0])))
	}
	for i, name := range header {
		if records[0][i] != name {
			return nil, fmt.Errorf("column %d is %q, want %q", i, records[0][i], name)
		}
	}

	rep := &report.Report{Rows: make([]report.Row, 0, len(records)-1)}
	for n, rec := range records[1:] {
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		rep.Rows = append(rep.Rows, row)
	}
	if err := rep.Validate(); err != nil {
		return nil, err
	}
	return rep, nil
}

func parseRow(rec []string) (report.Row, error) {
	floats := make([]float64, 0, 7)
	for _, i := range []int{1, 2, 3, 4, 7, 8, 9} {
		v, err := strconv.ParseFloat(rec[i], 64)
		if err != nil {
			return report.Row{}, fmt.Errorf("column %q: %w", report.Header()[i], err)
		}
		floats = append(floats, v)
	}
	ints := make([]int, 0, 3)
	for _, i := range []int{5, 6, 10} {
		v, err := strconv.Atoi(rec[i])
		if err != nil {
			return report.Row{}, fmt.Errorf("column %q: %w", report.Header()[i], err)
		}
		ints = append(ints, v)
	}

	return report.Row{
		StimulusType:     trial.StimulusType(rec[0]),
		MeanSimultaneous: floats[0],
		MeanSequential:   floats[1],
		SDSimultaneous:   floats[2],
		SDSequential:     floats[3],
		NSimultaneous:    ints[0],
		NSequential:      ints[1],
		CohensD:          floats[4],
		TValue:           floats[5],
		PValue:           floats[6],
		DF:               ints[2],
	}, nil
}
