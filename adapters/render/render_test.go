package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psychstats/domain/core"
	"psychstats/domain/report"
	"psychstats/domain/trial"
)

func sampleReport() *report.Report {
	rows := make([]report.Row, 0, 6)
	for i, st := range report.RowOrder() {
		rows = append(rows, report.Row{
			StimulusType:     st,
			MeanSimultaneous: 0.92,
			MeanSequential:   0.50,
			SDSimultaneous:   0.14,
			SDSequential:     0.25,
			NSimultaneous:    24,
			NSequential:      24,
			CohensD:          2.08 + float64(i),
			TValue:           7.21,
			PValue:           0.00012,
			DF:               40,
		})
	}
	return &report.Report{
		ID:          report.NewReportID(),
		GeneratedAt: core.Now(),
		NTrials:     4,
		Rows:        rows,
	}
}

func TestCSVRoundTrip(t *testing.T) {
	rep := sampleReport()

	var buf bytes.Buffer
	require.NoError(t, CSVSink{}.Write(&buf, rep))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 7, "header plus six rows")
	assert.Equal(t, strings.Join(report.Header(), ","), lines[0])

	parsed, err := ParseCSV(&buf)
	require.NoError(t, err)
	// Every numeric reproduced at its declared rounding precision.
	assert.Equal(t, rep.Rows, parsed.Rows)
}

func TestParseCSV_RejectsWrongHeader(t *testing.T) {
	input := "StimulusType,Mean_Sequential,Mean_Simultaneous\nx,1,2\n"
	_, err := ParseCSV(strings.NewReader(input))
	require.Error(t, err)
}

func TestParseCSV_RejectsWrongRowOrder(t *testing.T) {
	rep := sampleReport()
	rep.Rows[0], rep.Rows[1] = rep.Rows[1], rep.Rows[0]

	var buf bytes.Buffer
	cw := CSVSink{}
	// Writing does not validate order; parsing enforces the contract.
	require.NoError(t, cw.Write(&buf, rep))
	_, err := ParseCSV(&buf)
	require.Error(t, err)
}

func TestTextSink(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TextSink{}.Write(&buf, sampleReport()))

	out := buf.String()
	for _, col := range report.Header() {
		assert.Contains(t, out, col)
	}
	assert.Contains(t, out, string(trial.DPrimeMorph))
	assert.Contains(t, out, "0.92")
	assert.Contains(t, out, "0.00012")
}

func TestMarkdownSink(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MarkdownSink{}.Write(&buf, sampleReport()))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8, "header, separator, six rows")
	assert.True(t, strings.HasPrefix(lines[0], "| StimulusType |"))
	assert.Contains(t, lines[1], "---")
}

func TestHTMLSink(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTMLSink{}.Write(&buf, sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "Cohens_d")
	assert.Contains(t, out, string(trial.MatchingMember))
}
