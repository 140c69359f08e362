package ports

import (
	"io"

	"psychstats/domain/report"
)

// ReportSink renders an assembled report into one output format.
type ReportSink interface {
	// Write renders the report to w.
	Write(w io.Writer, rep *report.Report) error
}
