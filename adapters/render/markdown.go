package render

import (
	"io"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	mdparser "github.com/gomarkdown/markdown/parser"

	"psychstats/domain/report"
)

// MarkdownSink renders the report as a GitHub-style markdown table.
type MarkdownSink struct{}

// Write renders the markdown table to w.
func (MarkdownSink) Write(w io.Writer, rep *report.Report) error {
	_, err := io.WriteString(w, Markdown(rep))
	return err
}

// Markdown builds the markdown table text.
func Markdown(rep *report.Report) string {
	var b strings.Builder
	header := report.Header()

	b.WriteString("| " + strings.Join(header, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(header)) + "\n")
	for _, row := range rep.Rows {
		b.WriteString("| " + strings.Join(rowCells(row), " | ") + " |\n")
	}
	return b.String()
}

// HTMLSink renders the markdown table to HTML for report publishing.
type HTMLSink struct{}

// Write renders the HTML document fragment to w.
func (HTMLSink) Write(w io.Writer, rep *report.Report) error {
	parser := mdparser.NewWithExtensions(mdparser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	out := markdown.ToHTML([]byte(Markdown(rep)), parser, renderer)
	_, err := w.Write(out)
	return err
}
