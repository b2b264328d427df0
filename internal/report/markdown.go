package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/vernette/censorcheck/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown output
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeResults(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with the run parameter snapshot.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("Censorcheck Report")
	md.PlainText("")

	rows := [][]string{
		{"Version", report.Version},
		{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		{"Domains", strconv.Itoa(len(report.Results))},
	}
	for _, param := range report.Params {
		rows = append(rows, []string{param.Key, "`" + param.Value + "`"})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Parameter", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeResults writes the per-domain outcome table.
func (w *MarkdownWriter) writeResults(md *markdown.Markdown, report *model.Report) {
	md.H2("Results")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Results))
	for _, result := range report.Results {
		if result.ErrorCode != "" {
			rows = append(rows, []string{
				"`" + result.Service + "`",
				result.Error, "-", "-", "-",
			})
			continue
		}
		rows = append(rows, []string{
			"`" + result.Service + "`",
			outcomeCell(result.Outcome(model.ProtocolHTTP, model.IPv4)),
			outcomeCell(result.Outcome(model.ProtocolHTTP, model.IPv6)),
			outcomeCell(result.Outcome(model.ProtocolHTTPS, model.IPv4)),
			outcomeCell(result.Outcome(model.ProtocolHTTPS, model.IPv6)),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Domain", "HTTP/IPv4", "HTTP/IPv6", "HTTPS/IPv4", "HTTPS/IPv6"},
		Rows:   rows,
	})
	md.PlainText("")
}

// outcomeCell renders one probe slot for the results table.
// An absent slot (combination not attempted) renders as a dash.
func outcomeCell(outcome *model.ProbeOutcome) string {
	if outcome == nil {
		return "-"
	}
	return outcome.String()
}
