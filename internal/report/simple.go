package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/vernette/censorcheck/internal/model"
)

// SimpleWriter outputs colorized human-readable text reports for terminal
// display.
//
// Design decision: Colors are a pure function of the outcome kind, never
// derived from message text. The fatih/color package handles terminal
// detection and NO_COLOR by itself; WithColor(false) additionally forces
// plain output for piping to files or other tools.
type SimpleWriter struct {
	baseWriter

	// useColor enables ANSI colors. When false the output is plain text.
	useColor bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithColor controls colorized output. Default is true.
func WithColor(enabled bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.useColor = enabled
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		useColor:   true,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeResults(&sb, report)
	w.writeSummary(&sb, report)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with the run parameters.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                        CENSORCHECK REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")))
	for _, param := range report.Params {
		sb.WriteString(fmt.Sprintf("%-15s %s\n", param.Key+":", param.Value))
	}
	sb.WriteString("\n")
}

// writeResults writes the per-domain sections.
func (w *SimpleWriter) writeResults(sb *strings.Builder, report *model.Report) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("RESULTS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, result := range report.Results {
		w.writeDomain(sb, result)
	}
}

// writeDomain writes one domain's section.
func (w *SimpleWriter) writeDomain(sb *strings.Builder, result *model.DomainResult) {
	name := result.Service
	if result.ResolvedIP != "" {
		name = fmt.Sprintf("%s (%s)", result.Service, result.ResolvedIP)
	}
	sb.WriteString(w.paint(color.Bold, name))
	sb.WriteString("\n")

	if result.ErrorCode != "" {
		sb.WriteString("  ")
		sb.WriteString(w.paint(color.FgRed, result.Error))
		sb.WriteString("\n\n")
		return
	}

	for _, protocol := range []model.Protocol{model.ProtocolHTTP, model.ProtocolHTTPS} {
		for _, ipVersion := range []model.IPVersion{model.IPv4, model.IPv6} {
			outcome := result.Outcome(protocol, ipVersion)
			if outcome == nil {
				continue
			}
			label := fmt.Sprintf("%s/%s:", protocol, ipVersion)
			sb.WriteString(fmt.Sprintf("  %-13s %s\n",
				label, w.paint(outcomeColor(outcome.Kind), outcome.String())))
		}
	}
	sb.WriteString("\n")
}

// writeSummary writes outcome counts across all probe slots.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.Report) {
	counts := make(map[model.OutcomeKind]int)
	errors := 0
	for _, result := range report.Results {
		if result.ErrorCode != "" {
			errors++
			continue
		}
		for _, group := range []*model.ProtocolOutcomes{result.HTTP, result.HTTPS} {
			if group == nil {
				continue
			}
			for _, outcome := range []*model.ProbeOutcome{group.IPv4, group.IPv6} {
				if outcome != nil {
					counts[outcome.Kind]++
				}
			}
		}
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Domains checked:  %d\n", len(report.Results)))
	sb.WriteString(fmt.Sprintf("  Available:        %d\n", counts[model.OutcomeAvailable]))
	sb.WriteString(fmt.Sprintf("  Redirected:       %d\n", counts[model.OutcomeRedirected]))
	sb.WriteString(fmt.Sprintf("  Denied:           %d\n", counts[model.OutcomeDenied]))
	sb.WriteString(fmt.Sprintf("  Other status:     %d\n", counts[model.OutcomeOtherStatus]))
	sb.WriteString(fmt.Sprintf("  Blocked:          %d\n", counts[model.OutcomeBlocked]))
	sb.WriteString(fmt.Sprintf("  Unresolvable/IP:  %d\n", errors))
	sb.WriteString("\n")
}

// paint colors the text with the given attribute when colors are enabled.
func (w *SimpleWriter) paint(attr color.Attribute, text string) string {
	c := color.New(attr)
	if !w.useColor {
		c.DisableColor()
	}
	return c.Sprint(text)
}

// outcomeColor maps an outcome kind to its terminal color. Green means the
// site answered normally, yellow means it answered with a redirect, red
// means access was denied or never answered, cyan flags anything odd.
func outcomeColor(kind model.OutcomeKind) color.Attribute {
	switch kind {
	case model.OutcomeAvailable:
		return color.FgGreen
	case model.OutcomeRedirected:
		return color.FgYellow
	case model.OutcomeDenied, model.OutcomeBlocked:
		return color.FgRed
	default:
		return color.FgCyan
	}
}
