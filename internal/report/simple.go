package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/simplifyx/scamguard/internal/model"
)

// SimpleWriter outputs human-readable text reports for terminal display.
//
// Design decision: plain ASCII formatting rather than ANSI colors because
// it works in all terminals and pipes cleanly to files and other tools.
type SimpleWriter struct {
	baseWriter

	// verbose includes the finding kind alongside each description.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional detail.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.RiskReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeFindings(&sb, report)
	w.writeVerdict(&sb, report)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with page information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.RiskReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                        SCAMGUARD RISK REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("URL:         %s\n", report.URL))
	sb.WriteString(fmt.Sprintf("Analyzed:    %s\n", report.AnalyzedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Risk Score:  %d / %d (threshold)\n", report.TotalScore, report.Threshold))

	if report.ContentAnalysisComplete {
		sb.WriteString("Analysis:    complete\n")
	} else {
		sb.WriteString("Analysis:    partial (content classification pending)\n")
	}
	sb.WriteString("\n")
}

// writeFindings lists the accumulated findings.
func (w *SimpleWriter) writeFindings(sb *strings.Builder, report *model.RiskReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FINDINGS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(report.Findings) == 0 {
		sb.WriteString("  No risk signals detected\n\n")
		return
	}

	for _, f := range report.Findings {
		sb.WriteString(fmt.Sprintf("  [+%d] %s\n", f.Score, f.Description))
		if w.verbose {
			sb.WriteString(fmt.Sprintf("        Kind: %s\n", f.Kind))
		}
	}
	sb.WriteString("\n")
}

// writeVerdict writes the dangerous/safe verdict footer.
func (w *SimpleWriter) writeVerdict(sb *strings.Builder, report *model.RiskReport) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	if report.Dangerous {
		sb.WriteString("VERDICT: DANGEROUS - risk score reached the alert threshold\n")
	} else {
		sb.WriteString("VERDICT: below alert threshold\n")
	}
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
