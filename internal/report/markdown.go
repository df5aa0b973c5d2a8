package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/simplifyx/scamguard/internal/model"
)

// MarkdownWriter outputs reports in Markdown format, for documentation and
// sharing.
//
// Design decision: We use the nao1215/markdown library for fluent,
// type-safe markdown generation with tables and GitHub-flavored alerts.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.RiskReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeVerdict(md, report)
	w.writeFindings(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with page information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.RiskReport) {
	md.H1("ScamGuard Risk Report")
	md.PlainText("")

	analysis := "Partial (content classification pending)"
	if report.ContentAnalysisComplete {
		analysis = "Complete"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"URL", "`" + report.URL + "`"},
			{"Analyzed", report.AnalyzedAt.Format("2006-01-02 15:04:05 MST")},
			{"Risk Score", strconv.Itoa(report.TotalScore)},
			{"Alert Threshold", strconv.Itoa(report.Threshold)},
			{"Analysis", analysis},
		},
	})
	md.PlainText("")
}

// writeVerdict writes a GitHub-flavored alert matching the verdict.
func (w *MarkdownWriter) writeVerdict(md *markdown.Markdown, report *model.RiskReport) {
	switch {
	case report.Dangerous:
		md.Cautionf(
			"This page is DANGEROUS: risk score %d reached the alert threshold of %d.",
			report.TotalScore, report.Threshold,
		)
	case len(report.Findings) > 0:
		md.Warningf(
			"Risk signals were detected but the score %d stayed below the threshold of %d.",
			report.TotalScore, report.Threshold,
		)
	default:
		md.Tip("No risk signals detected.")
	}
	md.PlainText("")
}

// writeFindings writes the findings table.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, report *model.RiskReport) {
	md.H2("Findings")
	md.PlainText("")

	if len(report.Findings) == 0 {
		md.PlainText("No risk signals detected.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(report.Findings))
	for i, f := range report.Findings {
		rows[i] = []string{f.Kind.String(), f.Description, strconv.Itoa(f.Score)}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Kind", "Description", "Score"},
		Rows:   rows,
	})
	md.PlainText("")
}
