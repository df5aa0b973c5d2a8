package detector

import (
	"context"
	"log/slog"

	"github.com/simplifyx/scamguard/internal/model"
)

// Evidence carries everything a detector may inspect about a page.
// Individual detectors read only the fields relevant to their signal and
// ignore the rest.
type Evidence struct {
	// PageURL is the full navigated URL.
	PageURL string

	// Text is the visible page text (already sampled by the caller's
	// extraction; content detectors apply their own bound on top).
	Text string

	// Form describes a form submission event, when one occurred.
	Form *FormSubmission
}

// FormSubmission describes a single form submit event observed on a page.
type FormSubmission struct {
	// Action is the form's submission target URL.
	Action string

	// FieldNames are the name attributes of the form's input fields.
	FieldNames []string
}

// Detector produces scored findings from one evidence source.
//
// Implementations must be safe for concurrent use and must fail open:
// a detector that cannot evaluate its evidence returns an empty result,
// reserving the error return for programming mistakes rather than bad input.
type Detector interface {
	// Name returns the detector name for logging purposes.
	Name() string

	// Detect inspects the evidence and returns zero or more findings.
	Detect(ctx context.Context, ev *Evidence) ([]model.Finding, error)
}

// Run executes all detectors against the evidence and collects their
// findings. A detector error is logged and skipped so one failing signal
// never suppresses the others.
func Run(ctx context.Context, detectors []Detector, ev *Evidence, logger *slog.Logger) []model.Finding {
	if logger == nil {
		logger = slog.Default()
	}

	findings := make([]model.Finding, 0)
	for _, d := range detectors {
		select {
		case <-ctx.Done():
			return findings
		default:
		}

		result, err := d.Detect(ctx, ev)
		if err != nil {
			logger.Warn("detector failed, continuing without its findings",
				"detector", d.Name(),
				"error", err,
			)
			continue
		}
		findings = append(findings, result...)
	}
	return findings
}
