package detector

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/simplifyx/scamguard/internal/classifier"
	"github.com/simplifyx/scamguard/internal/model"
)

// Content runs the keyword classifier over a bounded sample of the page
// text and emits a finding when the classifier's verdict is scam.
//
// The sample bound exists to cap payload size: scam pitches live in the
// first screens of a page, so classifying beyond the first few thousand
// characters adds cost without adding signal.
type Content struct {
	classifier *classifier.Classifier
	weights    model.Weights
	sampleSize int
	logger     *slog.Logger
}

// NewContent creates the content-classification detector.
// sampleSize bounds the number of characters classified.
func NewContent(c *classifier.Classifier, weights model.Weights, sampleSize int, logger *slog.Logger) *Content {
	if logger == nil {
		logger = slog.Default()
	}
	return &Content{classifier: c, weights: weights, sampleSize: sampleSize, logger: logger}
}

// Name returns the detector name.
func (d *Content) Name() string {
	return "content_classification"
}

// Detect classifies the page text sample.
func (d *Content) Detect(_ context.Context, ev *Evidence) ([]model.Finding, error) {
	sample := truncateRunes(ev.Text, d.sampleSize)
	if sample == "" {
		return nil, nil
	}

	result, err := d.classifier.Classify(sample)
	if err != nil {
		d.logger.Warn("content classification failed, continuing without this signal",
			"error", err,
		)
		return nil, nil
	}

	if !result.IsScam {
		return nil, nil
	}

	return []model.Finding{{
		Kind:        model.KindScamContent,
		Description: fmt.Sprintf("Page text matches scam patterns (probability %d%%)", result.Probability),
		Score:       d.weights.For(model.KindScamContent),
	}}, nil
}

// truncateRunes returns the first n runes of s.
// Truncation is rune-based so a multi-byte character is never split.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
