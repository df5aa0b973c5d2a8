package alert

import "github.com/simplifyx/scamguard/internal/model"

// MessageType identifies a message exchanged between the detection
// environment and a page's rendering context.
type MessageType string

const (
	// TypeShowWarning instructs the rendering context to display a warning
	// banner. Sent downstream by the dispatcher.
	TypeShowWarning MessageType = "SHOW_WARNING"

	// TypeContentAnalysis carries detector findings produced inside the
	// rendering context (form submissions) upstream to the aggregator.
	TypeContentAnalysis MessageType = "CONTENT_ANALYSIS"

	// TypePageTextContent carries the scraped page text sample upstream for
	// classification.
	TypePageTextContent MessageType = "PAGE_TEXT_CONTENT"
)

// Message is the envelope for all page-context traffic.
// Exactly one payload field is set, according to Type.
type Message struct {
	// Type discriminates the payload.
	Type MessageType `json:"type"`

	// PageID identifies the page-load instance the message belongs to.
	PageID string `json:"page_id"`

	// Warning is the banner text for TypeShowWarning.
	Warning string `json:"message,omitempty"`

	// Findings carries detector results for TypeContentAnalysis.
	Findings []model.Finding `json:"findings,omitempty"`

	// Text carries the page text sample for TypePageTextContent.
	Text string `json:"text,omitempty"`
}
