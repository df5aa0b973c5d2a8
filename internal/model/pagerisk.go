package model

import "time"

// AnalysisState describes how far a page's analysis has progressed.
//
// The state is advisory: FullyAnalyzed means the content-classification path
// has reported in, but late signals (a form submission) may still append
// findings afterwards. It is not a hard gate.
type AnalysisState int

const (
	// StateCreated means the page state exists but no detector has reported.
	StateCreated AnalysisState = iota

	// StatePartiallyAnalyzed means URL-based detectors have run but the
	// content analysis has not completed yet.
	StatePartiallyAnalyzed

	// StateFullyAnalyzed means the content-classification path has reported.
	StateFullyAnalyzed
)

// String returns a human-readable representation of the analysis state.
func (s AnalysisState) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StatePartiallyAnalyzed:
		return "partially_analyzed"
	case StateFullyAnalyzed:
		return "fully_analyzed"
	default:
		return "unknown"
	}
}

// PageRiskState is the aggregated risk record for one page-load instance.
// It is keyed by an opaque page identifier that is unique per navigation
// lifetime; the state never survives a navigation of the same identifier.
//
// Invariants maintained by the aggregator:
//   - TotalScore is always the exact sum of Findings scores.
//   - Findings is append-only within the page's lifetime.
//   - AlertFired transitions false -> true at most once, and only on the
//     transition from below-threshold to at-or-above-threshold.
//
// Design decision: This struct carries no lock of its own. Linearization of
// concurrent updates is the aggregator's job; keeping the model passive makes
// it trivially serializable and testable.
type PageRiskState struct {
	// PageID is the opaque page/tab identifier owning this state.
	PageID string `json:"page_id"`

	// URL is the navigated URL that seeded this state.
	URL string `json:"url"`

	// Findings is the ordered, append-only sequence of scored evidence.
	Findings []Finding `json:"findings"`

	// TotalScore is the exact sum of all finding scores.
	TotalScore int `json:"total_score"`

	// Threshold is the score at which the page is considered dangerous.
	Threshold int `json:"threshold"`

	// State tracks analysis progress. Advisory only; see AnalysisState.
	State AnalysisState `json:"state"`

	// ContentAnalysisComplete is true once the content-classification path
	// has delivered its findings (even an empty batch).
	ContentAnalysisComplete bool `json:"content_analysis_complete"`

	// AlertFired records whether the threshold-crossing alert was dispatched.
	AlertFired bool `json:"alert_fired"`

	// CreatedAt is when the navigation completed and the state was seeded.
	CreatedAt time.Time `json:"created_at"`
}

// NewPageRiskState creates an empty risk state for a fresh navigation.
func NewPageRiskState(pageID, url string, threshold int) *PageRiskState {
	return &PageRiskState{
		PageID:    pageID,
		URL:       url,
		Findings:  make([]Finding, 0),
		Threshold: threshold,
		State:     StateCreated,
		CreatedAt: time.Now(),
	}
}

// Append adds findings to the state and recomputes the total score.
// It returns the total before the update so the caller can evaluate the
// threshold-crossing rule (prior < threshold <= new).
func (p *PageRiskState) Append(findings []Finding) (priorTotal int) {
	priorTotal = p.TotalScore
	p.Findings = append(p.Findings, findings...)
	p.TotalScore = SumScores(p.Findings)
	return priorTotal
}

// Dangerous reports whether the total score has reached the threshold.
func (p *PageRiskState) Dangerous() bool {
	return p.TotalScore >= p.Threshold
}

// RiskReport is an immutable snapshot of a PageRiskState taken for output.
// Report writers consume this instead of the live state so that rendering
// never races with in-flight finding batches.
type RiskReport struct {
	// URL is the analyzed page URL.
	URL string `json:"url"`

	// AnalyzedAt is when the snapshot was taken.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// Findings is a copy of the accumulated findings.
	Findings []Finding `json:"findings"`

	// TotalScore is the sum of finding scores at snapshot time.
	TotalScore int `json:"total_score"`

	// Threshold is the configured alert threshold.
	Threshold int `json:"threshold"`

	// Dangerous is true when TotalScore >= Threshold.
	Dangerous bool `json:"dangerous"`

	// ContentAnalysisComplete mirrors the state's advisory flag.
	ContentAnalysisComplete bool `json:"content_analysis_complete"`
}

// Snapshot produces a RiskReport copy of the current state.
func (p *PageRiskState) Snapshot() *RiskReport {
	findings := make([]Finding, len(p.Findings))
	copy(findings, p.Findings)

	return &RiskReport{
		URL:                     p.URL,
		AnalyzedAt:              time.Now(),
		Findings:                findings,
		TotalScore:              p.TotalScore,
		Threshold:               p.Threshold,
		Dangerous:               p.Dangerous(),
		ContentAnalysisComplete: p.ContentAnalysisComplete,
	}
}
