package model

import "testing"

// TestNewPageRiskState tests the initial state of a fresh page record.
func TestNewPageRiskState(t *testing.T) {
	t.Parallel()

	state := NewPageRiskState("tab-1", "https://example.com", 50)

	if state.PageID != "tab-1" {
		t.Errorf("PageID = %q, expected %q", state.PageID, "tab-1")
	}
	if state.TotalScore != 0 {
		t.Errorf("TotalScore = %d, expected 0", state.TotalScore)
	}
	if state.Threshold != 50 {
		t.Errorf("Threshold = %d, expected 50", state.Threshold)
	}
	if state.State != StateCreated {
		t.Errorf("State = %v, expected StateCreated", state.State)
	}
	if state.AlertFired {
		t.Error("AlertFired should be false for a fresh state")
	}
	if state.ContentAnalysisComplete {
		t.Error("ContentAnalysisComplete should be false for a fresh state")
	}
	if state.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

// TestPageRiskStateAppend tests that Append maintains the exact-sum
// invariant and returns the prior total for crossing evaluation.
func TestPageRiskStateAppend(t *testing.T) {
	t.Parallel()

	state := NewPageRiskState("tab-1", "https://example.com", 50)

	prior := state.Append([]Finding{{Kind: KindSuspiciousTLD, Score: 30}})
	if prior != 0 {
		t.Errorf("prior total = %d, expected 0", prior)
	}
	if state.TotalScore != 30 {
		t.Errorf("TotalScore = %d, expected 30", state.TotalScore)
	}

	prior = state.Append([]Finding{
		{Kind: KindScamContent, Score: 45},
		{Kind: KindRecentDomain, Score: 50},
	})
	if prior != 30 {
		t.Errorf("prior total = %d, expected 30", prior)
	}
	if state.TotalScore != 125 {
		t.Errorf("TotalScore = %d, expected 125", state.TotalScore)
	}

	// Exact-sum invariant: total always equals the sum of stored findings.
	if state.TotalScore != SumScores(state.Findings) {
		t.Errorf("TotalScore %d != SumScores %d", state.TotalScore, SumScores(state.Findings))
	}
	if len(state.Findings) != 3 {
		t.Errorf("len(Findings) = %d, expected 3", len(state.Findings))
	}
}

// TestPageRiskStateAppendEmptyBatch tests that an empty batch keeps the
// total unchanged but still reports the prior total.
func TestPageRiskStateAppendEmptyBatch(t *testing.T) {
	t.Parallel()

	state := NewPageRiskState("tab-1", "https://example.com", 50)
	state.Append([]Finding{{Kind: KindTyposquatting, Score: 40}})

	prior := state.Append(nil)
	if prior != 40 {
		t.Errorf("prior total = %d, expected 40", prior)
	}
	if state.TotalScore != 40 {
		t.Errorf("TotalScore = %d, expected 40", state.TotalScore)
	}
}

// TestPageRiskStateDangerous tests the threshold comparison, including the
// boundary case where the total equals the threshold exactly.
func TestPageRiskStateDangerous(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		score     int
		threshold int
		expected  bool
	}{
		{"below threshold", 49, 50, false},
		{"at threshold", 50, 50, true},
		{"above threshold", 80, 50, true},
		{"zero score", 0, 50, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			state := NewPageRiskState("tab-1", "https://example.com", tc.threshold)
			state.Append([]Finding{{Score: tc.score}})
			if got := state.Dangerous(); got != tc.expected {
				t.Errorf("Dangerous() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

// TestPageRiskStateSnapshot tests that Snapshot copies findings so the
// report cannot observe later mutations.
func TestPageRiskStateSnapshot(t *testing.T) {
	t.Parallel()

	state := NewPageRiskState("tab-1", "https://example.com", 50)
	state.Append([]Finding{{Kind: KindSuspiciousTLD, Score: 30, Description: "bad tld"}})

	report := state.Snapshot()

	// Mutate the live state after snapshotting.
	state.Append([]Finding{{Kind: KindScamContent, Score: 45}})

	if len(report.Findings) != 1 {
		t.Errorf("snapshot has %d findings, expected 1", len(report.Findings))
	}
	if report.TotalScore != 30 {
		t.Errorf("snapshot TotalScore = %d, expected 30", report.TotalScore)
	}
	if report.Dangerous {
		t.Error("snapshot should not be dangerous at score 30")
	}
	if state.TotalScore != 75 {
		t.Errorf("live TotalScore = %d, expected 75", state.TotalScore)
	}
}

// TestAnalysisStateString tests the String method of AnalysisState.
func TestAnalysisStateString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		state    AnalysisState
		expected string
	}{
		{StateCreated, "created"},
		{StatePartiallyAnalyzed, "partially_analyzed"},
		{StateFullyAnalyzed, "fully_analyzed"},
		{AnalysisState(999), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.state.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.state.String(), tc.expected)
			}
		})
	}
}
