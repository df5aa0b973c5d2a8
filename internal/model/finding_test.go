package model

import "testing"

// TestDetectorKindString tests the String method of DetectorKind.
func TestDetectorKindString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		kind     DetectorKind
		expected string
	}{
		{KindSuspiciousTLD, "suspicious_tld"},
		{KindTyposquatting, "typosquatting"},
		{KindRecentDomain, "recent_domain"},
		{KindScamContent, "scam_content"},
		{KindFormjackingSuspected, "formjacking_suspected"},
		{DetectorKind(999), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.kind.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.kind.String(), tc.expected)
			}
		})
	}
}

// TestDefaultWeights tests that the default weights match the documented
// base weights for each detector kind.
func TestDefaultWeights(t *testing.T) {
	t.Parallel()

	w := DefaultWeights()

	testCases := []struct {
		kind     DetectorKind
		expected int
	}{
		{KindSuspiciousTLD, 30},
		{KindTyposquatting, 40},
		{KindRecentDomain, 50},
		{KindScamContent, 45},
		{KindFormjackingSuspected, 80},
	}

	for _, tc := range testCases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			t.Parallel()
			if got := w.For(tc.kind); got != tc.expected {
				t.Errorf("For(%v) = %d, expected %d", tc.kind, got, tc.expected)
			}
		})
	}

	t.Run("unknown kind scores zero", func(t *testing.T) {
		t.Parallel()
		if got := w.For(DetectorKind(999)); got != 0 {
			t.Errorf("For(unknown) = %d, expected 0", got)
		}
	})
}

// TestSumScores tests exact score summation.
func TestSumScores(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		findings []Finding
		expected int
	}{
		{"empty", nil, 0},
		{"single", []Finding{{Kind: KindSuspiciousTLD, Score: 30}}, 30},
		{
			"multiple",
			[]Finding{
				{Kind: KindSuspiciousTLD, Score: 30},
				{Kind: KindScamContent, Score: 45},
				{Kind: KindFormjackingSuspected, Score: 80},
			},
			155,
		},
		{"zero scores", []Finding{{Score: 0}, {Score: 0}}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := SumScores(tc.findings); got != tc.expected {
				t.Errorf("SumScores() = %d, expected %d", got, tc.expected)
			}
		})
	}
}

// TestDetectorKindMarshalText tests JSON-friendly serialization of kinds.
func TestDetectorKindMarshalText(t *testing.T) {
	t.Parallel()

	b, err := KindRecentDomain.MarshalText()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != "recent_domain" {
		t.Errorf("got %q, expected %q", string(b), "recent_domain")
	}
}
