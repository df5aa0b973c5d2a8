package detector

import (
	"context"
	"strings"
	"testing"

	"github.com/simplifyx/scamguard/internal/classifier"
	"github.com/simplifyx/scamguard/internal/config"
	"github.com/simplifyx/scamguard/internal/model"
)

func newTestContentDetector() *Content {
	c := classifier.New(config.DefaultLists().ScamKeywords(), config.DefaultScamCutoff)
	return NewContent(c, model.DefaultWeights(), config.DefaultTextSampleSize, nil)
}

// TestContentDetect tests that scam text produces a ScamContent finding
// and benign text does not.
func TestContentDetect(t *testing.T) {
	t.Parallel()

	d := newTestContentDetector()
	ctx := context.Background()

	t.Run("scam text emits finding", func(t *testing.T) {
		t.Parallel()

		// conta suspensa(35) + verificar dados(25) + clique aqui(5) = 65 > 60
		ev := &Evidence{Text: "A sua conta suspensa! Verificar dados, clique aqui."}
		findings, err := d.Detect(ctx, ev)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(findings) != 1 {
			t.Fatalf("got %d findings, expected 1", len(findings))
		}
		if findings[0].Kind != model.KindScamContent {
			t.Errorf("Kind = %v, expected KindScamContent", findings[0].Kind)
		}
		if findings[0].Score != 45 {
			t.Errorf("Score = %d, expected 45", findings[0].Score)
		}
	})

	t.Run("at-cutoff text emits nothing", func(t *testing.T) {
		t.Parallel()

		// Sums to exactly 60; cutoff is strictly greater-than.
		ev := &Evidence{Text: "Parabéns! Você ganhou um prémio exclusivo, clique aqui!"}
		findings, err := d.Detect(ctx, ev)
		if err != nil {
			t.Fatal(err)
		}
		if len(findings) != 0 {
			t.Errorf("got %d findings, expected none", len(findings))
		}
	})

	t.Run("benign text emits nothing", func(t *testing.T) {
		t.Parallel()

		findings, err := d.Detect(ctx, &Evidence{Text: "Catálogo de produtos e horário de abertura."})
		if err != nil {
			t.Fatal(err)
		}
		if len(findings) != 0 {
			t.Errorf("got %d findings, expected none", len(findings))
		}
	})

	t.Run("empty text emits nothing", func(t *testing.T) {
		t.Parallel()

		findings, err := d.Detect(ctx, &Evidence{Text: ""})
		if err != nil {
			t.Fatal(err)
		}
		if len(findings) != 0 {
			t.Errorf("got %d findings, expected none", len(findings))
		}
	})
}

// TestContentDetectSampleBound tests that keywords beyond the sample bound
// are not classified.
func TestContentDetectSampleBound(t *testing.T) {
	t.Parallel()

	c := classifier.New(config.DefaultLists().ScamKeywords(), config.DefaultScamCutoff)
	d := NewContent(c, model.DefaultWeights(), 100, nil)

	// Padding pushes the scam phrases past the 100-character sample.
	text := strings.Repeat("a", 200) + " conta suspensa verificar dados clique aqui"
	findings, err := d.Detect(context.Background(), &Evidence{Text: text})
	if err != nil {
		t.Fatal(err)
	}
	if len(findings) != 0 {
		t.Errorf("got %d findings, expected none (keywords outside sample)", len(findings))
	}
}

// TestTruncateRunes tests rune-safe truncation.
func TestTruncateRunes(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{"shorter than bound", "abc", 10, "abc"},
		{"exact bound", "abc", 3, "abc"},
		{"truncated", "abcdef", 3, "abc"},
		{"multi-byte runes", "prémio", 4, "prém"},
		{"zero bound", "abc", 0, ""},
		{"empty input", "", 5, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := truncateRunes(tc.input, tc.n); got != tc.expected {
				t.Errorf("truncateRunes(%q, %d) = %q, expected %q", tc.input, tc.n, got, tc.expected)
			}
		})
	}
}
