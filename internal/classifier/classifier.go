package classifier

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidInput is returned when the input text is not valid UTF-8.
// The classifier operates on textual content only; binary garbage would
// produce meaningless scores.
var ErrInvalidInput = errors.New("classifier: input is not valid UTF-8 text")

// MaxProbability is the upper bound of the probability scale.
const MaxProbability = 100

// lower performs Unicode-aware lower-casing. The keyword table contains
// accented Portuguese phrases, so ASCII-only folding would miss matches.
var lower = cases.Lower(language.Und)

// Result is the outcome of classifying a text sample.
type Result struct {
	// Probability is the scam probability in [0, 100].
	Probability int `json:"probabilidadeDeScam"` //nolint:tagliatelle // wire format predates this implementation

	// IsScam is true when Probability strictly exceeds the cutoff.
	IsScam bool `json:"isScam"`
}

// Classifier scores text against a weighted keyword table.
// It is stateless after construction and safe for concurrent use.
type Classifier struct {
	// keywords maps lower-cased phrases to their weights.
	keywords map[string]int

	// cutoff is the probability above which text is considered scam.
	// The comparison is strictly greater-than.
	cutoff int
}

// New creates a Classifier from a keyword table and cutoff.
// Keyword phrases are lower-cased once here so Classify only folds the
// input text.
func New(keywords map[string]int, cutoff int) *Classifier {
	folded := make(map[string]int, len(keywords))
	for phrase, weight := range keywords {
		folded[lower.String(phrase)] = weight
	}
	return &Classifier{keywords: folded, cutoff: cutoff}
}

// Classify scores the given text.
//
// Each keyword phrase present as a substring contributes its weight exactly
// once regardless of how many times it occurs. The total is clamped to 100.
// The verdict uses a strict comparison: a probability equal to the cutoff is
// not a scam.
//
// Classify has no side effects and is deterministic; the only failure mode
// is non-textual input.
func (c *Classifier) Classify(text string) (Result, error) {
	if !utf8.ValidString(text) {
		return Result{}, ErrInvalidInput
	}

	folded := lower.String(text)

	score := 0
	for phrase, weight := range c.keywords {
		if strings.Contains(folded, phrase) {
			score += weight
		}
	}

	if score > MaxProbability {
		score = MaxProbability
	}

	return Result{
		Probability: score,
		IsScam:      score > c.cutoff,
	}, nil
}
