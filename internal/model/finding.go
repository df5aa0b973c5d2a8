package model

// DetectorKind identifies which detector produced a finding.
// Each kind carries a fixed base weight that contributes to the page's
// total risk score when the detector fires.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and switch statements. The String() method
// provides the stable wire identifier used in JSON output and storage.
type DetectorKind int

const (
	// KindSuspiciousTLD indicates the hostname ends with a top-level domain
	// that is disproportionately used by throwaway scam sites (.xyz, .top, ...).
	KindSuspiciousTLD DetectorKind = iota

	// KindTyposquatting indicates the hostname embeds the first label of a
	// well-known site without being that site (e.g. "paypa1-login.example").
	KindTyposquatting

	// KindRecentDomain indicates the domain was registered only days ago.
	// Scam campaigns overwhelmingly run on freshly registered domains.
	KindRecentDomain

	// KindScamContent indicates the page text tripped the keyword classifier.
	KindScamContent

	// KindFormjackingSuspected indicates a payment form submits card data to
	// a host that is neither the current page nor a known payment gateway.
	// This is the strongest single signal and carries the highest weight.
	KindFormjackingSuspected
)

// String returns the stable identifier for the detector kind.
// These identifiers appear in JSON reports and stored findings, so they
// must not change between releases.
func (k DetectorKind) String() string {
	switch k {
	case KindSuspiciousTLD:
		return "suspicious_tld"
	case KindTyposquatting:
		return "typosquatting"
	case KindRecentDomain:
		return "recent_domain"
	case KindScamContent:
		return "scam_content"
	case KindFormjackingSuspected:
		return "formjacking_suspected"
	default:
		return "unknown"
	}
}

// Default base weights for each detector kind.
// The values reflect how strongly each signal correlates with actual scams:
// formjacking is near-certain fraud, while a suspicious TLD alone is weak.
const (
	DefaultWeightSuspiciousTLD        = 30
	DefaultWeightTyposquatting        = 40
	DefaultWeightRecentDomain         = 50
	DefaultWeightScamContent          = 45
	DefaultWeightFormjackingSuspected = 80
)

// Weights maps each detector kind to its base score contribution.
// A Weights value is owned by configuration and passed into detectors at
// construction time; detectors never consult global state.
type Weights struct {
	// SuspiciousTLD is the score for a hostname on a suspicious TLD.
	SuspiciousTLD int `yaml:"suspiciousTLD"`

	// Typosquatting is the score for a hostname imitating a known site.
	Typosquatting int `yaml:"typosquatting"`

	// RecentDomain is the score for a freshly registered domain.
	RecentDomain int `yaml:"recentDomain"`

	// ScamContent is the score for classifier-flagged page text.
	ScamContent int `yaml:"scamContent"`

	// FormjackingSuspected is the score for a hijacked payment form.
	FormjackingSuspected int `yaml:"formjackingSuspected"`
}

// DefaultWeights returns the standard base weights.
func DefaultWeights() Weights {
	return Weights{
		SuspiciousTLD:        DefaultWeightSuspiciousTLD,
		Typosquatting:        DefaultWeightTyposquatting,
		RecentDomain:         DefaultWeightRecentDomain,
		ScamContent:          DefaultWeightScamContent,
		FormjackingSuspected: DefaultWeightFormjackingSuspected,
	}
}

// For returns the weight for the given detector kind.
// Unknown kinds score zero so a future kind cannot silently inflate totals.
func (w Weights) For(kind DetectorKind) int {
	switch kind {
	case KindSuspiciousTLD:
		return w.SuspiciousTLD
	case KindTyposquatting:
		return w.Typosquatting
	case KindRecentDomain:
		return w.RecentDomain
	case KindScamContent:
		return w.ScamContent
	case KindFormjackingSuspected:
		return w.FormjackingSuspected
	default:
		return 0
	}
}

// Finding is a single scored piece of evidence about a page.
// Findings are immutable once created and are produced by exactly one
// detector invocation.
type Finding struct {
	// Kind identifies the detector that produced this finding.
	Kind DetectorKind `json:"kind"`

	// Description is a human-readable explanation shown to the user,
	// e.g. "Domain registered only 3 days ago".
	Description string `json:"description"`

	// Score is the risk contribution of this finding. Always >= 0.
	Score int `json:"score"`
}

// MarshalText implements encoding.TextMarshaler so DetectorKind serializes
// as its stable string identifier instead of a bare integer.
func (k DetectorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// SumScores returns the exact sum of all finding scores.
// This is the single source of truth for total score computation: the
// aggregator recomputes the sum from scratch after every update rather than
// maintaining a running counter that could drift.
func SumScores(findings []Finding) int {
	total := 0
	for _, f := range findings {
		total += f.Score
	}
	return total
}
