package config

import "sync"

// Defaults for the threat lists. These seed both the Lists object and the
// SQLite threats table on first run. The keyword table targets
// Portuguese-language scams, matching the audience the risk model was
// built for.
var (
	// defaultSuspiciousTLDs are top-level domains disproportionately used
	// by throwaway scam sites.
	defaultSuspiciousTLDs = []string{".xyz", ".top", ".club", ".info", ".biz"}

	// defaultKnownSites are frequently-imitated legitimate domains used by
	// the typosquatting heuristic.
	defaultKnownSites = []string{
		"google.com", "facebook.com", "paypal.com", "amazon.com",
		"apple.com", "microsoft.com", "netflix.com", "mercadolivre.com.br",
	}

	// defaultPaymentGateways are hosts that legitimately receive payment
	// form submissions from third-party sites.
	defaultPaymentGateways = []string{
		"stripe.com", "paypal.com", "mercadopago.com.br", "pagseguro.uol.com.br",
	}

	// defaultScamKeywords maps keyword phrases to their scam weights.
	// Each phrase contributes at most once per classified text.
	defaultScamKeywords = map[string]int{
		"parabéns": 10, "você ganhou": 20, "prémio": 15, "exclusivo": 10,
		"aja agora": 15, "oferta": 10, "expira": 10, "tempo limitado": 15,
		"clique aqui": 5, "garantido": 20, "grátis": 10, "sorteio": 10,
		"renda extra": 15, "fácil": 10, "dinheiro": 10, "investimento": 15,
		"segredo": 10, "milionário": 20, "risco zero": 25,
		"login de segurança": 30, "conta suspensa": 35, "verificar dados": 25,
	}
)

// ListsData is the serializable form of the threat lists.
// It is the YAML schema for lists files and the payload for Reload.
type ListsData struct {
	// SuspiciousTLDs are TLD suffixes matched against hostnames.
	// Entries should include the leading dot (".xyz").
	SuspiciousTLDs []string `yaml:"suspiciousTLDs,omitempty"`

	// KnownSites are legitimate domains checked by the typosquatting
	// heuristic.
	KnownSites []string `yaml:"knownSites,omitempty"`

	// PaymentGateways are hosts allowed to receive cross-origin payment
	// form submissions.
	PaymentGateways []string `yaml:"paymentGateways,omitempty"`

	// ScamKeywords maps classifier keyword phrases to weights.
	ScamKeywords map[string]int `yaml:"scamKeywords,omitempty"`
}

// Lists is the explicitly-owned container for all threat lists.
// Detectors receive a *Lists at construction time and read from it on every
// invocation; Reload atomically replaces the contents so a running process
// can pick up refreshed lists without re-wiring detectors.
//
// Design decision: accessors return copies rather than internal slices so a
// reload can never race with a detector iterating a list it was handed.
type Lists struct {
	mu   sync.RWMutex
	data ListsData
}

// DefaultLists returns a Lists populated with the built-in defaults.
func DefaultLists() *Lists {
	l := &Lists{}
	l.Reload(ListsData{})
	return l
}

// NewLists returns a Lists populated from data, with defaults filling any
// empty section.
func NewLists(data ListsData) *Lists {
	l := &Lists{}
	l.Reload(data)
	return l
}

// Reload atomically replaces the list contents. Empty sections fall back to
// the built-in defaults so a partial override file stays functional.
func (l *Lists) Reload(data ListsData) {
	if len(data.SuspiciousTLDs) == 0 {
		data.SuspiciousTLDs = defaultSuspiciousTLDs
	}
	if len(data.KnownSites) == 0 {
		data.KnownSites = defaultKnownSites
	}
	if len(data.PaymentGateways) == 0 {
		data.PaymentGateways = defaultPaymentGateways
	}
	if len(data.ScamKeywords) == 0 {
		data.ScamKeywords = defaultScamKeywords
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.data = data
}

// SuspiciousTLDs returns a copy of the suspicious TLD suffixes.
func (l *Lists) SuspiciousTLDs() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return copyStrings(l.data.SuspiciousTLDs)
}

// KnownSites returns a copy of the known legitimate domains.
func (l *Lists) KnownSites() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return copyStrings(l.data.KnownSites)
}

// PaymentGateways returns a copy of the payment gateway allow-list.
func (l *Lists) PaymentGateways() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return copyStrings(l.data.PaymentGateways)
}

// ScamKeywords returns a copy of the classifier keyword table.
func (l *Lists) ScamKeywords() map[string]int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	keywords := make(map[string]int, len(l.data.ScamKeywords))
	for phrase, weight := range l.data.ScamKeywords {
		keywords[phrase] = weight
	}
	return keywords
}

func copyStrings(src []string) []string {
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}
