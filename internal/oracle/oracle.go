package oracle

import (
	"context"
	"errors"
	"hash/fnv"
	"time"
)

// ErrLookupFailed wraps failures of the underlying registration-data lookup.
// Callers on the detection path treat this as fail-open (zero findings).
var ErrLookupFailed = errors.New("oracle: domain age lookup failed")

// Age is the result of a domain-age lookup.
type Age struct {
	// IsRecent is true when the domain was registered recently enough to be
	// suspicious.
	IsRecent bool `json:"isRecent"`

	// DaysOld is the domain age in days. Only meaningful when IsRecent is
	// true; established domains report zero to avoid implying precision the
	// simulation doesn't have.
	DaysOld int `json:"daysOld,omitempty"`
}

// Client performs the actual registration-data lookup for a hostname.
// Implementations may block on network I/O and must honor the context.
type Client interface {
	Lookup(ctx context.Context, hostname string) (Age, error)
}

// Oracle answers domain-age queries, memoizing results per hostname for a
// fixed TTL. It is safe for concurrent use.
type Oracle struct {
	client Client
	cache  *ttlCache
}

// Option configures an Oracle.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock sets the time source used for cache expiry.
// Tests use this to advance time without sleeping.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// New creates an Oracle backed by client, caching results for ttl.
func New(client Client, ttl time.Duration, opts ...Option) *Oracle {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return &Oracle{
		client: client,
		cache:  newTTLCache(ttl, o.now),
	}
}

// AgeOf returns the age classification for hostname, serving from cache when
// a live entry exists. A lookup after expiry triggers a fresh client call.
func (o *Oracle) AgeOf(ctx context.Context, hostname string) (Age, error) {
	if age, ok := o.cache.get(hostname); ok {
		return age, nil
	}

	age, err := o.client.Lookup(ctx, hostname)
	if err != nil {
		return Age{}, errors.Join(ErrLookupFailed, err)
	}

	o.cache.put(hostname, age)
	return age, nil
}

// SimulatedClient is a deterministic stand-in for a WHOIS/RDAP lookup.
//
// Roughly 30% of hostnames are classified as recent, matching the
// distribution the risk model was tuned against. The classification is a
// pure function of the hostname so repeated scans of the same site agree
// with each other, unlike the original randomized simulation.
type SimulatedClient struct {
	// RecentDays is the maximum simulated age in days for a recent domain.
	RecentDays int
}

// NewSimulatedClient creates a simulated lookup client.
// recentDays bounds the reported age of domains classified as recent.
func NewSimulatedClient(recentDays int) *SimulatedClient {
	if recentDays <= 0 {
		recentDays = 30
	}
	return &SimulatedClient{RecentDays: recentDays}
}

// Lookup classifies hostname by hashing it.
func (s *SimulatedClient) Lookup(ctx context.Context, hostname string) (Age, error) {
	select {
	case <-ctx.Done():
		return Age{}, ctx.Err()
	default:
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(hostname))
	sum := h.Sum32()

	if sum%10 < 7 {
		return Age{IsRecent: false}, nil
	}
	return Age{
		IsRecent: true,
		DaysOld:  int(sum%uint32(s.RecentDays)) + 1, //nolint:gosec // RecentDays is a small positive constant
	}, nil
}
