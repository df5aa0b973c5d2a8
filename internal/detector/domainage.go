package detector

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/simplifyx/scamguard/internal/model"
	"github.com/simplifyx/scamguard/internal/oracle"
)

// DomainAge asks the domain-age oracle whether the page's domain was
// registered recently. The oracle call may block on network I/O; the
// aggregator invokes this detector asynchronously and merges the result
// into the page state when it arrives.
//
// Failure policy: fail-open. If the oracle is unreachable the page simply
// loses this one signal; a missing WHOIS answer must never block or crash
// the rest of the analysis.
type DomainAge struct {
	oracle  *oracle.Oracle
	weights model.Weights
	logger  *slog.Logger
}

// NewDomainAge creates the domain-age detector.
func NewDomainAge(o *oracle.Oracle, weights model.Weights, logger *slog.Logger) *DomainAge {
	if logger == nil {
		logger = slog.Default()
	}
	return &DomainAge{oracle: o, weights: weights, logger: logger}
}

// Name returns the detector name.
func (d *DomainAge) Name() string {
	return "domain_age"
}

// Detect looks up the age of the page's domain.
func (d *DomainAge) Detect(ctx context.Context, ev *Evidence) ([]model.Finding, error) {
	u, err := url.Parse(ev.PageURL)
	if err != nil || u.Hostname() == "" {
		return nil, nil
	}
	hostname := u.Hostname()

	age, err := d.oracle.AgeOf(ctx, hostname)
	if err != nil {
		d.logger.Warn("domain age lookup failed, continuing without this signal",
			"hostname", hostname,
			"error", err,
		)
		return nil, nil
	}

	if !age.IsRecent {
		return nil, nil
	}

	return []model.Finding{{
		Kind:        model.KindRecentDomain,
		Description: fmt.Sprintf("Domain registered only %d days ago", age.DaysOld),
		Score:       d.weights.For(model.KindRecentDomain),
	}}, nil
}
