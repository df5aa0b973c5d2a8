package detector

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/simplifyx/scamguard/internal/config"
	"github.com/simplifyx/scamguard/internal/model"
)

// URLStructure flags suspicious traits of the navigated URL itself:
// a suspicious top-level domain, or a hostname that embeds the name of a
// well-known site without being that site (typosquatting).
//
// Known limitation: the typosquatting check is a substring test on the
// known site's first label, not an edit-distance comparison. It will flag
// legitimate subdomains such as "shop.example.com" when "example.com" is a
// known site. This over-firing is deliberate; the weight is sized so a
// typosquatting hit alone stays below the alert threshold.
type URLStructure struct {
	lists   *config.Lists
	weights model.Weights
}

// NewURLStructure creates the URL-structure detector.
func NewURLStructure(lists *config.Lists, weights model.Weights) *URLStructure {
	return &URLStructure{lists: lists, weights: weights}
}

// Name returns the detector name.
func (d *URLStructure) Name() string {
	return "url_structure"
}

// Detect parses the page URL and checks it against the threat lists.
// A malformed URL yields no findings rather than an error: there is nothing
// meaningful to score and the page analysis must continue.
func (d *URLStructure) Detect(_ context.Context, ev *Evidence) ([]model.Finding, error) {
	u, err := url.Parse(ev.PageURL)
	if err != nil || u.Hostname() == "" {
		return nil, nil
	}
	hostname := strings.ToLower(u.Hostname())

	findings := make([]model.Finding, 0, 2)

	for _, tld := range d.lists.SuspiciousTLDs() {
		if strings.HasSuffix(hostname, tld) {
			findings = append(findings, model.Finding{
				Kind:        model.KindSuspiciousTLD,
				Description: fmt.Sprintf("Suspicious top-level domain (%s)", hostname[strings.LastIndex(hostname, "."):]),
				Score:       d.weights.For(model.KindSuspiciousTLD),
			})
			break
		}
	}

	for _, site := range d.lists.KnownSites() {
		label, _, _ := strings.Cut(site, ".")
		if label == "" {
			continue
		}
		if strings.Contains(hostname, label) && hostname != site && hostname != "www."+site {
			findings = append(findings, model.Finding{
				Kind:        model.KindTyposquatting,
				Description: fmt.Sprintf("Hostname may be imitating a well-known site (%s)", site),
				Score:       d.weights.For(model.KindTyposquatting),
			})
			break
		}
	}

	return findings, nil
}
