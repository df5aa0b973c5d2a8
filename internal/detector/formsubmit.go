package detector

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/simplifyx/scamguard/internal/config"
	"github.com/simplifyx/scamguard/internal/model"
)

// cardFieldMarkers are substrings of input field names that indicate a
// payment card field. Matching mirrors the common autocomplete conventions
// (name*="card", name*="cc-num").
var cardFieldMarkers = []string{"card", "cc-num"}

// FormSubmit detects formjacking: a form collecting payment card data that
// submits to a host which is neither the current page's host nor a known
// payment gateway.
//
// Legitimate checkout pages routinely post card data to gateway domains, so
// the gateway allow-list keeps the detector quiet for stripe/paypal-style
// integrations; anything else cross-origin is treated as card skimming.
type FormSubmit struct {
	lists   *config.Lists
	weights model.Weights
}

// NewFormSubmit creates the form-submission detector.
func NewFormSubmit(lists *config.Lists, weights model.Weights) *FormSubmit {
	return &FormSubmit{lists: lists, weights: weights}
}

// Name returns the detector name.
func (d *FormSubmit) Name() string {
	return "form_submit"
}

// Detect evaluates a form submission event, if the evidence carries one.
// Malformed submission-target URLs are swallowed: no finding, no error.
func (d *FormSubmit) Detect(_ context.Context, ev *Evidence) ([]model.Finding, error) {
	if ev.Form == nil || !hasCardField(ev.Form.FieldNames) {
		return nil, nil
	}

	pageURL, err := url.Parse(ev.PageURL)
	if err != nil || pageURL.Hostname() == "" {
		return nil, nil
	}
	actionURL, err := url.Parse(ev.Form.Action)
	if err != nil || actionURL.Hostname() == "" {
		return nil, nil
	}

	pageHost := strings.ToLower(pageURL.Hostname())
	targetHost := strings.ToLower(actionURL.Hostname())

	if targetHost == pageHost {
		return nil, nil
	}
	for _, gateway := range d.lists.PaymentGateways() {
		if strings.Contains(targetHost, gateway) {
			return nil, nil
		}
	}

	return []model.Finding{{
		Kind:        model.KindFormjackingSuspected,
		Description: fmt.Sprintf("Payment form sends data to a suspicious host: %s", targetHost),
		Score:       d.weights.For(model.KindFormjackingSuspected),
	}}, nil
}

// hasCardField reports whether any field name looks like a card input.
func hasCardField(fieldNames []string) bool {
	for _, name := range fieldNames {
		lowered := strings.ToLower(name)
		for _, marker := range cardFieldMarkers {
			if strings.Contains(lowered, marker) {
				return true
			}
		}
	}
	return false
}
