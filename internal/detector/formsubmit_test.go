package detector

import (
	"context"
	"testing"

	"github.com/simplifyx/scamguard/internal/model"
)

// TestFormSubmitDetect tests formjacking detection against the gateway
// allow-list and same-host exemption.
func TestFormSubmitDetect(t *testing.T) {
	t.Parallel()

	d := NewFormSubmit(newTestLists(), model.DefaultWeights())
	ctx := context.Background()

	testCases := []struct {
		name        string
		pageURL     string
		form        *FormSubmission
		wantFinding bool
	}{
		{
			name:    "card form to unknown cross-origin host",
			pageURL: "https://shop.example.net/checkout",
			form: &FormSubmission{
				Action:     "https://evil-payments.example/collect",
				FieldNames: []string{"name", "card_number", "expiry"},
			},
			wantFinding: true,
		},
		{
			name:    "card form to known gateway",
			pageURL: "https://shop.example.net/checkout",
			form: &FormSubmission{
				Action:     "https://checkout.paypal.com/process",
				FieldNames: []string{"cc-number", "cvv"},
			},
			wantFinding: false,
		},
		{
			name:    "card form to same host",
			pageURL: "https://shop.example.net/checkout",
			form: &FormSubmission{
				Action:     "https://shop.example.net/pay",
				FieldNames: []string{"card"},
			},
			wantFinding: false,
		},
		{
			name:    "form without card fields",
			pageURL: "https://shop.example.net/contact",
			form: &FormSubmission{
				Action:     "https://evil-payments.example/collect",
				FieldNames: []string{"email", "message"},
			},
			wantFinding: false,
		},
		{
			name:    "malformed action URL is swallowed",
			pageURL: "https://shop.example.net/checkout",
			form: &FormSubmission{
				Action:     "://broken",
				FieldNames: []string{"card_number"},
			},
			wantFinding: false,
		},
		{
			name:        "no form submission",
			pageURL:     "https://shop.example.net/",
			form:        nil,
			wantFinding: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			findings, err := d.Detect(ctx, &Evidence{PageURL: tc.pageURL, Form: tc.form})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tc.wantFinding {
				if len(findings) != 1 {
					t.Fatalf("got %d findings, expected 1", len(findings))
				}
				f := findings[0]
				if f.Kind != model.KindFormjackingSuspected {
					t.Errorf("Kind = %v, expected KindFormjackingSuspected", f.Kind)
				}
				if f.Score != 80 {
					t.Errorf("Score = %d, expected 80", f.Score)
				}
			} else if len(findings) != 0 {
				t.Errorf("got %d findings, expected none: %v", len(findings), findings)
			}
		})
	}
}

// TestHasCardField tests card field name recognition.
func TestHasCardField(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		fields   []string
		expected bool
	}{
		{"card substring", []string{"billing_card_no"}, true},
		{"cc-num substring", []string{"cc-number"}, true},
		{"uppercase", []string{"CardNumber"}, true},
		{"unrelated fields", []string{"email", "password"}, false},
		{"empty", nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := hasCardField(tc.fields); got != tc.expected {
				t.Errorf("hasCardField(%v) = %v, expected %v", tc.fields, got, tc.expected)
			}
		})
	}
}
