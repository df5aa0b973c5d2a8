package detector

import (
	"context"
	"testing"

	"github.com/simplifyx/scamguard/internal/config"
	"github.com/simplifyx/scamguard/internal/model"
)

func newTestLists() *config.Lists {
	return config.NewLists(config.ListsData{
		SuspiciousTLDs:  []string{".xyz", ".top"},
		KnownSites:      []string{"example.com", "paypal.com"},
		PaymentGateways: []string{"stripe.com", "paypal.com"},
	})
}

// TestURLStructureDetect tests TLD and typosquatting detection.
func TestURLStructureDetect(t *testing.T) {
	t.Parallel()

	d := NewURLStructure(newTestLists(), model.DefaultWeights())
	ctx := context.Background()

	testCases := []struct {
		name      string
		pageURL   string
		kinds     []model.DetectorKind
		wantScore int
	}{
		{
			name:      "suspicious TLD",
			pageURL:   "http://example.xyz/login",
			kinds:     []model.DetectorKind{model.KindSuspiciousTLD},
			wantScore: 30,
		},
		{
			name:    "clean hostname",
			pageURL: "https://unrelated.org/page",
			kinds:   nil,
		},
		{
			name:      "typosquatting hostname",
			pageURL:   "https://paypal-secure-login.net/verify",
			kinds:     []model.DetectorKind{model.KindTyposquatting},
			wantScore: 40,
		},
		{
			name:    "exact known site is not typosquatting",
			pageURL: "https://paypal.com/checkout",
			kinds:   nil,
		},
		{
			name:    "www-prefixed known site is not typosquatting",
			pageURL: "https://www.paypal.com/checkout",
			kinds:   nil,
		},
		{
			// Documented limitation: legitimate subdomains over-fire.
			name:    "legitimate subdomain over-fires",
			pageURL: "https://shop.example.com/",
			kinds:   []model.DetectorKind{model.KindTyposquatting},
		},
		{
			name:    "both signals stack",
			pageURL: "http://paypal-prize.xyz/",
			kinds:   []model.DetectorKind{model.KindSuspiciousTLD, model.KindTyposquatting},
		},
		{
			name:    "malformed URL yields nothing",
			pageURL: "://not a url",
			kinds:   nil,
		},
		{
			name:    "URL without host yields nothing",
			pageURL: "file:///etc/passwd",
			kinds:   nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			findings, err := d.Detect(ctx, &Evidence{PageURL: tc.pageURL})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(findings) != len(tc.kinds) {
				t.Fatalf("got %d findings (%v), expected %d", len(findings), findings, len(tc.kinds))
			}
			for i, kind := range tc.kinds {
				if findings[i].Kind != kind {
					t.Errorf("finding[%d].Kind = %v, expected %v", i, findings[i].Kind, kind)
				}
			}
			if tc.wantScore != 0 && len(findings) == 1 && findings[0].Score != tc.wantScore {
				t.Errorf("Score = %d, expected %d", findings[0].Score, tc.wantScore)
			}
		})
	}
}

// TestURLStructureEmitsOnePerSignal tests that multiple matching list
// entries still yield at most one finding per signal.
func TestURLStructureEmitsOnePerSignal(t *testing.T) {
	t.Parallel()

	lists := config.NewLists(config.ListsData{
		SuspiciousTLDs:  []string{".xyz", ".info.xyz"},
		KnownSites:      []string{"example.com", "example.org"},
		PaymentGateways: []string{"stripe.com"},
	})
	d := NewURLStructure(lists, model.DefaultWeights())

	findings, err := d.Detect(context.Background(), &Evidence{PageURL: "http://example.info.xyz/"})
	if err != nil {
		t.Fatal(err)
	}

	tldCount, typoCount := 0, 0
	for _, f := range findings {
		switch f.Kind {
		case model.KindSuspiciousTLD:
			tldCount++
		case model.KindTyposquatting:
			typoCount++
		}
	}
	if tldCount > 1 {
		t.Errorf("got %d suspicious TLD findings, expected at most 1", tldCount)
	}
	if typoCount > 1 {
		t.Errorf("got %d typosquatting findings, expected at most 1", typoCount)
	}
}
