package page

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sampleHTML = `<!DOCTYPE html>
<html>
<head>
  <title>  Parabéns! Você ganhou  </title>
  <style>body { color: red; }</style>
  <script>var secret = "ignore me";</script>
</head>
<body>
  <h1>Oferta exclusiva</h1>
  <p>Clique aqui para o seu prémio.</p>
  <form action="https://evil-payments.example/collect" method="post">
    <input type="text" name="holder">
    <input type="text" name="card-number">
    <input type="hidden" value="nameless">
    <select name="installments"><option>1</option></select>
  </form>
  <form>
    <textarea name="comment"></textarea>
  </form>
</body>
</html>`

// TestExtractTitleAndText tests that extraction yields the trimmed title
// and the visible text without script or style contents.
func TestExtractTitleAndText(t *testing.T) {
	t.Parallel()

	got, err := Extract(strings.NewReader(sampleHTML), "https://shop.example/checkout")
	if err != nil {
		t.Fatal(err)
	}

	if got.Title != "Parabéns! Você ganhou" {
		t.Errorf("Title = %q", got.Title)
	}
	if !strings.Contains(got.Text, "Oferta exclusiva") {
		t.Errorf("Text %q missing body copy", got.Text)
	}
	if strings.Contains(got.Text, "ignore me") {
		t.Error("script content leaked into visible text")
	}
	if strings.Contains(got.Text, "color: red") {
		t.Error("style content leaked into visible text")
	}
	if strings.Contains(got.Text, "  ") {
		t.Error("whitespace was not collapsed")
	}
}

// TestExtractForms tests form action resolution and field name collection.
func TestExtractForms(t *testing.T) {
	t.Parallel()

	got, err := Extract(strings.NewReader(sampleHTML), "https://shop.example/checkout")
	if err != nil {
		t.Fatal(err)
	}

	if len(got.Forms) != 2 {
		t.Fatalf("got %d forms, expected 2", len(got.Forms))
	}

	first := got.Forms[0]
	if first.Action != "https://evil-payments.example/collect" {
		t.Errorf("Action = %q", first.Action)
	}
	want := []string{"holder", "card-number", "installments"}
	if len(first.FieldNames) != len(want) {
		t.Fatalf("FieldNames = %v, expected %v", first.FieldNames, want)
	}
	for i, name := range want {
		if first.FieldNames[i] != name {
			t.Errorf("FieldNames[%d] = %q, expected %q", i, first.FieldNames[i], name)
		}
	}

	// An actionless form submits to the page itself.
	if got.Forms[1].Action != "https://shop.example/checkout" {
		t.Errorf("actionless form Action = %q, expected the page URL", got.Forms[1].Action)
	}
}

// TestExtractRelativeAction tests that a relative form action resolves
// against the page URL.
func TestExtractRelativeAction(t *testing.T) {
	t.Parallel()

	doc := `<form action="/pay"><input name="card"></form>`
	got, err := Extract(strings.NewReader(doc), "https://shop.example/checkout")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Forms) != 1 {
		t.Fatalf("got %d forms, expected 1", len(got.Forms))
	}
	if got.Forms[0].Action != "https://shop.example/pay" {
		t.Errorf("Action = %q, expected https://shop.example/pay", got.Forms[0].Action)
	}
}

// TestFetcherFetch tests fetching and extracting against a local server.
func TestFetcherFetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write([]byte(sampleHTML)); err != nil {
			t.Error(err)
		}
	}))
	defer srv.Close()

	f := NewFetcher(WithHTTPClient(srv.Client()))
	got, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Parabéns! Você ganhou" {
		t.Errorf("Title = %q", got.Title)
	}
	if len(got.Forms) != 2 {
		t.Errorf("got %d forms, expected 2", len(got.Forms))
	}
}

// TestFetcherRejectsNonHTML tests the content-type guard.
func TestFetcherRejectsNonHTML(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		if _, err := w.Write([]byte("%PDF-1.4")); err != nil {
			t.Error(err)
		}
	}))
	defer srv.Close()

	f := NewFetcher(WithHTTPClient(srv.Client()))
	if _, err := f.Fetch(context.Background(), srv.URL); !errors.Is(err, ErrNotHTML) {
		t.Errorf("err = %v, expected ErrNotHTML", err)
	}
}

// TestFetcherRejectsBadStatus tests the status guard.
func TestFetcherRejectsBadStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(WithHTTPClient(srv.Client()))
	if _, err := f.Fetch(context.Background(), srv.URL); !errors.Is(err, ErrBadStatus) {
		t.Errorf("err = %v, expected ErrBadStatus", err)
	}
}

// TestFetcherBoundsBody tests that oversized bodies are truncated rather
// than read in full.
func TestFetcherBoundsBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		if _, err := w.Write([]byte("<html><body>" + strings.Repeat("a", 4096) + "</body></html>")); err != nil {
			t.Error(err)
		}
	}))
	defer srv.Close()

	f := NewFetcher(WithHTTPClient(srv.Client()), WithMaxBodySize(64))
	got, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Text) > 64 {
		t.Errorf("text length %d exceeds the body bound", len(got.Text))
	}
}
