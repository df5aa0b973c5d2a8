package page

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/simplifyx/scamguard/internal/detector"
)

// Extraction is everything pulled out of one HTML document.
type Extraction struct {
	// Title is the page title from the <title> tag.
	Title string

	// Text is the visible text of the document, whitespace-collapsed.
	// Script and style contents are excluded.
	Text string

	// Forms lists every form with its resolved action URL and the name
	// attributes of its input fields.
	Forms []detector.FormSubmission
}

// Extract parses HTML content and pulls out the detector evidence.
// Relative form actions are resolved against baseURL.
func Extract(content io.Reader, baseURL string) (*Extraction, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	result := &Extraction{Forms: make([]detector.FormSubmission, 0)}

	var text strings.Builder
	var walk func(n *html.Node, inHidden bool)
	walk = func(n *html.Node, inHidden bool) {
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript", "template":
				inHidden = true
			case "title":
				if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					result.Title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "form":
				result.Forms = append(result.Forms, extractForm(n, base))
			}
		case html.TextNode:
			if !inHidden {
				text.WriteString(n.Data)
				text.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inHidden)
		}
	}
	walk(doc, false)

	result.Text = collapseSpace(text.String())
	return result, nil
}

// extractForm builds a FormSubmission from a <form> element, resolving the
// action against the page URL and collecting named input fields.
func extractForm(n *html.Node, base *url.URL) detector.FormSubmission {
	form := detector.FormSubmission{
		Action:     resolveAction(getAttr(n, "action"), base),
		FieldNames: make([]string, 0),
	}

	var fields func(n *html.Node)
	fields = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "input", "select", "textarea":
				if name := getAttr(n, "name"); name != "" {
					form.FieldNames = append(form.FieldNames, name)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			fields(c)
		}
	}
	fields(n)

	return form
}

// resolveAction resolves a form action against the page URL. An empty
// action submits to the page itself.
func resolveAction(action string, base *url.URL) string {
	action = strings.TrimSpace(action)
	if action == "" {
		return base.String()
	}

	u, err := url.Parse(action)
	if err != nil {
		return action
	}
	return base.ResolveReference(u).String()
}

// collapseSpace folds runs of whitespace into single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
