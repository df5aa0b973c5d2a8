// Package main provides the entry point for the ScamGuard CLI.
//
// ScamGuard analyzes web pages for phishing and scam signals: suspicious
// TLDs, typosquatting, freshly registered domains, scam-pattern text, and
// payment forms submitting to unexpected hosts.
//
// Usage:
//
//	scamguard scan <url>
//	scamguard serve
//
// See --help for all available options.
package main

// main is the entry point for ScamGuard.
func main() {
	Execute()
}
