// Package page fetches a web page and extracts the evidence the detectors
// need: the title, the visible text, and every form with its submission
// target and field names.
//
// Design decision: We use golang.org/x/net/html for extraction rather than
// regex because:
//  1. It correctly handles malformed HTML common on the web
//  2. Provides a proper DOM-like structure
//  3. More maintainable than complex regex patterns
//
// The fetcher reads at most a configured number of bytes from the response
// body; scam pages are routinely bloated and the classifier only samples
// the leading text anyway.
package page
