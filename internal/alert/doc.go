// Package alert delivers threshold-crossing warnings to the user.
//
// A crossing produces exactly two effects: a system-level notification and a
// SHOW_WARNING instruction addressed to the page's rendering context. The
// dispatcher performs no deduplication of its own; the aggregator's
// alert-fired gate guarantees at most one dispatch per page lifetime, and
// the dispatcher trusts that invariant.
//
// The package also defines the typed message envelopes exchanged between the
// detection environment and the rendering context (SHOW_WARNING downstream,
// CONTENT_ANALYSIS and PAGE_TEXT_CONTENT upstream).
package alert
