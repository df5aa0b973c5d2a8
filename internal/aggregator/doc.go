// Package aggregator owns the per-page risk state machine.
//
// Findings arrive asynchronously from heterogeneous sources: URL detectors
// run synchronously on navigation, the domain-age oracle answers later, the
// content classifier later still, and a form submission can land at any
// point. The aggregator merges them all into one monotonically-growing
// record per page and decides exactly when to fire the alert.
//
// The invariants that matter:
//   - Updates to one page's state are linearized: every finding batch runs
//     under that page's lock, so read-modify-write of the total score and
//     the alert-fired flag can never race.
//   - The alert fires if and only if the total crosses from below the
//     threshold to at-or-above it, at most once per page lifetime. The
//     fired flag is set inside the same critical section as the score
//     recomputation.
//   - Findings for a page that no longer exists (navigated away) are
//     discarded silently; late async results are expected, not an error.
//
// Design decision: linearization uses a per-page mutex held only for the
// in-memory update, not an actor goroutine per page. Updates are cheap and
// synchronous; alert dispatch, the only potentially slow effect, happens
// after the lock is released, protected by the already-set fired flag.
package aggregator
