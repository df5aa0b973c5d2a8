// Package oracle provides the domain-age lookup service with a time-bounded
// memoization cache.
//
// Domain age is the single strongest passive signal for scam detection:
// phishing campaigns run on domains registered days before the attack.
// A real deployment would back the Client interface with WHOIS/RDAP; this
// repository ships a deterministic simulation so the rest of the system can
// be exercised without external infrastructure.
//
// Design decision: the cache takes an injected clock (a now function) so TTL
// expiry is deterministic in tests instead of depending on wall-clock timers.
// Concurrent lookups for the same hostname may both miss and both populate;
// last-write-wins is acceptable because entries are idempotent recomputations
// of the same fact.
package oracle
