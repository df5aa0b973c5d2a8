// Package config holds all configuration for scamguard.
//
// Configuration is split in two:
//   - Config: runtime settings (threshold, weights, timeouts, listen address)
//     populated from CLI flags and passed through the application via
//     dependency injection rather than global state.
//   - Lists: the threat lists (suspicious TLDs, known sites, payment
//     gateways) and the classifier keyword table. Lists are an explicitly
//     owned object handed to detectors at construction time and refreshed
//     via an explicit Reload, never mutated through package-level variables.
//
// Design decision: the original implementation kept threat lists in mutable
// module-level globals loaded by a startup callback. That made detector
// behavior depend on invisible initialization order. Here every consumer
// receives its configuration explicitly, which also makes tests trivial.
package config
