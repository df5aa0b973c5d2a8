// Package model defines the core data structures used throughout scamguard.
//
// This package contains the following main types:
//   - DetectorKind: Enumerated tag identifying which detector produced a finding
//   - Finding: A single scored piece of evidence about a page
//   - PageRiskState: The aggregated risk record for one page-load instance
//   - RiskReport: A presentation snapshot of a PageRiskState for report writers
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (detector, aggregator, report, server) need
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// the HTTP API boundary.
package model
