// Package report renders risk reports in terminal, JSON, and Markdown
// formats.
//
// Writers consume the immutable model.RiskReport snapshot, never live
// aggregator state, so rendering cannot race with in-flight finding
// batches.
package report
