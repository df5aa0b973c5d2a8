// Package database provides SQLite-backed storage for threat intelligence,
// user accounts, per-user whitelists, and archived risk reports.
//
// Design decision: We use modernc.org/sqlite (pure Go, no cgo) with a
// single writer connection and WAL mode. The data set is small — threat
// lists, a handful of users, report archives — and a zero-dependency build
// matters more than write throughput here.
package database
