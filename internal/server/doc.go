// Package server exposes the analysis engine over an HTTP API.
//
// The API serves the threat lists consumed by detection clients, runs
// domain-age and content classification on demand, and provides a minimal
// user surface (login, whitelist) backed by the SQLite store. Routing is
// handled by chi; every handler answers JSON.
//
// Authentication is a placeholder: login verifies the bcrypt hash stored
// for the user but issues a fixed demonstration token rather than a real
// signed session.
package server
