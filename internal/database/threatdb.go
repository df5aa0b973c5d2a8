package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/simplifyx/scamguard/internal/config"
	"github.com/simplifyx/scamguard/internal/model"
)

// Threat type discriminators for the threats table.
const (
	ThreatSuspiciousTLD  = "suspicious_tld"
	ThreatKnownSite      = "known_site"
	ThreatPaymentGateway = "payment_gateway"
	ThreatScamKeyword    = "scam_keyword"
)

// ThreatDB provides SQLite-based storage for threat lists, users,
// whitelists, and archived risk reports.
//
// Design decision: one database file for everything. The tables are tiny
// and a single file keeps backup and first-run seeding trivial.
type ThreatDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures ThreatDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent reads.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a ThreatDB at dbDir/scamguard.db.
func Open(dbDir string, opts Options) (*ThreatDB, error) {
	dbPath := filepath.Join(dbDir, "scamguard.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (run initdb first)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite DSN: mode=rw prevents creating new files.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	tdb := &ThreatDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := tdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return tdb, nil
}

// Close closes the database connection.
func (tdb *ThreatDB) Close() error {
	return tdb.db.Close()
}

// Path returns the database file path.
func (tdb *ThreatDB) Path() string {
	return tdb.dbPath
}

// createTables creates the schema if it doesn't exist.
func (tdb *ThreatDB) createTables() error {
	schema := `
	-- Threat list entries: TLDs, known sites, gateways, keywords
	CREATE TABLE IF NOT EXISTS threats (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		type TEXT NOT NULL,
		value TEXT NOT NULL,
		score INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(type, value)
	);

	CREATE INDEX IF NOT EXISTS idx_threats_type ON threats(type);

	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Per-user domains excluded from alerting
	CREATE TABLE IF NOT EXISTS whitelists (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id),
		domain TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(user_id, domain)
	);

	CREATE INDEX IF NOT EXISTS idx_whitelists_user ON whitelists(user_id);

	-- Archived risk reports, one JSON blob per analyzed page
	CREATE TABLE IF NOT EXISTS risk_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL,
		total_score INTEGER NOT NULL,
		dangerous INTEGER NOT NULL,
		report_json TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_reports_url ON risk_reports(url);
	`

	_, err := tdb.db.ExecContext(context.Background(), schema)
	return err
}

// Threat is one row of the threats table.
type Threat struct {
	ID    int64
	Type  string
	Value string

	// Score is only meaningful for scam_keyword entries.
	Score int
}

// AddThreat inserts a threat entry. Duplicate (type, value) pairs return
// ErrDuplicate.
func (tdb *ThreatDB) AddThreat(ctx context.Context, threat Threat) error {
	_, err := tdb.db.ExecContext(ctx,
		`INSERT INTO threats (type, value, score) VALUES (?, ?, ?)`,
		threat.Type, threat.Value, threat.Score,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: threat %s/%s", ErrDuplicate, threat.Type, threat.Value)
		}
		return fmt.Errorf("failed to insert threat: %w", err)
	}
	return nil
}

// ThreatsByType returns all threat entries of the given type, ordered by value.
func (tdb *ThreatDB) ThreatsByType(ctx context.Context, threatType string) ([]Threat, error) {
	rows, err := tdb.db.QueryContext(ctx,
		`SELECT id, type, value, score FROM threats WHERE type = ? ORDER BY value`,
		threatType,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query threats: %w", err)
	}
	defer rows.Close()

	var threats []Threat
	for rows.Next() {
		var t Threat
		if err := rows.Scan(&t.ID, &t.Type, &t.Value, &t.Score); err != nil {
			return nil, fmt.Errorf("failed to scan threat: %w", err)
		}
		threats = append(threats, t)
	}
	return threats, rows.Err()
}

// Seed populates the threats table from the given lists. Entries already
// present are left untouched, so reseeding is idempotent.
func (tdb *ThreatDB) Seed(ctx context.Context, lists *config.Lists) error {
	upsert := func(threatType, value string, score int) error {
		_, err := tdb.db.ExecContext(ctx,
			`INSERT INTO threats (type, value, score) VALUES (?, ?, ?)
			 ON CONFLICT(type, value) DO NOTHING`,
			threatType, value, score,
		)
		return err
	}

	for _, tld := range lists.SuspiciousTLDs() {
		if err := upsert(ThreatSuspiciousTLD, tld, 0); err != nil {
			return fmt.Errorf("failed to seed TLDs: %w", err)
		}
	}
	for _, site := range lists.KnownSites() {
		if err := upsert(ThreatKnownSite, site, 0); err != nil {
			return fmt.Errorf("failed to seed known sites: %w", err)
		}
	}
	for _, gateway := range lists.PaymentGateways() {
		if err := upsert(ThreatPaymentGateway, gateway, 0); err != nil {
			return fmt.Errorf("failed to seed gateways: %w", err)
		}
	}
	for phrase, weight := range lists.ScamKeywords() {
		if err := upsert(ThreatScamKeyword, phrase, weight); err != nil {
			return fmt.Errorf("failed to seed keywords: %w", err)
		}
	}
	return nil
}

// ThreatLists assembles the stored threat rows back into list form, ready
// to hydrate a config.Lists.
func (tdb *ThreatDB) ThreatLists(ctx context.Context) (config.ListsData, error) {
	var data config.ListsData

	collect := func(threatType string) ([]Threat, error) {
		return tdb.ThreatsByType(ctx, threatType)
	}

	tlds, err := collect(ThreatSuspiciousTLD)
	if err != nil {
		return data, err
	}
	for _, t := range tlds {
		data.SuspiciousTLDs = append(data.SuspiciousTLDs, t.Value)
	}

	sites, err := collect(ThreatKnownSite)
	if err != nil {
		return data, err
	}
	for _, t := range sites {
		data.KnownSites = append(data.KnownSites, t.Value)
	}

	gateways, err := collect(ThreatPaymentGateway)
	if err != nil {
		return data, err
	}
	for _, t := range gateways {
		data.PaymentGateways = append(data.PaymentGateways, t.Value)
	}

	keywords, err := collect(ThreatScamKeyword)
	if err != nil {
		return data, err
	}
	if len(keywords) > 0 {
		data.ScamKeywords = make(map[string]int, len(keywords))
		for _, t := range keywords {
			data.ScamKeywords[t.Value] = t.Score
		}
	}

	return data, nil
}

// User is one row of the users table.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// CreateUser inserts a user with an already-hashed password. Duplicate
// emails return ErrDuplicate.
func (tdb *ThreatDB) CreateUser(ctx context.Context, email, passwordHash string) (int64, error) {
	result, err := tdb.db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash) VALUES (?, ?)`,
		email, passwordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: user %s", ErrDuplicate, email)
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	return result.LastInsertId()
}

// UserByEmail retrieves a user by email. Returns ErrNotFound when no such
// user exists.
func (tdb *ThreatDB) UserByEmail(ctx context.Context, email string) (*User, error) {
	var (
		user      User
		createdAt string
	)
	err := tdb.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE email = ?`,
		email,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.CreatedAt = parseTimestamp(createdAt)
	return &user, nil
}

// AddWhitelistDomain adds a domain to the user's whitelist. Re-adding an
// existing domain returns ErrDuplicate.
func (tdb *ThreatDB) AddWhitelistDomain(ctx context.Context, userID int64, domain string) error {
	_, err := tdb.db.ExecContext(ctx,
		`INSERT INTO whitelists (user_id, domain) VALUES (?, ?)`,
		userID, domain,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: whitelist %s", ErrDuplicate, domain)
		}
		return fmt.Errorf("failed to insert whitelist entry: %w", err)
	}
	return nil
}

// Whitelist returns the user's whitelisted domains, ordered by domain.
func (tdb *ThreatDB) Whitelist(ctx context.Context, userID int64) ([]string, error) {
	rows, err := tdb.db.QueryContext(ctx,
		`SELECT domain FROM whitelists WHERE user_id = ? ORDER BY domain`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query whitelist: %w", err)
	}
	defer rows.Close()

	domains := make([]string, 0)
	for rows.Next() {
		var domain string
		if err := rows.Scan(&domain); err != nil {
			return nil, fmt.Errorf("failed to scan whitelist entry: %w", err)
		}
		domains = append(domains, domain)
	}
	return domains, rows.Err()
}

// SaveRiskReport archives a risk report as JSON.
func (tdb *ThreatDB) SaveRiskReport(ctx context.Context, report *model.RiskReport) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	dangerous := 0
	if report.Dangerous {
		dangerous = 1
	}

	_, err = tdb.db.ExecContext(ctx,
		`INSERT INTO risk_reports (url, total_score, dangerous, report_json) VALUES (?, ?, ?, ?)`,
		report.URL, report.TotalScore, dangerous, string(reportJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// LatestRiskReport retrieves the most recent report for a URL. Returns
// ErrNotFound when the URL has never been analyzed.
func (tdb *ThreatDB) LatestRiskReport(ctx context.Context, url string) (*model.RiskReport, error) {
	var reportJSON string
	err := tdb.db.QueryRowContext(ctx,
		`SELECT report_json FROM risk_reports WHERE url = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		url,
	).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: report for %s", ErrNotFound, url)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	var report model.RiskReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &report, nil
}

// isUniqueViolation reports whether err is a SQLite unique constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// timestampFormats contains the timestamp formats SQLite may return.
var timestampFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999",
}

// parseTimestamp parses a SQLite timestamp, returning zero time when no
// known format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
