package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/simplifyx/scamguard/internal/model"
)

// Default configuration values.
// Score weights and the alert threshold mirror the values the risk model was
// tuned with; changing them shifts the false-positive/false-negative balance.
const (
	// DefaultRiskThreshold is the total score at which a page is considered
	// dangerous and an alert fires. 50 means a single strong signal (recent
	// domain, formjacking) is enough, while weak signals must combine.
	DefaultRiskThreshold = 50

	// DefaultScamCutoff is the classifier probability above which page text
	// is considered scam content. The comparison is strictly greater-than:
	// a probability of exactly 60 is NOT a scam.
	DefaultScamCutoff = 60

	// DefaultTextSampleSize bounds how much page text is classified.
	// 5000 characters covers the visible content of nearly all landing pages
	// while keeping payloads small.
	DefaultTextSampleSize = 5000

	// DefaultDomainAgeTTL is how long a domain-age lookup is cached.
	// Registration data changes rarely, so an hour is a safe bound that
	// still prevents hammering the upstream oracle.
	DefaultDomainAgeTTL = time.Hour

	// DefaultRecentDomainDays is the age in days under which a domain is
	// considered "recent" by the simulated oracle.
	DefaultRecentDomainDays = 30

	// DefaultListenAddr is the HTTP API listen address.
	DefaultListenAddr = ":3000"

	// DefaultTimeout is the connection timeout for page fetches.
	DefaultTimeout = 30 * time.Second

	// DefaultBatchSize is the number of concurrent page scans when multiple
	// URLs are given on the command line.
	DefaultBatchSize = 4

	// DefaultMaxBodySize limits the response body size when fetching pages.
	// 5MB is sufficient for any HTML page while preventing memory exhaustion.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultUserAgent identifies scamguard in HTTP requests.
	DefaultUserAgent = "scamguard/1.0 (+https://github.com/simplifyx/scamguard)"

	// AppName is the application name used for XDG directory paths.
	AppName = "scamguard"
)

// Config holds runtime configuration for scamguard.
// This struct is populated from CLI flags and passed through the application
// via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested sub-structs.
// The number of options is manageable, and nesting would add complexity
// without significant benefit.
type Config struct {
	// RiskThreshold is the total score at which a page alert fires.
	RiskThreshold int

	// Weights are the per-detector base scores.
	Weights model.Weights

	// ScamCutoff is the classifier probability above which text is scam.
	ScamCutoff int

	// TextSampleSize bounds the amount of page text sent for classification.
	TextSampleSize int

	// DomainAgeTTL is the cache lifetime for domain-age lookups.
	DomainAgeTTL time.Duration

	// ListenAddr is the HTTP API listen address (serve command).
	ListenAddr string

	// Timeout is the connection timeout for each page fetch.
	Timeout time.Duration

	// BatchSize is the number of concurrent scans for multi-URL runs.
	BatchSize int

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// UserAgent is the User-Agent header sent with page fetches.
	UserAgent string

	// DBDir is the directory for the SQLite database.
	// Defaults to the XDG data directory.
	DBDir string

	// ListsFilePath is an optional YAML file overriding the built-in
	// threat lists and keyword table.
	ListsFilePath string

	// Verbose enables debug-level logging.
	Verbose bool

	// JSONReport selects JSON report output (scan command).
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown report output (scan command).
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When empty, the report is written to stdout.
	ReportFile string

	// Targets is the list of URLs to scan (scan command).
	Targets []string
}

// NewConfig creates a Config with default values.
//
// Design decision: We use a constructor instead of relying on zero values
// because most defaults are non-zero. It also documents what the defaults
// are in one place.
func NewConfig() *Config {
	return &Config{
		RiskThreshold:  DefaultRiskThreshold,
		Weights:        model.DefaultWeights(),
		ScamCutoff:     DefaultScamCutoff,
		TextSampleSize: DefaultTextSampleSize,
		DomainAgeTTL:   DefaultDomainAgeTTL,
		ListenAddr:     DefaultListenAddr,
		Timeout:        DefaultTimeout,
		BatchSize:      DefaultBatchSize,
		MaxBodySize:    DefaultMaxBodySize,
		UserAgent:      DefaultUserAgent,
		DBDir:          XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for scamguard.
// On Linux: ~/.local/share/scamguard
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for scamguard.
// On Linux: ~/.config/scamguard
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific sentinel error describing what is invalid.
//
// Design decision: We validate once after CLI parsing rather than at each
// point of use to fail fast with a clear message. The first error found is
// returned because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.RiskThreshold <= 0 {
		return ErrInvalidThreshold
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.DomainAgeTTL <= 0 {
		return ErrInvalidTTL
	}
	if c.TextSampleSize <= 0 {
		return ErrInvalidSampleSize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}
