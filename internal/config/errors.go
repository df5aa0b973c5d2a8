package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances in Validate(). This allows callers to use errors.Is()
// for programmatic error handling while still providing human-readable
// messages.
var (
	// ErrInvalidThreshold is returned when the risk threshold is not positive.
	// A zero threshold would alert on every page.
	ErrInvalidThreshold = errors.New("invalid risk threshold: must be positive")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no concurrent scans, effectively
	// stopping the scanning process.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidTTL is returned when the domain-age cache TTL is not positive.
	// A non-positive TTL would make every lookup hit the upstream oracle.
	ErrInvalidTTL = errors.New("invalid domain-age TTL: must be positive")

	// ErrInvalidSampleSize is returned when the text sample size is not
	// positive. The classifier needs at least one character to work with.
	ErrInvalidSampleSize = errors.New("invalid text sample size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrListsNotFound is returned when an explicitly specified lists file
	// does not exist.
	ErrListsNotFound = errors.New("threat lists file not found")
)
