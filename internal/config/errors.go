package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A timeout of zero or negative would cause immediate probe failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidRetries is returned when the retry count is negative.
	// Use 0 for a single attempt with no retries.
	ErrInvalidRetries = errors.New("invalid retries: must be non-negative")

	// ErrEmptyUserAgent is returned when the user-agent string is empty.
	// Probes always send a User-Agent header to resemble browser traffic.
	ErrEmptyUserAgent = errors.New("user agent must not be empty")

	// ErrInvalidMode is returned when the mode is not dpi, geoblock, or both.
	ErrInvalidMode = errors.New("invalid mode: must be dpi, geoblock, or both")

	// ErrInvalidProtocol is returned when the protocol selection is not
	// http, https, or both.
	ErrInvalidProtocol = errors.New("invalid protocol: must be http, https, or both")

	// ErrInvalidIPVersion is returned when the IP version selection is not
	// 4, 6, or both.
	ErrInvalidIPVersion = errors.New("invalid ip version: must be 4, 6, or both")

	// ErrInvalidProxyAddress is returned when the proxy address is not in
	// "host:port" format with a valid port number.
	ErrInvalidProxyAddress = errors.New("invalid proxy address: expected host:port")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no domains are ever checked.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrNoDomains is returned when domain selection produced an empty
	// list, e.g. a domains file containing only comments and blank lines.
	ErrNoDomains = errors.New("no domains to check")
)
