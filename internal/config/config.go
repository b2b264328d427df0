package config

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/vernette/censorcheck/internal/model"
)

// Default configuration values.
// These match the behavior users expect from a quick clearnet probe run:
// short timeouts, a couple of retries, and a browser-like user agent.
const (
	// DefaultTimeout bounds each connection and each full request.
	// Clearnet probes either answer quickly or are being interfered with;
	// a long timeout only slows down detection of blocked domains.
	DefaultTimeout = 5 * time.Second

	// DefaultRetries is the number of additional attempts after the first.
	// DPI devices sometimes kill only a fraction of connections, so a
	// single failure is not yet a verdict.
	DefaultRetries = 2

	// DefaultBatchSize is the number of domains checked concurrently.
	// Each domain fans out up to four probes of its own, so this bounds
	// the total number of in-flight connections at roughly 4x this value.
	DefaultBatchSize = 10

	// DefaultUserAgent mimics a current desktop Chrome. Probes should be
	// indistinguishable from ordinary browser traffic on the header
	// fingerprint alone, so a descriptive scanner UA is deliberately
	// not used here.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	// AppName is the application name used for config file paths.
	AppName = "censorcheck"
)

// Mode selects which built-in domain list a run probes.
type Mode string

// Built-in list selection modes.
const (
	// ModeDPI probes domains commonly blocked via deep packet inspection.
	ModeDPI Mode = "dpi"

	// ModeGeoblock probes services known to restrict access by region.
	ModeGeoblock Mode = "geoblock"

	// ModeBoth probes the union of both lists.
	ModeBoth Mode = "both"
)

// ProtocolChoice selects which protocols a run probes.
type ProtocolChoice string

// Protocol selections.
const (
	ProtocolHTTP  ProtocolChoice = "http"
	ProtocolHTTPS ProtocolChoice = "https"
	ProtocolBoth  ProtocolChoice = "both"
)

// IPVersionChoice selects which IP families a run probes.
type IPVersionChoice string

// IP family selections.
const (
	IPVersion4    IPVersionChoice = "4"
	IPVersion6    IPVersionChoice = "6"
	IPVersionBoth IPVersionChoice = "both"
)

// Config holds all configuration options for a censorcheck run.
// This struct is populated from CLI flags (optionally seeded from a YAML
// defaults file) and passed through the application via dependency
// injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// Timeout bounds each probe attempt: connect time and total request
	// time. The retry budget per probe is Timeout * (1 + Retries).
	Timeout time.Duration

	// Retries is the number of additional attempts after a transport
	// failure. Zero means a single attempt.
	Retries int

	// UserAgent is sent with every probe request.
	UserAgent string

	// ProxyAddress is an optional SOCKS5 proxy in "host:port" format.
	// When set, all probe traffic (including name resolution for the
	// probed URL) is routed through the proxy.
	ProxyAddress string

	// Mode selects the built-in domain list when no explicit domain or
	// file is given.
	Mode Mode

	// Protocol selects which protocols to probe per domain.
	Protocol ProtocolChoice

	// IPVersion selects which IP families to probe per domain. The
	// effective set is intersected with what the host supports.
	IPVersion IPVersionChoice

	// DomainsFile is an optional path to a file with one domain per line.
	// Lines starting with '#' and blank lines are ignored.
	DomainsFile string

	// SingleDomain, when set, checks exactly one domain and overrides
	// both DomainsFile and the built-in lists.
	SingleDomain string

	// BatchSize is the number of domains checked concurrently.
	BatchSize int

	// JSONReport outputs the structured JSON report instead of the
	// human-readable format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport outputs a Markdown report instead of the
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile, when set, writes the report to this path instead of
	// stdout. Directories are created automatically.
	ReportFile string

	// ConfigFilePath is an explicit path to the YAML defaults file. If
	// empty, the standard search locations are tried.
	ConfigFilePath string

	// Verbose enables debug-level logging.
	Verbose bool
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because most defaults are non-zero. This also serves as
// documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Timeout:   DefaultTimeout,
		Retries:   DefaultRetries,
		UserAgent: DefaultUserAgent,
		Mode:      ModeDPI,
		Protocol:  ProtocolBoth,
		IPVersion: IPVersionBoth,
		BatchSize: DefaultBatchSize,
	}
}

// Validate checks if the configuration is valid. It returns a specific
// sentinel error describing the first problem found; fixing one error
// often makes others irrelevant.
//
// This is called once after flag parsing, before any probing begins.
// Validation failures are the only fatal errors in the tool.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Retries < 0 {
		return ErrInvalidRetries
	}

	if strings.TrimSpace(c.UserAgent) == "" {
		return ErrEmptyUserAgent
	}

	switch c.Mode {
	case ModeDPI, ModeGeoblock, ModeBoth:
	default:
		return ErrInvalidMode
	}

	switch c.Protocol {
	case ProtocolHTTP, ProtocolHTTPS, ProtocolBoth:
	default:
		return ErrInvalidProtocol
	}

	switch c.IPVersion {
	case IPVersion4, IPVersion6, IPVersionBoth:
	default:
		return ErrInvalidIPVersion
	}

	if c.ProxyAddress != "" && !isValidProxyAddress(c.ProxyAddress) {
		return ErrInvalidProxyAddress
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}

// isValidProxyAddress checks if the address is in "host:port" format with
// a numeric port in the valid range. We use net.SplitHostPort rather than
// a URL parser because the format is very specific: no scheme, no path.
func isValidProxyAddress(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" {
		return false
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return false
	}
	return n >= 1 && n <= 65535
}

// TimeoutSeconds returns the timeout as whole seconds for outcome
// classification and user-facing messages.
func (c *Config) TimeoutSeconds() int {
	return int(c.Timeout / time.Second)
}

// EnabledProtocols returns the protocols selected by this configuration,
// in the order they appear in reports.
func (c *Config) EnabledProtocols() []model.Protocol {
	switch c.Protocol {
	case ProtocolHTTP:
		return []model.Protocol{model.ProtocolHTTP}
	case ProtocolHTTPS:
		return []model.Protocol{model.ProtocolHTTPS}
	default:
		return []model.Protocol{model.ProtocolHTTP, model.ProtocolHTTPS}
	}
}

// EnabledIPVersions returns the IP families selected by this configuration.
// The caller intersects the result with host support before probing.
func (c *Config) EnabledIPVersions() []model.IPVersion {
	switch c.IPVersion {
	case IPVersion4:
		return []model.IPVersion{model.IPv4}
	case IPVersion6:
		return []model.IPVersion{model.IPv6}
	default:
		return []model.IPVersion{model.IPv4, model.IPv6}
	}
}

// Params captures the effective configuration as an ordered snapshot for
// report provenance. The ipv6Supported argument records what the host
// actually supported at run time, which may differ from what was requested.
func (c *Config) Params(ipv6Supported bool) []model.Param {
	params := []model.Param{
		{Key: "mode", Value: string(c.Mode)},
		{Key: "timeout", Value: strconv.Itoa(c.TimeoutSeconds())},
		{Key: "retries", Value: strconv.Itoa(c.Retries)},
		{Key: "protocol", Value: string(c.Protocol)},
		{Key: "ip_version", Value: string(c.IPVersion)},
		{Key: "ipv6_supported", Value: strconv.FormatBool(ipv6Supported)},
		{Key: "user_agent", Value: c.UserAgent},
	}
	if c.ProxyAddress != "" {
		params = append(params, model.Param{Key: "proxy", Value: c.ProxyAddress})
	}
	if c.DomainsFile != "" {
		params = append(params, model.Param{Key: "domains_file", Value: c.DomainsFile})
	}
	if c.SingleDomain != "" {
		params = append(params, model.Param{Key: "domain", Value: c.SingleDomain})
	}
	return params
}
