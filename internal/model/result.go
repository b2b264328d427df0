package model

// ErrorCode identifies why a domain was short-circuited before any
// protocol probe ran. These are normal terminal states of the per-domain
// state machine, not exceptional conditions.
type ErrorCode string

// Per-domain terminal error codes.
const (
	// ErrorCodeNXDomain means the domain did not resolve.
	ErrorCodeNXDomain ErrorCode = "nxdomain"

	// ErrorCodeBlockedByIP means the domain resolved but port 443 was
	// unreachable within the timeout.
	ErrorCodeBlockedByIP ErrorCode = "blocked_by_ip"
)

// Message returns the human-readable description of the error code.
func (c ErrorCode) Message() string {
	switch c {
	case ErrorCodeNXDomain:
		return "domain does not resolve"
	case ErrorCodeBlockedByIP:
		return "IP address is unreachable"
	default:
		return string(c)
	}
}

// ProtocolOutcomes holds the per-IP-family probe slots for one protocol.
// A nil slot means that combination was not attempted (disabled by
// configuration or unsupported by the host), which is distinct from a
// blocked outcome.
type ProtocolOutcomes struct {
	IPv4 *ProbeOutcome `json:"ipv4"`
	IPv6 *ProbeOutcome `json:"ipv6"`
}

// slot returns the address of the slot for the given IP family.
func (p *ProtocolOutcomes) slot(v IPVersion) **ProbeOutcome {
	if v == IPv6 {
		return &p.IPv6
	}
	return &p.IPv4
}

// DomainResult aggregates everything learned about a single domain.
//
// Exactly one of the error record (Error/ErrorCode) or at least one probe
// slot is populated; the two are mutually exclusive. A probe slot exists
// only if its (protocol, ip-version) pair was both enabled by configuration
// and supported by the host.
type DomainResult struct {
	// Service is the probed domain name.
	Service string `json:"service"`

	// ResolvedIP is the address the domain resolved to, if any.
	ResolvedIP string `json:"resolved_ip,omitempty"`

	// Error is the human-readable short-circuit message, if any.
	Error string `json:"error,omitempty"`

	// ErrorCode is the machine-readable short-circuit code, if any.
	ErrorCode ErrorCode `json:"error_code,omitempty"`

	// HTTP holds the plain-HTTP probe slots, nil if HTTP was not probed.
	HTTP *ProtocolOutcomes `json:"http,omitempty"`

	// HTTPS holds the HTTPS probe slots, nil if HTTPS was not probed.
	HTTPS *ProtocolOutcomes `json:"https,omitempty"`
}

// NewDomainResult creates an empty result for the given domain.
func NewDomainResult(domain string) *DomainResult {
	return &DomainResult{Service: domain}
}

// NewErrorResult creates a terminal error result for the given domain.
// Error results never carry probe slots.
func NewErrorResult(domain string, code ErrorCode) *DomainResult {
	return &DomainResult{
		Service:   domain,
		Error:     code.Message(),
		ErrorCode: code,
	}
}

// SetOutcome places an outcome into the slot for the given combination,
// allocating the protocol group on first use. Slots are independent, so the
// order combinations complete in does not affect the final record.
func (r *DomainResult) SetOutcome(p Protocol, v IPVersion, o ProbeOutcome) {
	group := r.protocolGroup(p, true)
	*group.slot(v) = &o
}

// Outcome returns the outcome for the given combination, or nil if that
// combination was not attempted.
func (r *DomainResult) Outcome(p Protocol, v IPVersion) *ProbeOutcome {
	group := r.protocolGroup(p, false)
	if group == nil {
		return nil
	}
	return *group.slot(v)
}

// HasProbes reports whether at least one probe slot is populated.
func (r *DomainResult) HasProbes() bool {
	return r.HTTP != nil || r.HTTPS != nil
}

// protocolGroup returns the slot group for the protocol, allocating it when
// create is true.
func (r *DomainResult) protocolGroup(p Protocol, create bool) *ProtocolOutcomes {
	var group **ProtocolOutcomes
	if p == ProtocolHTTPS {
		group = &r.HTTPS
	} else {
		group = &r.HTTP
	}
	if *group == nil && create {
		*group = &ProtocolOutcomes{}
	}
	return *group
}
