package model

// Protocol identifies the application protocol used for a probe.
type Protocol string

// Supported probe protocols.
const (
	// ProtocolHTTP probes over plain HTTP (port 80).
	ProtocolHTTP Protocol = "http"

	// ProtocolHTTPS probes over TLS (port 443).
	ProtocolHTTPS Protocol = "https"
)

// String returns the protocol name as used in URLs and report keys.
func (p Protocol) String() string {
	return string(p)
}

// IPVersion identifies the IP family a probe is pinned to.
//
// Design decision: We use the numeric family (4/6) as the underlying value
// because it matches the CLI surface (--ip-version 4|6) and reads naturally
// in logs, while Network() hides the Go-specific "tcp4"/"tcp6" strings.
type IPVersion int

// Supported IP families.
const (
	// IPv4 pins connections to the IPv4 family.
	IPv4 IPVersion = 4

	// IPv6 pins connections to the IPv6 family.
	IPv6 IPVersion = 6
)

// Network returns the Go network string used to pin dials to this family.
func (v IPVersion) Network() string {
	if v == IPv6 {
		return "tcp6"
	}
	return "tcp4"
}

// String returns the report key for this family ("ipv4" or "ipv6").
func (v IPVersion) String() string {
	if v == IPv6 {
		return "ipv6"
	}
	return "ipv4"
}
