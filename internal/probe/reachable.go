package probe

import (
	"context"
	"net"
	"net/netip"
	"time"
)

// Prober tests raw TCP reachability of a specific address and port.
//
// This is a single fast signal, distinct from the retrying HTTP probe: it
// answers "is this host network-blocked at the IP layer" before any
// protocol-level work is spent on it.
type Prober struct {
	timeout time.Duration
}

// NewProber creates a Prober with the given connect timeout.
func NewProber(timeout time.Duration) *Prober {
	return &Prober{timeout: timeout}
}

// Reachable opens a TCP connection to addr:port and reports whether the
// connect succeeded within the timeout. It never retries; any connection
// failure or timeout expiry yields false.
func (p *Prober) Reachable(ctx context.Context, addr netip.Addr, port uint16) bool {
	d := net.Dialer{Timeout: p.timeout}
	conn, err := d.DialContext(ctx, "tcp", netip.AddrPortFrom(addr, port).String())
	if err != nil {
		return false
	}
	_ = conn.Close() //nolint:errcheck // Connection was only opened to test reachability
	return true
}
