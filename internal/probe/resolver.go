package probe

import (
	"context"
	"net"
	"net/netip"
)

// Resolver resolves domain names using the operating system resolver.
//
// Design decision: We wrap net.Resolver in a struct rather than calling
// package-level lookup functions so tests can substitute a custom resolver
// and so the checker package can depend on a small interface.
type Resolver struct {
	resolver *net.Resolver
}

// NewResolver creates a Resolver backed by the system DNS configuration.
// Lookup timeouts are bounded by the OS resolver's defaults; they are not
// separately configurable.
func NewResolver() *Resolver {
	return &Resolver{resolver: net.DefaultResolver}
}

// Resolve looks up the domain and returns the first address found.
// The second return value is false when the domain does not resolve
// (NXDOMAIN or any lookup failure); a non-existent domain is a normal
// result, not an error.
//
// When the domain resolves to both families, an IPv4 address is preferred
// so the subsequent reachability check does not depend on host IPv6
// support.
func (r *Resolver) Resolve(ctx context.Context, domain string) (netip.Addr, bool) {
	addrs, err := r.resolver.LookupNetIP(ctx, "ip", domain)
	if err != nil || len(addrs) == 0 {
		return netip.Addr{}, false
	}

	for _, addr := range addrs {
		if addr.Unmap().Is4() {
			return addr.Unmap(), true
		}
	}
	return addrs[0].Unmap(), true
}
