package probe

import "net"

// HasIPv6 reports whether the host has a global unicast IPv6 address on
// any interface. Link-local and loopback addresses do not count: they
// cannot reach the public internet, so probing over them would report
// every domain as blocked.
//
// The result is derived once per run and intersected with the configured
// IP-version set; it is also recorded in the report's parameter snapshot.
func HasIPv6() bool {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return false
	}

	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		ip := ipNet.IP
		if ip.To4() != nil {
			continue
		}
		if ip.IsGlobalUnicast() {
			return true
		}
	}

	return false
}
