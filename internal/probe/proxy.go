package probe

import (
	"context"
	"errors"
	"io"
	"net"
	"strconv"
	"time"

	"golang.org/x/net/proxy"
)

// checkProxyTimeout is the timeout for the pre-run proxy check.
// This is just a protocol handshake against a (typically local) proxy,
// not a request through it, so a short timeout is appropriate.
const checkProxyTimeout = 2 * time.Second

// SOCKS5 protocol constants.
const (
	socks5Version      = 0x05
	socks5AuthNone     = 0x00
	socks5AuthNoAccept = 0xFF
	socks5CmdConnect   = 0x01
	socks5AddrDomain   = 0x03

	// socks5TestHost is a synthetic hostname used for SOCKS5 verification.
	// The .invalid TLD is reserved and can never resolve, so the CONNECT
	// is guaranteed to fail without touching any real service. We only
	// need to verify the proxy processes SOCKS5 CONNECT requests, not
	// that the connection succeeds.
	socks5TestHost = "censorcheck.invalid"
)

// NewDialer creates a SOCKS5 dialer for the given proxy address. The
// network argument pins the family used to reach the proxy itself
// ("tcp4" or "tcp6"); the proxy then connects to targets on our behalf,
// performing its own name resolution.
//
// The address format is validated but the proxy is not contacted here;
// call CheckProxy to verify it is actually usable.
func NewDialer(network, proxyAddress string, timeout time.Duration) (proxy.Dialer, error) {
	if !validProxyAddress(proxyAddress) {
		return nil, ErrInvalidProxyAddress
	}

	// No auth: censorship-evasion proxies (shadowsocks local, tor, ssh -D)
	// expose unauthenticated local SOCKS ports.
	return proxy.SOCKS5(network, proxyAddress, nil, &net.Dialer{Timeout: timeout})
}

// validProxyAddress checks if the address is in valid "host:port" format.
func validProxyAddress(address string) bool {
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

// CheckProxy verifies that the configured address is a working SOCKS5
// proxy. It returns a ProxyStatus indicating the result of the check.
//
// The check performs a real SOCKS5 handshake to verify:
//  1. The proxy speaks the SOCKS5 protocol
//  2. The proxy accepts connections without authentication
//  3. The proxy processes CONNECT requests
//
// This is more robust than connecting and hoping: a service that merely
// accepts TCP connections cannot mimic proper SOCKS5 protocol behavior.
func CheckProxy(ctx context.Context, proxyAddress string) ProxyStatus {
	ctx, cancel := context.WithTimeout(ctx, checkProxyTimeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", proxyAddress)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return ProxyStatusTimeout
		}
		return ProxyStatusCannotConnect
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(checkProxyTimeout)); err != nil {
		return ProxyStatusCannotConnect
	}

	// Step 1: version negotiation. We offer "no authentication" only.
	if _, err := conn.Write([]byte{socks5Version, 0x01, socks5AuthNone}); err != nil {
		return ProxyStatusCannotConnect
	}

	authResp := make([]byte, 2)
	if _, err := io.ReadFull(conn, authResp); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ProxyStatusTimeout
		}
		// Anything else means it didn't speak SOCKS5 properly.
		return ProxyStatusWrongType
	}

	if authResp[0] != socks5Version {
		return ProxyStatusWrongType
	}
	if authResp[1] == socks5AuthNoAccept || authResp[1] != socks5AuthNone {
		// The server requires authentication or selected an unknown
		// method; either way our dialer cannot use it.
		return ProxyStatusWrongType
	}

	// Step 2: verify the proxy handles CONNECT requests. The target can
	// never resolve, so the request will fail, but a real SOCKS5 proxy
	// still sends a well-formed reply.
	connectReq := []byte{
		socks5Version,
		socks5CmdConnect,
		0x00, // reserved
		socks5AddrDomain,
		byte(len(socks5TestHost)),
	}
	connectReq = append(connectReq, []byte(socks5TestHost)...)
	connectReq = append(connectReq, 0x00, 0x50) // port 80

	if _, err := conn.Write(connectReq); err != nil {
		return ProxyStatusCannotConnect
	}

	connectResp := make([]byte, 4)
	if _, err := io.ReadFull(conn, connectResp); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ProxyStatusTimeout
		}
		return ProxyStatusWrongType
	}

	if connectResp[0] != socks5Version {
		return ProxyStatusWrongType
	}

	// Any reply code (success or failure) means the proxy processed the
	// SOCKS5 request, which is all the check needs.
	return ProxyStatusOK
}
