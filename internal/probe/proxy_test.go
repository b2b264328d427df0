package probe

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"
	"time"
)

// fakeSOCKS5Server runs a minimal SOCKS5 server on a local listener.
// It negotiates no-auth and replies to CONNECT with the given reply code.
func fakeSOCKS5Server(t *testing.T, replyCode byte) string {
	t.Helper()

	l, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { l.Close() })

	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()

				// Auth negotiation: VER, NMETHODS, METHODS...
				header := make([]byte, 2)
				if _, err := io.ReadFull(conn, header); err != nil {
					return
				}
				methods := make([]byte, header[1])
				if _, err := io.ReadFull(conn, methods); err != nil {
					return
				}
				if _, err := conn.Write([]byte{0x05, 0x00}); err != nil {
					return
				}

				// CONNECT request: VER, CMD, RSV, ATYP, then address.
				req := make([]byte, 4)
				if _, err := io.ReadFull(conn, req); err != nil {
					return
				}
				if req[3] == 0x03 { // domain
					length := make([]byte, 1)
					if _, err := io.ReadFull(conn, length); err != nil {
						return
					}
					rest := make([]byte, int(length[0])+2)
					if _, err := io.ReadFull(conn, rest); err != nil {
						return
					}
				}

				// Reply with the configured code and a zero IPv4 bind address.
				conn.Write([]byte{0x05, replyCode, 0x00, 0x01, 0, 0, 0, 0, 0, 0}) //nolint:errcheck // Test server
			}(conn)
		}
	}()

	return l.Addr().String()
}

// TestNewDialer tests SOCKS5 dialer construction.
func TestNewDialer(t *testing.T) {
	t.Parallel()

	t.Run("valid address succeeds", func(t *testing.T) {
		t.Parallel()

		d, err := NewDialer("tcp4", "127.0.0.1:1080", time.Second)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d == nil {
			t.Fatal("expected non-nil dialer")
		}
	})

	t.Run("invalid address fails", func(t *testing.T) {
		t.Parallel()

		testCases := []string{
			"",
			"no-port",
			"127.0.0.1:",
			"127.0.0.1:notaport",
			"127.0.0.1:0",
			":1080",
		}

		for _, address := range testCases {
			if _, err := NewDialer("tcp4", address, time.Second); !errors.Is(err, ErrInvalidProxyAddress) {
				t.Errorf("NewDialer(%q): expected ErrInvalidProxyAddress, got %v", address, err)
			}
		}
	})
}

// TestCheckProxy tests the pre-run SOCKS5 proxy verification.
func TestCheckProxy(t *testing.T) {
	t.Parallel()

	t.Run("working proxy reports ok", func(t *testing.T) {
		t.Parallel()

		// Host-unreachable reply: the handshake is still well-formed SOCKS5.
		addr := fakeSOCKS5Server(t, 0x04)

		if status := CheckProxy(context.Background(), addr); status != ProxyStatusOK {
			t.Errorf("expected ProxyStatusOK, got %v", status)
		}
	})

	t.Run("successful connect reply also reports ok", func(t *testing.T) {
		t.Parallel()

		addr := fakeSOCKS5Server(t, 0x00)

		if status := CheckProxy(context.Background(), addr); status != ProxyStatusOK {
			t.Errorf("expected ProxyStatusOK, got %v", status)
		}
	})

	t.Run("non-socks5 service reports wrong type", func(t *testing.T) {
		t.Parallel()

		l, err := net.Listen("tcp4", "127.0.0.1:0")
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { l.Close() })

		go func() {
			for {
				conn, err := l.Accept()
				if err != nil {
					return
				}
				// Answer like an HTTP server would.
				conn.Write([]byte("HTTP/1.1 400 Bad Request\r\n\r\n")) //nolint:errcheck // Test server
				conn.Close()
			}
		}()

		if status := CheckProxy(context.Background(), l.Addr().String()); status != ProxyStatusWrongType {
			t.Errorf("expected ProxyStatusWrongType, got %v", status)
		}
	})

	t.Run("auth-required proxy reports wrong type", func(t *testing.T) {
		t.Parallel()

		l, err := net.Listen("tcp4", "127.0.0.1:0")
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { l.Close() })

		go func() {
			for {
				conn, err := l.Accept()
				if err != nil {
					return
				}
				header := make([]byte, 2)
				if _, err := io.ReadFull(conn, header); err == nil {
					methods := make([]byte, header[1])
					_, _ = io.ReadFull(conn, methods) //nolint:errcheck // Test server
					// Select username/password auth, which the dialer
					// cannot provide.
					conn.Write([]byte{0x05, 0x02}) //nolint:errcheck // Test server
				}
				conn.Close()
			}
		}()

		if status := CheckProxy(context.Background(), l.Addr().String()); status != ProxyStatusWrongType {
			t.Errorf("expected ProxyStatusWrongType, got %v", status)
		}
	})

	t.Run("nothing listening reports cannot connect", func(t *testing.T) {
		t.Parallel()

		l, err := net.Listen("tcp4", "127.0.0.1:0")
		if err != nil {
			t.Fatal(err)
		}
		addr := l.Addr().String()
		l.Close()

		if status := CheckProxy(context.Background(), addr); status != ProxyStatusCannotConnect {
			t.Errorf("expected ProxyStatusCannotConnect, got %v", status)
		}
	})
}

// TestProxyStatus tests status rendering and error mapping.
func TestProxyStatus(t *testing.T) {
	t.Parallel()

	t.Run("ok has no error", func(t *testing.T) {
		t.Parallel()

		if err := ProxyStatusOK.Err(); err != nil {
			t.Errorf("expected nil error, got %v", err)
		}
	})

	t.Run("failure statuses map to sentinels", func(t *testing.T) {
		t.Parallel()

		testCases := []struct {
			status   ProxyStatus
			expected error
		}{
			{ProxyStatusWrongType, ErrProxyNotSOCKS5},
			{ProxyStatusCannotConnect, ErrProxyCannotConnect},
			{ProxyStatusTimeout, ErrProxyTimeout},
		}

		for _, tc := range testCases {
			if err := tc.status.Err(); !errors.Is(err, tc.expected) {
				t.Errorf("%v.Err(): expected %v, got %v", tc.status, tc.expected, err)
			}
		}
	})
}
