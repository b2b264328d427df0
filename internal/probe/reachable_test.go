package probe

import (
	"context"
	"net"
	"net/netip"
	"testing"
	"time"
)

// TestProberReachable tests TCP reachability probing.
func TestProberReachable(t *testing.T) {
	t.Parallel()

	t.Run("open port is reachable", func(t *testing.T) {
		t.Parallel()

		l, err := net.Listen("tcp4", "127.0.0.1:0")
		if err != nil {
			t.Fatal(err)
		}
		defer l.Close()

		addrPort, err := netip.ParseAddrPort(l.Addr().String())
		if err != nil {
			t.Fatal(err)
		}

		p := NewProber(time.Second)
		if !p.Reachable(context.Background(), addrPort.Addr(), addrPort.Port()) {
			t.Error("expected open port to be reachable")
		}
	})

	t.Run("closed port is unreachable", func(t *testing.T) {
		t.Parallel()

		l, err := net.Listen("tcp4", "127.0.0.1:0")
		if err != nil {
			t.Fatal(err)
		}
		addrPort, err := netip.ParseAddrPort(l.Addr().String())
		if err != nil {
			t.Fatal(err)
		}
		l.Close()

		p := NewProber(time.Second)
		if p.Reachable(context.Background(), addrPort.Addr(), addrPort.Port()) {
			t.Error("expected closed port to be unreachable")
		}
	})

	t.Run("cancelled context is unreachable", func(t *testing.T) {
		t.Parallel()

		l, err := net.Listen("tcp4", "127.0.0.1:0")
		if err != nil {
			t.Fatal(err)
		}
		defer l.Close()

		addrPort, err := netip.ParseAddrPort(l.Addr().String())
		if err != nil {
			t.Fatal(err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		p := NewProber(time.Second)
		if p.Reachable(ctx, addrPort.Addr(), addrPort.Port()) {
			t.Error("expected cancelled context to report unreachable")
		}
	})
}
