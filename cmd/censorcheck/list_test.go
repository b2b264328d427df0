package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/vernette/censorcheck/internal/config"
)

// TestNewListCmd tests the list command.
func TestNewListCmd(t *testing.T) {
	t.Parallel()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()

		cmd := NewListCmd()
		if cmd.Use != "list" {
			t.Errorf("expected use 'list', got %q", cmd.Use)
		}
	})

	t.Run("prints combined list by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		cmd := NewListCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		lines := strings.Fields(buf.String())
		expected := config.BuiltinDomains(config.ModeBoth)
		if len(lines) != len(expected) {
			t.Fatalf("expected %d domains, got %d", len(expected), len(lines))
		}
		for i := range expected {
			if lines[i] != expected[i] {
				t.Errorf("line %d: got %q, expected %q", i, lines[i], expected[i])
			}
		}
	})

	t.Run("prints selected mode list", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		cmd := NewListCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"--mode", "dpi"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		lines := strings.Fields(buf.String())
		expected := config.BuiltinDomains(config.ModeDPI)
		if len(lines) != len(expected) {
			t.Errorf("expected %d domains, got %d", len(expected), len(lines))
		}
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		t.Parallel()

		cmd := NewListCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--mode", "stealth"})

		if err := cmd.Execute(); !errors.Is(err, config.ErrInvalidMode) {
			t.Errorf("expected ErrInvalidMode, got %v", err)
		}
	})

	t.Run("output round-trips through the list parser", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		cmd := NewListCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"--mode", "geoblock"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		domains, err := config.ParseDomainList(strings.NewReader(buf.String()))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(domains) != len(config.BuiltinDomains(config.ModeGeoblock)) {
			t.Errorf("round-trip lost domains: got %d", len(domains))
		}
	})
}
