package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vernette/censorcheck/internal/config"
	"github.com/vernette/censorcheck/internal/model"
)

// parseCheckFlags creates a check command with the given flags parsed so
// buildConfig can be exercised without running any probes.
func parseCheckFlags(t *testing.T, args ...string) *config.Config {
	t.Helper()

	cmd := NewCheckCmd()
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		t.Fatalf("buildConfig failed: %v", err)
	}
	return cfg
}

// TestNewCheckCmd tests the check command creation.
func TestNewCheckCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCheckCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "check" {
			t.Errorf("expected use 'check', got %q", cmd.Use)
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{
			"timeout", "retries", "user-agent", "proxy", "protocol",
			"ip-version", "mode", "file", "domain", "batch", "config",
			"json", "markdown", "output", "no-color",
		} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected flag %q", name)
			}
		}
	})
}

// TestBuildConfig tests configuration assembly from flags and defaults file.
func TestBuildConfig(t *testing.T) {
	// Not parallel: buildConfig searches the working directory for a
	// defaults file, so these tests pin the working directory.
	t.Chdir(t.TempDir())

	t.Run("defaults without flags", func(t *testing.T) {
		cfg := parseCheckFlags(t)

		if cfg.Timeout != config.DefaultTimeout {
			t.Errorf("expected default timeout, got %v", cfg.Timeout)
		}
		if cfg.Retries != config.DefaultRetries {
			t.Errorf("expected default retries, got %d", cfg.Retries)
		}
		if cfg.Mode != config.ModeDPI {
			t.Errorf("expected mode dpi, got %q", cfg.Mode)
		}
		if cfg.Protocol != config.ProtocolBoth {
			t.Errorf("expected protocol both, got %q", cfg.Protocol)
		}
		if cfg.IPVersion != config.IPVersionBoth {
			t.Errorf("expected ip version both, got %q", cfg.IPVersion)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("default config should validate, got %v", err)
		}
	})

	t.Run("flags override defaults", func(t *testing.T) {
		cfg := parseCheckFlags(t,
			"--timeout", "10",
			"--retries", "0",
			"--user-agent", "test-agent",
			"--proxy", "127.0.0.1:1080",
			"--protocol", "https",
			"--ip-version", "4",
			"--mode", "geoblock",
			"--domain", "example.com",
			"--batch", "3",
			"--json",
			"--output", "report.json",
		)

		if cfg.Timeout != 10*time.Second {
			t.Errorf("expected timeout 10s, got %v", cfg.Timeout)
		}
		if cfg.Retries != 0 {
			t.Errorf("expected retries 0, got %d", cfg.Retries)
		}
		if cfg.UserAgent != "test-agent" {
			t.Errorf("expected user agent 'test-agent', got %q", cfg.UserAgent)
		}
		if cfg.ProxyAddress != "127.0.0.1:1080" {
			t.Errorf("expected proxy, got %q", cfg.ProxyAddress)
		}
		if cfg.Protocol != config.ProtocolHTTPS {
			t.Errorf("expected protocol https, got %q", cfg.Protocol)
		}
		if cfg.IPVersion != config.IPVersion4 {
			t.Errorf("expected ip version 4, got %q", cfg.IPVersion)
		}
		if cfg.Mode != config.ModeGeoblock {
			t.Errorf("expected mode geoblock, got %q", cfg.Mode)
		}
		if cfg.SingleDomain != "example.com" {
			t.Errorf("expected single domain, got %q", cfg.SingleDomain)
		}
		if cfg.BatchSize != 3 {
			t.Errorf("expected batch 3, got %d", cfg.BatchSize)
		}
		if !cfg.JSONReport {
			t.Error("expected json report enabled")
		}
		if cfg.ReportFile != "report.json" {
			t.Errorf("expected report file, got %q", cfg.ReportFile)
		}
	})

	t.Run("config file seeds defaults and flags win", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "timeout: 30\nretries: 9\nmode: geoblock\n"
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		cfg := parseCheckFlags(t,
			"--config", path,
			"--timeout", "7",
		)

		// Explicit flag wins over the file.
		if cfg.Timeout != 7*time.Second {
			t.Errorf("expected timeout 7s from flag, got %v", cfg.Timeout)
		}
		// File values fill in where no flag was given.
		if cfg.Retries != 9 {
			t.Errorf("expected retries 9 from file, got %d", cfg.Retries)
		}
		if cfg.Mode != config.ModeGeoblock {
			t.Errorf("expected mode geoblock from file, got %q", cfg.Mode)
		}
	})

	t.Run("explicit missing config file fails", func(t *testing.T) {
		cmd := NewCheckCmd()
		missing := filepath.Join(t.TempDir(), "absent.yaml")
		if err := cmd.ParseFlags([]string{"--config", missing}); err != nil {
			t.Fatal(err)
		}

		if _, err := buildConfig(cmd); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})
}

// TestEffectiveIPVersions tests the intersection of the requested IP
// families with host support.
func TestEffectiveIPVersions(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		choice        config.IPVersionChoice
		ipv6Supported bool
		expected      []model.IPVersion
		expectedErr   error
	}{
		{
			name:          "dual-stack on supported host probes both",
			choice:        config.IPVersionBoth,
			ipv6Supported: true,
			expected:      []model.IPVersion{model.IPv4, model.IPv6},
		},
		{
			name:          "dual-stack without host ipv6 narrows to ipv4",
			choice:        config.IPVersionBoth,
			ipv6Supported: false,
			expected:      []model.IPVersion{model.IPv4},
		},
		{
			name:          "explicit ipv6 without host ipv6 is fatal",
			choice:        config.IPVersion6,
			ipv6Supported: false,
			expectedErr:   errIPv6Unsupported,
		},
		{
			name:          "explicit ipv6 on supported host probes ipv6",
			choice:        config.IPVersion6,
			ipv6Supported: true,
			expected:      []model.IPVersion{model.IPv6},
		},
		{
			name:          "explicit ipv4 ignores host ipv6 support",
			choice:        config.IPVersion4,
			ipv6Supported: false,
			expected:      []model.IPVersion{model.IPv4},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := effectiveIPVersions(tc.choice, tc.ipv6Supported)

			if !errors.Is(err, tc.expectedErr) {
				t.Fatalf("expected error %v, got %v", tc.expectedErr, err)
			}
			if len(got) != len(tc.expected) {
				t.Fatalf("expected %d families, got %d", len(tc.expected), len(got))
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Errorf("family[%d]: got %v, expected %v", i, got[i], tc.expected[i])
				}
			}

			// A host without IPv6 must never yield an IPv6 probe slot.
			if !tc.ipv6Supported {
				for _, v := range got {
					if v == model.IPv6 {
						t.Error("IPv6 family returned for a host without IPv6")
					}
				}
			}
		})
	}
}

// TestSetupLogger tests logger construction per verbosity.
func TestSetupLogger(t *testing.T) {
	t.Parallel()

	if setupLogger(false) == nil {
		t.Error("expected non-nil logger")
	}
	if setupLogger(true) == nil {
		t.Error("expected non-nil verbose logger")
	}
}
