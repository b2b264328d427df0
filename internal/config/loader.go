package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default defaults-file name.
const DefaultConfigFile = ".censorcheck"

// ErrConfigNotFound is returned when the defaults file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File holds optional defaults loaded from a YAML file. Flags always win
// over file values; the file only replaces the built-in defaults.
//
// Design decision: Retries is a pointer because zero is a meaningful value
// (no retries) that must be distinguishable from "not set".
type File struct {
	// Timeout is the per-probe timeout in seconds.
	Timeout int `yaml:"timeout"`

	// Retries is the number of additional attempts per probe.
	Retries *int `yaml:"retries"`

	// UserAgent is the User-Agent header sent with probes.
	UserAgent string `yaml:"user_agent"`

	// Proxy is a SOCKS5 proxy in "host:port" format.
	Proxy string `yaml:"proxy"`

	// Mode is the built-in list selection: dpi, geoblock, or both.
	Mode string `yaml:"mode"`

	// Protocol is the protocol selection: http, https, or both.
	Protocol string `yaml:"protocol"`

	// IPVersion is the IP family selection: 4, 6, or both.
	IPVersion string `yaml:"ip_version"`

	// BatchSize is the number of domains checked concurrently.
	BatchSize int `yaml:"batch_size"`
}

// LoadConfigFile loads run defaults from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers should
// handle this based on whether the path was explicitly specified.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the defaults file in the following order:
//  1. If configPath is specified, use it directly
//  2. .censorcheck in the current directory
//  3. config.yaml in the XDG config directory for censorcheck
//  4. .censorcheck in the user's home directory
//
// Returns the path to the file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	xdgConfig := filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	if home, err := os.UserHomeDir(); err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// Apply copies the file's set values onto the configuration. Unset values
// (zero, or nil for Retries) leave the configuration untouched.
func (f *File) Apply(cfg *Config) {
	if f.Timeout > 0 {
		cfg.Timeout = time.Duration(f.Timeout) * time.Second
	}
	if f.Retries != nil {
		cfg.Retries = *f.Retries
	}
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	if f.Proxy != "" {
		cfg.ProxyAddress = f.Proxy
	}
	if f.Mode != "" {
		cfg.Mode = Mode(f.Mode)
	}
	if f.Protocol != "" {
		cfg.Protocol = ProtocolChoice(f.Protocol)
	}
	if f.IPVersion != "" {
		cfg.IPVersion = IPVersionChoice(f.IPVersion)
	}
	if f.BatchSize > 0 {
		cfg.BatchSize = f.BatchSize
	}
}
