package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// dpiDomains are services whose traffic is commonly disrupted by deep
// packet inspection rather than DNS or IP blocking. A blocked outcome for
// these on an otherwise working network is a strong DPI signal.
var dpiDomains = []string{
	"discord.com",
	"facebook.com",
	"instagram.com",
	"linkedin.com",
	"medium.com",
	"patreon.com",
	"protonmail.com",
	"rutracker.org",
	"soundcloud.com",
	"x.com",
	"youtube.com",
}

// geoblockDomains are services known to deny or redirect requests based on
// the client's apparent region. A denied or redirected outcome for these
// points at geo-blocking rather than network-level censorship.
var geoblockDomains = []string{
	"canva.com",
	"chatgpt.com",
	"claude.ai",
	"copilot.microsoft.com",
	"dell.com",
	"figma.com",
	"gemini.google.com",
	"intel.com",
	"notion.so",
	"oracle.com",
	"spotify.com",
}

// BuiltinDomains returns the built-in domain list for the given mode.
// ModeBoth returns the union with duplicates removed, DPI list first.
// The returned slice is a copy; callers may modify it freely.
func BuiltinDomains(mode Mode) []string {
	switch mode {
	case ModeDPI:
		return append([]string(nil), dpiDomains...)
	case ModeGeoblock:
		return append([]string(nil), geoblockDomains...)
	default:
		seen := make(map[string]bool, len(dpiDomains)+len(geoblockDomains))
		combined := make([]string, 0, len(dpiDomains)+len(geoblockDomains))
		for _, d := range dpiDomains {
			if !seen[d] {
				seen[d] = true
				combined = append(combined, d)
			}
		}
		for _, d := range geoblockDomains {
			if !seen[d] {
				seen[d] = true
				combined = append(combined, d)
			}
		}
		return combined
	}
}

// ParseDomainList reads a domain list with one domain per line.
// Lines starting with '#' and blank lines are ignored; surrounding
// whitespace is trimmed. Input order is preserved.
func ParseDomainList(r io.Reader) ([]string, error) {
	var domains []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		domains = append(domains, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read domain list: %w", err)
	}
	return domains, nil
}

// LoadDomainsFile reads a domain list from the given file path.
func LoadDomainsFile(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided domains path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open domains file: %w", err)
	}
	defer f.Close()

	return ParseDomainList(f)
}

// Domains resolves the domain set for this run. Precedence: a single
// explicit domain wins over a domains file, which wins over the built-in
// list selected by Mode. Returns ErrNoDomains when the selection is empty.
func (c *Config) Domains() ([]string, error) {
	if c.SingleDomain != "" {
		return []string{c.SingleDomain}, nil
	}

	if c.DomainsFile != "" {
		domains, err := LoadDomainsFile(c.DomainsFile)
		if err != nil {
			return nil, err
		}
		if len(domains) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoDomains, c.DomainsFile)
		}
		return domains, nil
	}

	return BuiltinDomains(c.Mode), nil
}
