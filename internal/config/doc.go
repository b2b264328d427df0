// Package config holds the run configuration for censorcheck.
//
// The configuration is built once from CLI flags (optionally seeded from a
// YAML defaults file), validated up front, and then passed explicitly to
// every component. No component reads ambient state: validation failures
// are the only fatal errors in the tool, surfaced before any probing
// begins.
//
// The package also owns domain selection: the built-in DPI and geoblock
// lists, domain-file parsing, and the precedence between a single explicit
// domain, a file, and the built-in lists.
package config
