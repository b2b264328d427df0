// Package main provides the entry point for the censorcheck CLI.
//
// Censorcheck probes a list of domains over HTTP/HTTPS to classify their
// reachability, distinguishing available, redirected, access-denied, and
// blocked outcomes. It is used to detect DPI-based censorship and
// geographic blocking patterns.
//
// Usage:
//
//	censorcheck check
//	censorcheck check --mode geoblock --json
//	censorcheck check --domain example.com --proxy 127.0.0.1:1080
//
// See --help for all available options.
package main

// main is the entry point for censorcheck.
func main() {
	Execute()
}
