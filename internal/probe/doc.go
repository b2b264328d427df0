// Package probe provides the low-level network probing primitives:
// DNS resolution, raw TCP reachability, HTTP/HTTPS probe execution, and
// outcome classification.
//
// # Architecture
//
// The primitives are deliberately independent of each other; the checker
// package composes them into the per-domain state machine:
//   - Resolver: domain name -> first IP address (absence is a normal result)
//   - Prober: single TCP connect with a deadline, no retries
//   - Executor: retrying HTTP/HTTPS request pinned to an IP family,
//     optionally routed through a SOCKS5 proxy
//   - Classify: pure function from probe result to ProbeOutcome
//
// Design decision: Probe failures are returned as data (a sentinel status
// of 0 plus a failure reason), never as errors. A blocked site is a normal,
// expected terminal state for this tool, not an exceptional control path.
//
// All blocking operations take a context and are bounded by the configured
// timeout; nothing in this package blocks indefinitely.
package probe
