// Package model defines the core data structures used throughout censorcheck.
//
// This package contains the following main types:
//   - ProbeOutcome: The classified outcome of a single HTTP/HTTPS probe
//   - DomainResult: All outcomes collected for one domain
//   - Report: The ordered, immutable result of a complete run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (probe, checker, report) need to use these
// types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output.
package model
