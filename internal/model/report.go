package model

import "time"

// Param is a single key/value entry in the report's configuration snapshot.
// Params are stored as an ordered list rather than a map so the snapshot
// renders deterministically.
type Param struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Report is the result of one complete censorcheck run.
//
// Results preserve the input domain order regardless of which domain's
// concurrent checks finished first; reports are reproducible for a given
// input list. The report is immutable after construction.
type Report struct {
	// Version is the censorcheck version that produced the report.
	Version string `json:"version"`

	// GeneratedAt is the time the run completed.
	GeneratedAt time.Time `json:"generated_at"`

	// Params is a snapshot of the effective run configuration, including
	// derived facts such as whether IPv6 was usable on the host.
	Params []Param `json:"params"`

	// Results holds one entry per requested domain, in input order.
	Results []*DomainResult `json:"results"`
}

// NewReport assembles a report from the run parameters and per-domain
// results. The results slice is used as-is; callers hand over ownership.
func NewReport(version string, params []Param, results []*DomainResult) *Report {
	return &Report{
		Version:     version,
		GeneratedAt: time.Now(),
		Params:      params,
		Results:     results,
	}
}
