package model

import (
	"encoding/json"
	"fmt"
)

// OutcomeKind is the closed set of categories a probe can be classified into.
//
// Design decision: We use a tagged variant (kind + payload fields on
// ProbeOutcome) instead of deriving the category from a formatted message
// string. The classifier produces the kind directly, and the presentation
// layer renders it; nothing ever parses strings to recover the category.
type OutcomeKind int

// Probe outcome categories.
const (
	// OutcomeAvailable means the probe received HTTP 200.
	OutcomeAvailable OutcomeKind = iota

	// OutcomeRedirected means the probe received a 3xx response.
	// The redirect target is preserved on the outcome.
	OutcomeRedirected

	// OutcomeDenied means the probe received HTTP 403.
	OutcomeDenied

	// OutcomeOtherStatus means the probe received any other status code.
	OutcomeOtherStatus

	// OutcomeBlocked means the probe never got a usable response:
	// all attempts timed out or failed at the transport layer.
	OutcomeBlocked
)

// String returns the report label for the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAvailable:
		return "available"
	case OutcomeRedirected:
		return "redirected"
	case OutcomeDenied:
		return "denied"
	case OutcomeOtherStatus:
		return "other_status"
	case OutcomeBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// BlockReason distinguishes why a blocked probe never produced a response.
type BlockReason int

// Block reasons.
const (
	// BlockReasonNone is the zero value for non-blocked outcomes.
	BlockReasonNone BlockReason = iota

	// BlockReasonTimeout means every attempt exceeded the configured timeout.
	BlockReasonTimeout

	// BlockReasonTransport means the transport failed before a response
	// arrived (connection refused, reset, protocol error).
	BlockReasonTransport
)

// String returns the report label for the block reason.
func (r BlockReason) String() string {
	switch r {
	case BlockReasonTimeout:
		return "timeout"
	case BlockReasonTransport:
		return "transport_error"
	default:
		return "none"
	}
}

// EmptyRedirectTarget is the placeholder recorded when a 3xx response
// carries no discoverable redirect target. A redirect without a target is
// itself a signal worth surfacing, so it is substituted rather than dropped.
const EmptyRedirectTarget = "<empty>"

// ProbeOutcome is the classified result of one (protocol, ip-version) probe.
// Outcomes are produced fresh by the classifier and never mutated afterwards.
type ProbeOutcome struct {
	// Kind is the outcome category.
	Kind OutcomeKind

	// Status is the HTTP status code, or 0 for blocked outcomes.
	Status int

	// RedirectTarget is the redirect target for OutcomeRedirected.
	// It is EmptyRedirectTarget when the response carried no target,
	// and empty for all other kinds.
	RedirectTarget string

	// Reason distinguishes timeout from transport failure for
	// OutcomeBlocked; BlockReasonNone otherwise.
	Reason BlockReason

	// TimeoutSeconds is the configured per-probe timeout, recorded on
	// blocked outcomes so messages can tell the user how long was waited.
	TimeoutSeconds int
}

// String returns a human-readable one-line description of the outcome.
func (o ProbeOutcome) String() string {
	switch o.Kind {
	case OutcomeAvailable:
		return fmt.Sprintf("available (%d)", o.Status)
	case OutcomeRedirected:
		return fmt.Sprintf("redirected (%d) to %s", o.Status, o.RedirectTarget)
	case OutcomeDenied:
		return fmt.Sprintf("access denied (%d)", o.Status)
	case OutcomeOtherStatus:
		return fmt.Sprintf("unexpected status (%d)", o.Status)
	case OutcomeBlocked:
		if o.Reason == BlockReasonTransport {
			return "blocked (transport error)"
		}
		return fmt.Sprintf("blocked (no response within %ds)", o.TimeoutSeconds)
	default:
		return "unknown"
	}
}

// probeOutcomeJSON is the wire shape of a probe slot.
// The redirect_url key is an explicit null for non-redirect outcomes so
// consumers can rely on its presence.
type probeOutcomeJSON struct {
	Status      int     `json:"status"`
	RedirectURL *string `json:"redirect_url"`
	Outcome     string  `json:"outcome"`
	BlockReason string  `json:"block_reason,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (o ProbeOutcome) MarshalJSON() ([]byte, error) {
	out := probeOutcomeJSON{
		Status:  o.Status,
		Outcome: o.Kind.String(),
	}
	if o.Kind == OutcomeRedirected {
		target := o.RedirectTarget
		out.RedirectURL = &target
	}
	if o.Kind == OutcomeBlocked {
		out.BlockReason = o.Reason.String()
	}
	return json.Marshal(out)
}
