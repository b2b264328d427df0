package probe

import (
	"net/http"

	"github.com/vernette/censorcheck/internal/model"
)

// Classify maps a probe's (status, redirect target) pair into an outcome.
// It is a pure function, deterministic and total over all integer status
// codes; timeoutSeconds is recorded on blocked outcomes so messages can
// report how long was waited.
//
// The precedence below is significant and fixed: the zero/blocked sentinel
// is checked first (so retried-to-exhaustion and literal zero responses
// collapse into one category), then the redirect range, then the two named
// status codes, then the catch-all.
func Classify(status int, redirectTarget string, timeoutSeconds int) model.ProbeOutcome {
	switch {
	case status <= 0:
		return model.ProbeOutcome{
			Kind:           model.OutcomeBlocked,
			Reason:         model.BlockReasonTimeout,
			TimeoutSeconds: timeoutSeconds,
		}

	case status >= 300 && status < 400:
		target := redirectTarget
		if target == "" {
			target = model.EmptyRedirectTarget
		}
		return model.ProbeOutcome{
			Kind:           model.OutcomeRedirected,
			Status:         status,
			RedirectTarget: target,
		}

	case status == http.StatusOK:
		return model.ProbeOutcome{
			Kind:   model.OutcomeAvailable,
			Status: status,
		}

	case status == http.StatusForbidden:
		return model.ProbeOutcome{
			Kind:   model.OutcomeDenied,
			Status: status,
		}

	default:
		return model.ProbeOutcome{
			Kind:   model.OutcomeOtherStatus,
			Status: status,
		}
	}
}

// Outcome classifies a raw executor result, preserving the executor's
// transport-vs-timeout distinction on blocked outcomes. Classification
// itself depends only on the result values; no hidden state.
func Outcome(res Result, timeoutSeconds int) model.ProbeOutcome {
	out := Classify(res.Status, res.RedirectTarget, timeoutSeconds)
	if out.Kind == model.OutcomeBlocked && res.Reason == model.BlockReasonTransport {
		out.Reason = model.BlockReasonTransport
	}
	return out
}
