package probe

import (
	"testing"

	"github.com/vernette/censorcheck/internal/model"
)

// TestClassify tests the outcome classification for every status category.
func TestClassify(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		status         int
		redirectTarget string
		expectedKind   model.OutcomeKind
	}{
		{"zero sentinel is blocked", 0, "", model.OutcomeBlocked},
		{"negative status is blocked", -1, "", model.OutcomeBlocked},
		{"200 is available", 200, "", model.OutcomeAvailable},
		{"301 is redirected", 301, "https://example.com/", model.OutcomeRedirected},
		{"302 is redirected", 302, "/login", model.OutcomeRedirected},
		{"307 is redirected", 307, "https://example.com/", model.OutcomeRedirected},
		{"399 is still redirect range", 399, "", model.OutcomeRedirected},
		{"403 is denied", 403, "", model.OutcomeDenied},
		{"404 is other status", 404, "", model.OutcomeOtherStatus},
		{"500 is other status", 500, "", model.OutcomeOtherStatus},
		{"204 is other status", 204, "", model.OutcomeOtherStatus},
		{"299 is other status", 299, "", model.OutcomeOtherStatus},
		{"400 is other status", 400, "", model.OutcomeOtherStatus},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			outcome := Classify(tc.status, tc.redirectTarget, 5)
			if outcome.Kind != tc.expectedKind {
				t.Errorf("Classify(%d, %q) = %v, expected %v",
					tc.status, tc.redirectTarget, outcome.Kind, tc.expectedKind)
			}
		})
	}

	t.Run("redirect preserves target", func(t *testing.T) {
		t.Parallel()

		outcome := Classify(301, "https://blocked.example/", 5)
		if outcome.RedirectTarget != "https://blocked.example/" {
			t.Errorf("expected target preserved, got %q", outcome.RedirectTarget)
		}
		if outcome.Status != 301 {
			t.Errorf("expected status 301, got %d", outcome.Status)
		}
	})

	t.Run("redirect without target uses placeholder", func(t *testing.T) {
		t.Parallel()

		outcome := Classify(302, "", 5)
		if outcome.RedirectTarget != model.EmptyRedirectTarget {
			t.Errorf("expected %q, got %q", model.EmptyRedirectTarget, outcome.RedirectTarget)
		}
	})

	t.Run("blocked records timeout seconds", func(t *testing.T) {
		t.Parallel()

		outcome := Classify(0, "", 9)
		if outcome.TimeoutSeconds != 9 {
			t.Errorf("expected timeout 9, got %d", outcome.TimeoutSeconds)
		}
		if outcome.Reason != model.BlockReasonTimeout {
			t.Errorf("expected default timeout reason, got %v", outcome.Reason)
		}
	})

	t.Run("blocked has zero status", func(t *testing.T) {
		t.Parallel()

		outcome := Classify(0, "", 5)
		if outcome.Status != 0 {
			t.Errorf("expected status 0, got %d", outcome.Status)
		}
	})

	t.Run("deterministic for same input", func(t *testing.T) {
		t.Parallel()

		a := Classify(403, "", 5)
		b := Classify(403, "", 5)
		if a != b {
			t.Errorf("expected identical outcomes, got %+v and %+v", a, b)
		}
	})
}

// TestOutcome tests classification of raw executor results.
func TestOutcome(t *testing.T) {
	t.Parallel()

	t.Run("preserves transport reason on blocked", func(t *testing.T) {
		t.Parallel()

		res := Result{Reason: model.BlockReasonTransport}
		outcome := Outcome(res, 5)

		if outcome.Kind != model.OutcomeBlocked {
			t.Fatalf("expected blocked, got %v", outcome.Kind)
		}
		if outcome.Reason != model.BlockReasonTransport {
			t.Errorf("expected transport reason, got %v", outcome.Reason)
		}
	})

	t.Run("timeout reason stays timeout", func(t *testing.T) {
		t.Parallel()

		res := Result{Reason: model.BlockReasonTimeout}
		outcome := Outcome(res, 5)

		if outcome.Reason != model.BlockReasonTimeout {
			t.Errorf("expected timeout reason, got %v", outcome.Reason)
		}
	})

	t.Run("successful result classified by status", func(t *testing.T) {
		t.Parallel()

		res := Result{Status: 200}
		outcome := Outcome(res, 5)

		if outcome.Kind != model.OutcomeAvailable {
			t.Errorf("expected available, got %v", outcome.Kind)
		}
	})
}
