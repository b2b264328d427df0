package checker

import (
	"context"
	"log/slog"
	"time"

	"github.com/vernette/censorcheck/internal/model"
	"golang.org/x/sync/errgroup"
)

// DomainChecker runs the full check for one domain. It is implemented by
// Orchestrator; the Runner depends on the interface so aggregation can be
// tested with stubs.
type DomainChecker interface {
	CheckDomain(ctx context.Context, domain string) *model.DomainResult
}

// Runner executes the per-domain check across a whole domain set and
// assembles the final report.
//
// Design decision: We use errgroup.SetLimit rather than a hand-rolled
// worker pool because it's simpler and handles the concurrency limit
// correctly. Results are pre-allocated by index so the report preserves
// input order regardless of which domain's checks complete first.
type Runner struct {
	checker     DomainChecker
	concurrency int
	version     string
	logger      *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithConcurrency sets the maximum number of domains checked at once.
// Default is 10 if not specified; non-positive values are ignored.
func WithConcurrency(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithVersion sets the tool version recorded in the report.
func WithVersion(version string) RunnerOption {
	return func(r *Runner) {
		r.version = version
	}
}

// WithRunnerLogger sets a custom logger for run-level progress.
func WithRunnerLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a Runner over the given per-domain checker.
func NewRunner(checker DomainChecker, opts ...RunnerOption) *Runner {
	r := &Runner{
		checker:     checker,
		concurrency: 10,
		version:     "(devel)",
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}

// Run checks every domain and assembles the report. The params snapshot is
// stored on the report for provenance.
//
// Every domain that was checked yields exactly one result, in input order.
// Cancellation stops issuing new domain checks while in-flight probes
// finish or time out naturally; a cancelled run returns the context error
// alongside a report containing the results completed so far. The Runner
// never retries: all retrying is delegated to the probe executor.
func (r *Runner) Run(ctx context.Context, domains []string, params []model.Param) (*model.Report, error) {
	r.logger.Info("starting run",
		"total_domains", len(domains),
		"concurrency", r.concurrency,
	)

	startTime := time.Now()

	// Pre-allocate by index to preserve input order.
	results := make([]*model.DomainResult, len(domains))

	var g errgroup.Group
	g.SetLimit(r.concurrency)

	for i, domain := range domains {
		g.Go(func() error {
			// Stop issuing new checks once cancelled.
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			r.logger.Debug("checking domain",
				"domain", domain,
				"index", i+1,
				"total", len(domains),
			)

			results[i] = r.checker.CheckDomain(ctx, domain)
			return nil
		})
	}

	err := g.Wait()

	// Slots are nil only when cancellation prevented the check from
	// starting; drop them so the report stays well-formed.
	completed := results[:0]
	for _, res := range results {
		if res != nil {
			completed = append(completed, res)
		}
	}

	r.logger.Info("run complete",
		"total_domains", len(domains),
		"completed", len(completed),
		"elapsed", time.Since(startTime),
	)

	return model.NewReport(r.version, params, completed), err
}
