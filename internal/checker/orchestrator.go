package checker

import (
	"context"
	"log/slog"
	"net/netip"
	"sync"

	"github.com/vernette/censorcheck/internal/model"
	"github.com/vernette/censorcheck/internal/probe"
	"golang.org/x/sync/errgroup"
)

// reachabilityPort is the port used for the IP-level reachability check.
// Port 443 is checked regardless of which protocols are under test: a
// reachable TLS port is a reasonable proxy for "the host is not
// network-blocked at the IP layer".
const reachabilityPort = 443

// Resolver resolves a domain to its first address. The boolean is false
// when the domain does not resolve; absence is a normal result.
type Resolver interface {
	Resolve(ctx context.Context, domain string) (netip.Addr, bool)
}

// Prober tests TCP reachability of an address and port within a deadline.
type Prober interface {
	Reachable(ctx context.Context, addr netip.Addr, port uint16) bool
}

// Executor issues one HTTP/HTTPS probe pinned to an IP family and returns
// the raw result. Total failure is a sentinel result, never an error.
type Executor interface {
	Probe(ctx context.Context, domain string, protocol model.Protocol, ipVersion model.IPVersion) probe.Result
}

// Orchestrator runs the per-domain check state machine.
type Orchestrator struct {
	resolver Resolver
	prober   Prober
	executor Executor

	// protocols and ipVersions are the enabled probe combinations; the
	// IP-version set is already intersected with host support, so a
	// combination absent here is genuinely unattempted, not blocked.
	protocols  []model.Protocol
	ipVersions []model.IPVersion

	// timeoutSeconds is recorded on blocked outcomes for messages.
	timeoutSeconds int

	logger *slog.Logger
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithOrchestratorLogger sets a custom logger for per-domain progress.
func WithOrchestratorLogger(logger *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// NewOrchestrator creates an Orchestrator over the given probing
// primitives and enabled (protocol, ip-version) combinations.
func NewOrchestrator(
	resolver Resolver,
	prober Prober,
	executor Executor,
	protocols []model.Protocol,
	ipVersions []model.IPVersion,
	timeoutSeconds int,
	opts ...OrchestratorOption,
) *Orchestrator {
	o := &Orchestrator{
		resolver:       resolver,
		prober:         prober,
		executor:       executor,
		protocols:      protocols,
		ipVersions:     ipVersions,
		timeoutSeconds: timeoutSeconds,
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}

	return o
}

// CheckDomain runs the full state machine for one domain and always
// produces exactly one DomainResult. Failures at any stage are captured as
// data in the result, never returned as errors: a failure in one domain's
// checks must not affect any other domain.
func (o *Orchestrator) CheckDomain(ctx context.Context, domain string) *model.DomainResult {
	// Resolving -> NxDomain (terminal): no probes are attempted.
	o.logger.Debug("resolving domain", "domain", domain)
	addr, ok := o.resolver.Resolve(ctx, domain)
	if !ok {
		o.logger.Debug("domain does not resolve", "domain", domain)
		return model.NewErrorResult(domain, model.ErrorCodeNXDomain)
	}

	// Reachable -> BlockedByIP (terminal): no probes are attempted.
	if !o.prober.Reachable(ctx, addr, reachabilityPort) {
		o.logger.Debug("address unreachable",
			"domain", domain,
			"address", addr,
			"port", reachabilityPort,
		)
		result := model.NewErrorResult(domain, model.ErrorCodeBlockedByIP)
		result.ResolvedIP = addr.String()
		return result
	}

	// Probing: enabled combinations run concurrently and independently.
	// Each writes only its own slot; the merge is order-insensitive.
	result := model.NewDomainResult(domain)
	result.ResolvedIP = addr.String()

	var mu sync.Mutex
	var g errgroup.Group
	for _, protocol := range o.protocols {
		for _, ipVersion := range o.ipVersions {
			g.Go(func() error {
				res := o.executor.Probe(ctx, domain, protocol, ipVersion)
				outcome := probe.Outcome(res, o.timeoutSeconds)

				o.logger.Debug("probe classified",
					"domain", domain,
					"protocol", protocol,
					"ip_version", ipVersion,
					"outcome", outcome.String(),
				)

				mu.Lock()
				result.SetOutcome(protocol, ipVersion, outcome)
				mu.Unlock()
				return nil
			})
		}
	}
	_ = g.Wait() //nolint:errcheck // Probe goroutines never return errors

	return result
}
