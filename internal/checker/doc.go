// Package checker orchestrates probing across domains.
//
// The per-domain check is an explicit state machine:
//
//	Start -> Resolving -> (NxDomain | Reachable) -> (BlockedByIP | Probing) -> Done
//
// DNS failure and IP-level unreachability are first-class terminal
// transitions that short-circuit before any protocol probe runs; no time
// is spent retrying requests against a host already known unreachable.
//
// The Runner executes the per-domain check across the whole domain set
// with a bounded worker pool. The four probe combinations within one
// domain (http/https x ipv4/ipv6) are mutually independent and run
// concurrently, each with its own timeout and retry budget; the final
// report preserves input domain order regardless of completion order.
//
// Design decision: The orchestrator depends on small consumer-side
// interfaces (Resolver, Prober, Executor) rather than concrete probe
// types, so the state machine's transitions can be tested with stubs and
// without the network.
package checker
