package probe

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/vernette/censorcheck/internal/model"
	"golang.org/x/net/proxy"
)

// maxRedirects limits redirect chains when following is enabled.
// Ten hops is enough for any legitimate chain while preventing loops.
const maxRedirects = 10

// maxDrainBytes limits how much of a response body is read before the
// connection is released. Only the status line and headers matter for
// classification; the body is drained solely to keep connections reusable.
const maxDrainBytes = 64 * 1024

// Result is the raw outcome of a single probe: the status code, the
// redirect target when one was captured, and the failure reason when no
// response was ever received.
//
// A Status of 0 is the sentinel for total failure (never connected, or
// retries exhausted). It is a normal return value, not an error.
type Result struct {
	// Status is the HTTP status code, or 0 on total failure.
	Status int

	// RedirectTarget is the Location header value captured from a 3xx
	// response when redirects were not followed, empty otherwise.
	RedirectTarget string

	// Reason is set only when Status is 0 and distinguishes timeout from
	// transport-level failure.
	Reason model.BlockReason
}

// Executor issues HTTP/HTTPS probe requests with the configured timeout,
// retry policy, user agent, and optional SOCKS5 proxy.
//
// Design decision: The executor builds a fresh http.Client per probe
// because redirect policy depends on the protocol and the dialer depends
// on the IP family; sharing one client would require mutating it between
// probes that run concurrently.
type Executor struct {
	timeout      time.Duration
	retries      int
	userAgent    string
	proxyAddress string
	logger       *slog.Logger
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithProxy routes all probe traffic through the given SOCKS5 proxy.
// The proxy performs name resolution for probed URLs, so probes through a
// proxy do not depend on local DNS answers for the target.
func WithProxy(address string) ExecutorOption {
	return func(e *Executor) {
		e.proxyAddress = address
	}
}

// WithExecutorLogger sets a custom logger for probe attempts.
func WithExecutorLogger(logger *slog.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = logger
	}
}

// NewExecutor creates an Executor. Each attempt is bounded by timeout for
// both connect and total request time; retries is the number of additional
// attempts after a transport failure.
func NewExecutor(timeout time.Duration, retries int, userAgent string, opts ...ExecutorOption) *Executor {
	e := &Executor{
		timeout:   timeout,
		retries:   retries,
		userAgent: userAgent,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}

	return e
}

// Probe issues a single probe for {protocol}://{domain} pinned to the
// given IP family. HTTP probes never follow redirects and capture the
// Location header; HTTPS probes follow redirects (up to maxRedirects) and
// report the final hop. This asymmetry is intentional: an HTTP redirect is
// itself a blocking fingerprint worth reporting as-is, while an HTTPS
// probe should resolve to the page's true final status.
//
// On total failure Probe returns the sentinel Result with Status 0 and the
// failure reason; it never returns an error.
func (e *Executor) Probe(ctx context.Context, domain string, protocol model.Protocol, ipVersion model.IPVersion) Result {
	targetURL := string(protocol) + "://" + domain

	client, err := e.newClient(protocol, ipVersion)
	if err != nil {
		e.logger.Debug("failed to build probe client",
			"url", targetURL,
			"ip_version", ipVersion,
			"error", err,
		)
		return Result{Reason: model.BlockReasonTransport}
	}
	defer client.CloseIdleConnections()

	var lastErr error
	for attempt := 0; attempt <= e.retries; attempt++ {
		if ctx.Err() != nil {
			break
		}

		status, redirect, err := e.attempt(ctx, client, targetURL)
		if err == nil {
			return Result{Status: status, RedirectTarget: redirect}
		}

		lastErr = err
		e.logger.Debug("probe attempt failed",
			"url", targetURL,
			"ip_version", ipVersion,
			"attempt", attempt+1,
			"error", err,
		)
	}

	return Result{Reason: failureReason(lastErr)}
}

// attempt performs one request and returns the status code and, for
// unfollowed 3xx responses, the Location header value.
func (e *Executor) attempt(ctx context.Context, client *http.Client, targetURL string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return 0, "", err
	}

	// These headers make the probe resemble an ordinary browser request,
	// reducing the chance a site distinguishes it on header fingerprint.
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	resp, err := client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	// Drain a bounded amount so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes)) //nolint:errcheck // Body content is irrelevant to classification

	redirect := ""
	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		redirect = resp.Header.Get("Location")
	}

	return resp.StatusCode, redirect, nil
}

// newClient builds an http.Client pinned to the IP family with the
// protocol's redirect policy applied.
func (e *Executor) newClient(protocol model.Protocol, ipVersion model.IPVersion) (*http.Client, error) {
	network := ipVersion.Network()

	var dial func(ctx context.Context, network, addr string) (net.Conn, error)
	if e.proxyAddress != "" {
		// The proxy hop itself is dialed over the pinned family; the
		// proxy then resolves and connects to the target on our behalf.
		socks, err := NewDialer(network, e.proxyAddress, e.timeout)
		if err != nil {
			return nil, err
		}
		dial = func(ctx context.Context, _, addr string) (net.Conn, error) {
			if cd, ok := socks.(proxy.ContextDialer); ok {
				return cd.DialContext(ctx, "tcp", addr)
			}
			return socks.Dial("tcp", addr)
		}
	} else {
		d := &net.Dialer{Timeout: e.timeout}
		dial = func(ctx context.Context, _, addr string) (net.Conn, error) {
			return d.DialContext(ctx, network, addr)
		}
	}

	transport := &http.Transport{
		DialContext: dial,
		// Certificate validation analysis is out of scope, and blocking
		// middleboxes often present bogus certificates; failing the probe
		// on them would misreport the site as a transport error.
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true, //nolint:gosec // Reachability classification, not certificate analysis
		},
		// Probes are one-shot; pooling connections across domains only
		// holds sockets open.
		DisableKeepAlives: true,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   e.timeout,
	}

	if protocol == model.ProtocolHTTP {
		client.CheckRedirect = func(_ *http.Request, _ []*http.Request) error {
			return http.ErrUseLastResponse
		}
	} else {
		client.CheckRedirect = func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		}
	}

	return client, nil
}

// failureReason maps the final transport error of an exhausted probe to a
// block reason. Timeouts (net.Error timeouts and context deadlines) are
// distinguished from other transport failures such as connection refused
// or reset.
func failureReason(err error) model.BlockReason {
	if err == nil {
		return model.BlockReasonTransport
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return model.BlockReasonTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return model.BlockReasonTimeout
	}

	return model.BlockReasonTransport
}
