package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vernette/censorcheck/internal/checker"
	"github.com/vernette/censorcheck/internal/config"
	"github.com/vernette/censorcheck/internal/model"
	"github.com/vernette/censorcheck/internal/probe"
	"github.com/vernette/censorcheck/internal/report"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Probe domains and classify their reachability",
		Long: `Check probes each domain over the enabled protocol and IP-version
combinations and classifies every probe into one of: available,
redirected, access denied, other status, or blocked.

Domains that do not resolve or whose address is unreachable on port 443
are reported as such without any protocol probes.

Examples:
  # Probe the built-in DPI list
  censorcheck check

  # Probe the geo-blocking list with JSON output
  censorcheck check --mode geoblock --json

  # Probe a single domain through a local SOCKS5 proxy
  censorcheck check --domain example.com --proxy 127.0.0.1:1080

  # Probe domains from a file, HTTP only, IPv4 only
  censorcheck check --file domains.txt --protocol http --ip-version 4

Configuration file (.censorcheck) example:
  timeout: 10
  retries: 1
  proxy: "127.0.0.1:1080"
  user_agent: "Mozilla/5.0 ..."`,
		Args: cobra.NoArgs,
		RunE: runCheckCmd,
	}

	// Probe behavior flags
	cmd.Flags().IntP("timeout", "t", int(config.DefaultTimeout/time.Second),
		"Per-probe timeout in seconds (connect and total request time)")
	cmd.Flags().IntP("retries", "r", config.DefaultRetries,
		"Additional attempts after a transport failure")
	cmd.Flags().StringP("user-agent", "u", config.DefaultUserAgent,
		"User-Agent header sent with probes")
	cmd.Flags().StringP("proxy", "p", "",
		"SOCKS5 proxy for probe traffic (host:port)")
	cmd.Flags().StringP("protocol", "P", string(config.ProtocolBoth),
		"Protocols to probe: http, https, or both")
	cmd.Flags().StringP("ip-version", "i", string(config.IPVersionBoth),
		"IP families to probe: 4, 6, or both")

	// Domain selection flags
	cmd.Flags().StringP("mode", "m", string(config.ModeDPI),
		"Built-in domain list: dpi, geoblock, or both")
	cmd.Flags().StringP("file", "f", "",
		"File with one domain per line ('#' comments and blank lines ignored)")
	cmd.Flags().StringP("domain", "d", "",
		"Check a single domain instead of a list")

	// Concurrency
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of domains checked concurrently")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Defaults file path (default: .censorcheck in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().Bool("markdown", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("no-color", false,
		"Disable colorized output")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling: a user-level cancel stops
	// issuing new probes while in-flight ones finish or time out.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	noColor, err := cmd.Flags().GetBool("no-color")
	if err != nil {
		return err
	}

	return runCheck(ctx, cfg, noColor, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags, seeded from the
// YAML defaults file when one exists. Flags explicitly set by the user win
// over file values.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath = configPath

	// Apply file defaults first so explicitly-set flags override them.
	// If the user explicitly specified a config file path, error if it is
	// missing; otherwise silently continue without one.
	foundPath := config.FindConfigFile(cfg.ConfigFilePath)
	if foundPath != "" {
		file, err := config.LoadConfigFile(foundPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", foundPath, err)
		}
		file.Apply(cfg)
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	if cmd.Flags().Changed("timeout") {
		seconds, err := cmd.Flags().GetInt("timeout")
		if err != nil {
			return nil, err
		}
		cfg.Timeout = time.Duration(seconds) * time.Second
	}

	if cmd.Flags().Changed("retries") {
		if cfg.Retries, err = cmd.Flags().GetInt("retries"); err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("user-agent") {
		if cfg.UserAgent, err = cmd.Flags().GetString("user-agent"); err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("proxy") {
		if cfg.ProxyAddress, err = cmd.Flags().GetString("proxy"); err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("protocol") {
		protocol, err := cmd.Flags().GetString("protocol")
		if err != nil {
			return nil, err
		}
		cfg.Protocol = config.ProtocolChoice(protocol)
	}

	if cmd.Flags().Changed("ip-version") {
		ipVersion, err := cmd.Flags().GetString("ip-version")
		if err != nil {
			return nil, err
		}
		cfg.IPVersion = config.IPVersionChoice(ipVersion)
	}

	if cmd.Flags().Changed("mode") {
		mode, err := cmd.Flags().GetString("mode")
		if err != nil {
			return nil, err
		}
		cfg.Mode = config.Mode(mode)
	}

	if cfg.DomainsFile, err = cmd.Flags().GetString("file"); err != nil {
		return nil, err
	}

	if cfg.SingleDomain, err = cmd.Flags().GetString("domain"); err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("batch") {
		if cfg.BatchSize, err = cmd.Flags().GetInt("batch"); err != nil {
			return nil, err
		}
	}

	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}

	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}

	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// setupLogger creates a structured logger based on verbosity setting.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	return slog.New(handler)
}

// errIPv6Unsupported aborts a run that explicitly requested IPv6 on a
// host without a global IPv6 address.
var errIPv6Unsupported = errors.New("IPv6 requested but not supported by this host")

// effectiveIPVersions intersects the requested IP families with what the
// host supports. An explicit IPv6-only request on a v4-only host is a
// configuration error; a dual-stack request silently narrows to IPv4, so
// no IPv6 probe slot is ever produced on a host that cannot use one.
func effectiveIPVersions(choice config.IPVersionChoice, ipv6Supported bool) ([]model.IPVersion, error) {
	switch choice {
	case config.IPVersion6:
		if !ipv6Supported {
			return nil, errIPv6Unsupported
		}
		return []model.IPVersion{model.IPv6}, nil
	case config.IPVersion4:
		return []model.IPVersion{model.IPv4}, nil
	default:
		if !ipv6Supported {
			return []model.IPVersion{model.IPv4}, nil
		}
		return []model.IPVersion{model.IPv4, model.IPv6}, nil
	}
}

// runCheck executes the probe run.
func runCheck(ctx context.Context, cfg *config.Config, noColor bool, logger *slog.Logger) error {
	domains, err := cfg.Domains()
	if err != nil {
		return err
	}

	// Verify the proxy speaks SOCKS5 before spending any probe budget on
	// it. An unusable proxy is a fatal pre-run error.
	if cfg.ProxyAddress != "" {
		status := probe.CheckProxy(ctx, cfg.ProxyAddress)
		if status != probe.ProxyStatusOK {
			return fmt.Errorf("proxy check failed for %s: %w", cfg.ProxyAddress, status.Err())
		}
		logger.Info("SOCKS5 proxy verified", "address", cfg.ProxyAddress)
	}

	ipv6Supported := probe.HasIPv6()
	ipVersions, err := effectiveIPVersions(cfg.IPVersion, ipv6Supported)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if !ipv6Supported && cfg.IPVersion == config.IPVersionBoth {
		logger.Debug("IPv6 not supported on this host, probing IPv4 only")
	}

	logger.Info("starting check",
		"domains", len(domains),
		"mode", cfg.Mode,
		"protocol", cfg.Protocol,
		"ip_version", cfg.IPVersion,
		"batch", cfg.BatchSize,
	)

	executorOpts := []probe.ExecutorOption{probe.WithExecutorLogger(logger)}
	if cfg.ProxyAddress != "" {
		executorOpts = append(executorOpts, probe.WithProxy(cfg.ProxyAddress))
	}

	orchestrator := checker.NewOrchestrator(
		probe.NewResolver(),
		probe.NewProber(cfg.Timeout),
		probe.NewExecutor(cfg.Timeout, cfg.Retries, cfg.UserAgent, executorOpts...),
		cfg.EnabledProtocols(),
		ipVersions,
		cfg.TimeoutSeconds(),
		checker.WithOrchestratorLogger(logger),
	)

	runner := checker.NewRunner(orchestrator,
		checker.WithConcurrency(cfg.BatchSize),
		checker.WithVersion(getVersion()),
		checker.WithRunnerLogger(logger),
	)

	result, err := runner.Run(ctx, domains, cfg.Params(ipv6Supported))
	if err != nil {
		// A cancelled run still has a partial report worth showing.
		logger.Warn("run interrupted", "error", err)
	}

	return outputReport(cfg, noColor, result)
}

// outputReport outputs the report in the requested format.
func outputReport(cfg *config.Config, noColor bool, rep *model.Report) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		// Colors only make sense on a terminal.
		useColor := !noColor && cfg.ReportFile == ""
		writer = report.NewSimpleWriter(output, report.WithColor(useColor))
	}

	_, err := writer.Write(rep)
	return err
}
