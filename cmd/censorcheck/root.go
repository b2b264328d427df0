package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for censorcheck.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "censorcheck",
		Short: "Detect DPI censorship and geographic blocking",
		Long: `Censorcheck probes domains over HTTP and HTTPS (optionally per IP family
and through a SOCKS5 proxy) and classifies each probe as available,
redirected, access denied, or blocked.

Blocked outcomes on an otherwise working network point at deep packet
inspection; denied or redirected outcomes for region-restricted services
point at geo-blocking.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
