package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vernette/censorcheck/internal/config"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the built-in domain lists",
		Long: `List prints the domains that "check" probes for the selected mode,
one per line. The output format is accepted by "check --file", so a list
can be dumped, edited, and fed back in.`,
		Args: cobra.NoArgs,
		RunE: runListCmd,
	}

	cmd.Flags().StringP("mode", "m", string(config.ModeBoth),
		"Built-in domain list: dpi, geoblock, or both")

	return cmd
}

// runListCmd executes the list command.
func runListCmd(cmd *cobra.Command, _ []string) error {
	mode, err := cmd.Flags().GetString("mode")
	if err != nil {
		return err
	}

	switch config.Mode(mode) {
	case config.ModeDPI, config.ModeGeoblock, config.ModeBoth:
	default:
		return config.ErrInvalidMode
	}

	for _, domain := range config.BuiltinDomains(config.Mode(mode)) {
		fmt.Fprintln(cmd.OutOrStdout(), domain)
	}

	return nil
}
