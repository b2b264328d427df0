package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set at build time via -ldflags; empty values fall back to the build
// info embedded in the binary.
var (
	version = ""
	commit  = ""
	date    = ""
)

// getVersion returns the version string recorded in reports and shown by
// --version: the ldflags value when set, otherwise the module version
// from build info, otherwise "(devel)".
func getVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

// buildMetadata returns the commit hash (shortened) and build date,
// reading the binary's VCS settings for whichever ldflags left unset.
func buildMetadata() (revision, built string) {
	revision, built = commit, date

	if revision == "" || built == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range info.Settings {
				switch setting.Key {
				case "vcs.revision":
					if revision == "" {
						revision = setting.Value
					}
				case "vcs.time":
					if built == "" {
						built = setting.Value
					}
				}
			}
		}
	}

	if len(revision) > 7 {
		revision = revision[:7]
	}
	if revision == "" {
		revision = "unknown"
	}
	if built == "" {
		built = "unknown"
	}
	return revision, built
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of censorcheck.`,
		Run: func(cmd *cobra.Command, _ []string) {
			revision, built := buildMetadata()
			fmt.Fprintf(cmd.OutOrStdout(), "censorcheck %s (commit %s, built %s)\n",
				getVersion(), revision, built)
		},
	}
}
