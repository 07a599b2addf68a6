package main

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/suryansh-23/rxterm/internal/ui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.LogoStatic(currentBadge()))
			fmt.Fprintln(out)
			ver, rev, built := resolveVersion()
			fmt.Fprintf(out, "rxterm %s\n", ver)
			if rev != "" && rev != "unknown" {
				fmt.Fprintf(out, "commit %s\n", rev)
			}
			if built != "" && built != "unknown" {
				fmt.Fprintf(out, "built %s\n", built)
			}
		},
	}
}

func resolveVersion() (string, string, string) {
	ver := strings.TrimSpace(version)
	rev := strings.TrimSpace(commit)
	built := strings.TrimSpace(date)
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return orDefault(ver, "dev"), rev, built
	}
	if (ver == "" || ver == "dev") && info.Main.Version != "" && info.Main.Version != "(devel)" {
		ver = info.Main.Version
	}
	for _, setting := range info.Settings {
		switch {
		case setting.Key == "vcs.revision" && (rev == "" || rev == "unknown"):
			rev = setting.Value
		case setting.Key == "vcs.time" && (built == "" || built == "unknown"):
			built = setting.Value
		}
	}
	return orDefault(ver, "dev"), rev, built
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
