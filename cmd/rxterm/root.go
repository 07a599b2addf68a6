package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/suryansh-23/rxterm/internal/config"
	"github.com/suryansh-23/rxterm/internal/debug"
	"github.com/suryansh-23/rxterm/internal/types"
)

type overrideFlags struct {
	filter        string
	applyBuffered bool
	bufferSize    int
	symbols       bool
	noSymbols     bool
	encoding      string
	debug         bool
}

func newRootCmd(state *appState) *cobra.Command {
	var (
		cfgPath     string
		overrides   overrideFlags
		noInitHints bool
	)

	rootCmd := &cobra.Command{
		Use:          "rxterm",
		Short:        "Stream, colour and filter terminal output from a device",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			resolvedPath, err := resolveConfigPath(cfgPath)
			if err != nil {
				return err
			}
			cfg, found, err := config.Load(resolvedPath)
			if err != nil {
				return err
			}
			if err := applyOverrides(&cfg, cmd.Flags(), overrides); err != nil {
				return err
			}
			state.cfg = cfg
			state.cfgFound = found
			state.logger = debug.New(cfg.Debug.Enabled)
			state.cfgPath = resolvedPath
			if !found && !noInitHints && cmd.Name() != "init" {
				fmt.Fprintln(os.Stderr, "rxterm: no config found; run `rxterm init`")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStdin(cmd.Context(), state)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgPath, "config", "", "config file path")
	flags.StringVar(&overrides.filter, "filter", "", "only show lines matching this pattern")
	flags.BoolVar(&overrides.applyBuffered, "apply-buffered", false, "re-run filter changes over buffered data")
	flags.IntVar(&overrides.bufferSize, "buffer-size", 0, "characters kept for display and replay")
	flags.BoolVar(&overrides.symbols, "symbols", false, "show control characters as symbols")
	flags.BoolVar(&overrides.noSymbols, "no-symbols", false, "drop control characters silently")
	flags.StringVar(&overrides.encoding, "encoding", "", "received byte encoding (utf-8, iso-8859-1, cp437, ascii)")
	flags.BoolVar(&overrides.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&noInitHints, "no-init-hints", false, "suppress init guidance")
	rootCmd.MarkFlagsMutuallyExclusive("symbols", "no-symbols")

	rootCmd.AddCommand(newRunCmd(state))
	rootCmd.AddCommand(newReplayCmd(state))
	rootCmd.AddCommand(newExecCmd(state))
	rootCmd.AddCommand(newInitCmd(&cfgPath))
	rootCmd.AddCommand(newDoctorCmd(state))
	rootCmd.AddCommand(newMacrosCmd(state))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// applyOverrides copies explicitly set flags over cfg and re-validates.
func applyOverrides(cfg *config.Config, flags *pflag.FlagSet, o overrideFlags) error {
	if flags.Changed("filter") {
		cfg.Filter.Pattern = o.filter
	}
	if flags.Changed("apply-buffered") {
		cfg.Filter.ApplyType = types.ApplyToNewOnly
		if o.applyBuffered {
			cfg.Filter.ApplyType = types.ApplyToBufferedAndNew
		}
	}
	if flags.Changed("buffer-size") {
		cfg.Display.BufferSizeChars = o.bufferSize
	}
	if flags.Changed("symbols") {
		cfg.Display.ReplaceControlChars = o.symbols
	}
	if flags.Changed("no-symbols") {
		cfg.Display.ReplaceControlChars = !o.noSymbols
	}
	if flags.Changed("encoding") {
		cfg.Input.Encoding = types.Encoding(o.encoding)
	}
	if o.debug {
		cfg.Debug.Enabled = true
	}
	return cfg.Validate()
}
