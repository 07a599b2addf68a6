package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/suryansh-23/rxterm/internal/config"
)

func newMacrosCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "macros",
		Short: "List configured macros and the bytes they send",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listMacros(cmd.OutOrStdout(), state.cfg)
		},
	}
}

func listMacros(w io.Writer, cfg config.Config) error {
	if len(cfg.Macros) == 0 {
		fmt.Fprintln(w, "no macros configured")
		return nil
	}
	for i, m := range cfg.Macros {
		seq, err := m.Bytes()
		if err != nil {
			return fmt.Errorf("macro %q: %w", m.Name, err)
		}
		fmt.Fprintf(w, "C-a %d  %-12s %s  (% x)\n", i+1, m.Name, strconv.Quote(string(seq)), seq)
	}
	return nil
}
