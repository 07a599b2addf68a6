package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/suryansh-23/rxterm/internal/clipboard"
)

func newDoctorCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Print environment diagnostics and the effective config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd.OutOrStdout(), state)
		},
	}
}

func runDoctor(w io.Writer, state *appState) error {
	info := readEnvInfo()
	fmt.Fprintf(w, "shell=%s\n", info.shell)
	fmt.Fprintf(w, "term=%s\n", info.term)
	fmt.Fprintf(w, "tty=%t\n", info.tty)
	fmt.Fprintf(w, "tmux=%t\n", info.tmux)
	fmt.Fprintf(w, "size=%dx%d\n", info.cols, info.rows)
	fmt.Fprintf(w, "color_profile=%s\n", profileName(info.profile))
	fmt.Fprintf(w, "config_path=%s\n", state.cfgPath)
	fmt.Fprintf(w, "config_found=%t\n", state.cfgFound)

	cfg := state.cfg
	fmt.Fprintf(w, "buffer_size_chars=%d\n", cfg.Display.BufferSizeChars)
	fmt.Fprintf(w, "replace_control_chars=%t\n", cfg.Display.ReplaceControlChars)
	fmt.Fprintf(w, "local_tx_echo=%t\n", cfg.Display.LocalTxEcho)
	fmt.Fprintf(w, "filter_pattern=%q\n", cfg.Filter.Pattern)
	fmt.Fprintf(w, "filter_apply_type=%s\n", cfg.Filter.ApplyType)
	fmt.Fprintf(w, "encoding=%s\n", cfg.Input.Encoding)
	fmt.Fprintf(w, "enter_key=%s\n", cfg.Tx.EnterKey)
	fmt.Fprintf(w, "send_mode=%s\n", cfg.Tx.SendMode)
	fmt.Fprintf(w, "backspace_removes_last=%t\n", cfg.Tx.BackspaceRemovesLast)
	fmt.Fprintf(w, "macros=%d\n", len(cfg.Macros))

	backend, err := clipboard.Resolve(cfg.Clipboard.Backend)
	if err != nil {
		fmt.Fprintf(w, "clipboard=unavailable (%v)\n", err)
	} else {
		fmt.Fprintf(w, "clipboard=%s\n", backend)
	}
	fmt.Fprintf(w, "debug=%t\n", cfg.Debug.Enabled)
	return nil
}
