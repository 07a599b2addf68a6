package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRunCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Display data received on stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStdin(cmd.Context(), state)
		},
	}
}

func newReplayCmd(state *appState) *cobra.Command {
	var chunk int
	cmd := &cobra.Command{
		Use:   "replay FILE",
		Short: "Display a capture file as if it were received",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if chunk <= 0 {
				return errors.New("--chunk must be > 0")
			}
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open capture: %w", err)
			}
			defer f.Close()
			return stream(cmd.Context(), state, f, os.Stdout, chunk)
		},
	}
	cmd.Flags().IntVar(&chunk, "chunk", defaultReadSize, "bytes per received chunk")
	return cmd
}
