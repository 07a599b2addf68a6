package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/suryansh-23/rxterm/internal/config"
	"github.com/suryansh-23/rxterm/internal/filter"
	"github.com/suryansh-23/rxterm/internal/types"
	"github.com/suryansh-23/rxterm/internal/ui"
)

func newInitCmd(cfgPath *string) *cobra.Command {
	var useDefaults bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Run the first-time setup wizard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(*cfgPath)
			if err != nil {
				return err
			}

			cfg := config.DefaultConfig()
			if useDefaults {
				if exists(path) {
					fmt.Printf("Config exists, overwriting: %s\n", path)
				}
				return writeConfig(path, cfg)
			}

			answers := newInitAnswers(cfg)
			overwrite := false
			envNote := huh.NewNote().
				Title("Environment").
				Description(envSummary()).
				Next(true)

			form := huh.NewForm(
				huh.NewGroup(envNote),
				huh.NewGroup(
					huh.NewConfirm().Title("Config exists. Overwrite?").Value(&overwrite),
				).WithHideFunc(func() bool { return !exists(path) }),
				huh.NewGroup(
					huh.NewSelect[string]().Title("Received data encoding").Value(&answers.encoding).Options(
						huh.NewOption("UTF-8 (default)", string(types.EncodingUTF8)),
						huh.NewOption("ISO-8859-1", string(types.EncodingLatin1)),
						huh.NewOption("Code page 437", string(types.EncodingCP437)),
						huh.NewOption("ASCII", string(types.EncodingASCII)),
					),
				),
				huh.NewGroup(
					huh.NewInput().Title("Characters kept on screen").Value(&answers.bufferSize).Validate(validatePositive),
					huh.NewConfirm().Title("Show control characters as symbols?").Value(&answers.symbols),
				),
				huh.NewGroup(
					huh.NewInput().Title("Filter pattern (empty shows everything)").Value(&answers.pattern).Validate(validatePattern),
					huh.NewSelect[string]().Title("When the filter changes").Value(&answers.applyType).Options(
						huh.NewOption("Apply to new data only", string(types.ApplyToNewOnly)),
						huh.NewOption("Re-run over buffered data", string(types.ApplyToBufferedAndNew)),
					),
				),
				huh.NewGroup(
					huh.NewSelect[string]().Title("Enter key sends").Value(&answers.enterKey).Options(
						huh.NewOption("LF (default)", string(types.EnterLF)),
						huh.NewOption("CR", string(types.EnterCR)),
						huh.NewOption("CR LF", string(types.EnterCRLF)),
					),
					huh.NewSelect[string]().Title("Send typed keys").Value(&answers.sendMode).Options(
						huh.NewOption("Immediately", string(types.SendImmediately)),
						huh.NewOption("On Enter", string(types.SendOnEnter)),
					),
				),
				huh.NewGroup(
					huh.NewConfirm().Title("Backspace edits the unsent line?").Value(&answers.backspace),
				).WithHideFunc(func() bool { return answers.sendMode != string(types.SendOnEnter) }),
				huh.NewGroup(
					huh.NewConfirm().Title("Echo sent text on screen?").Value(&answers.localEcho),
				),
			).WithTheme(ui.Theme())

			if err := runAnimatedForm(form); err != nil {
				return err
			}
			if exists(path) && !overwrite {
				return errors.New("init cancelled")
			}
			if err := answers.apply(&cfg); err != nil {
				return err
			}
			return writeConfig(path, cfg)
		},
	}
	cmd.Flags().BoolVar(&useDefaults, "default", false, "write default config without prompts")
	return cmd
}

type initAnswers struct {
	encoding   string
	bufferSize string
	symbols    bool
	pattern    string
	applyType  string
	enterKey   string
	sendMode   string
	backspace  bool
	localEcho  bool
}

func newInitAnswers(cfg config.Config) *initAnswers {
	return &initAnswers{
		encoding:   string(cfg.Input.Encoding),
		bufferSize: strconv.Itoa(cfg.Display.BufferSizeChars),
		symbols:    cfg.Display.ReplaceControlChars,
		pattern:    cfg.Filter.Pattern,
		applyType:  string(cfg.Filter.ApplyType),
		enterKey:   string(cfg.Tx.EnterKey),
		sendMode:   string(cfg.Tx.SendMode),
		backspace:  cfg.Tx.BackspaceRemovesLast,
		localEcho:  cfg.Display.LocalTxEcho,
	}
}

func (a *initAnswers) apply(cfg *config.Config) error {
	size, err := strconv.Atoi(strings.TrimSpace(a.bufferSize))
	if err != nil {
		return fmt.Errorf("parse buffer size: %w", err)
	}
	cfg.Input.Encoding = types.Encoding(a.encoding)
	cfg.Display.BufferSizeChars = size
	cfg.Display.ReplaceControlChars = a.symbols
	cfg.Display.LocalTxEcho = a.localEcho
	cfg.Filter.Pattern = a.pattern
	cfg.Filter.ApplyType = types.FilterApplyType(a.applyType)
	cfg.Tx.EnterKey = types.EnterKeyBehaviour(a.enterKey)
	cfg.Tx.SendMode = types.TxSendMode(a.sendMode)
	cfg.Tx.BackspaceRemovesLast = a.backspace
	return cfg.Validate()
}

func validatePositive(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return errors.New("enter a positive integer")
	}
	return nil
}

func validatePattern(v string) error {
	_, err := filter.New(v)
	return err
}

func writeConfig(path string, cfg config.Config) error {
	if err := config.Write(path, cfg); err != nil {
		return err
	}
	fmt.Printf("Wrote config to %s\n", path)
	return nil
}
