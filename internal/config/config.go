package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/suryansh-23/rxterm/internal/clipboard"
	"github.com/suryansh-23/rxterm/internal/filter"
	"github.com/suryansh-23/rxterm/internal/tx"
	"github.com/suryansh-23/rxterm/internal/types"
)

const (
	DefaultConfigVersion   = 1
	DefaultBufferSizeChars = 10000
	defaultConfigRelPath   = "rxterm/config.yaml"

	// MaxMacros is the number of macros reachable with Ctrl-A 1..9.
	MaxMacros = 9
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the top-level configuration schema.
type Config struct {
	Version int `yaml:"version"`

	Display   Display    `yaml:"display"`
	Filter    Filter     `yaml:"filter"`
	Input     Input      `yaml:"input"`
	Tx        Tx         `yaml:"tx"`
	Macros    []tx.Macro `yaml:"macros"`
	Clipboard Clipboard  `yaml:"clipboard"`

	Debug Debug `yaml:"debug"`
}

// Display controls how received data is kept and shown.
type Display struct {
	BufferSizeChars     int  `yaml:"buffer_size_chars"`
	ReplaceControlChars bool `yaml:"replace_control_chars"`
	LocalTxEcho         bool `yaml:"local_tx_echo"`
}

// Filter selects which received lines are shown.
type Filter struct {
	Pattern   string                `yaml:"pattern"`
	ApplyType types.FilterApplyType `yaml:"apply_type"`
}

// Input configures decoding of received bytes.
type Input struct {
	Encoding types.Encoding `yaml:"encoding"`
}

// Tx configures key handling.
type Tx struct {
	EnterKey             types.EnterKeyBehaviour `yaml:"enter_key"`
	SendMode             types.TxSendMode        `yaml:"send_mode"`
	BackspaceRemovesLast bool                    `yaml:"backspace_removes_last"`
}

// Clipboard configures the copy command behind Ctrl-A y.
type Clipboard struct {
	Backend string `yaml:"backend"`
}

// Debug controls diagnostic logging.
type Debug struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultConfig returns the canonical default configuration.
func DefaultConfig() Config {
	return Config{
		Version: DefaultConfigVersion,
		Display: Display{
			BufferSizeChars:     DefaultBufferSizeChars,
			ReplaceControlChars: true,
			LocalTxEcho:         false,
		},
		Filter: Filter{
			Pattern:   "",
			ApplyType: types.ApplyToNewOnly,
		},
		Input: Input{
			Encoding: types.EncodingUTF8,
		},
		Tx: Tx{
			EnterKey:             types.EnterLF,
			SendMode:             types.SendImmediately,
			BackspaceRemovesLast: true,
		},
		Clipboard: Clipboard{
			Backend: string(clipboard.BackendAuto),
		},
		Debug: Debug{
			Enabled: false,
		},
	}
}

// DefaultPath returns the default config path.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, defaultConfigRelPath), nil
	}
	return filepath.Join(home, ".config", defaultConfigRelPath), nil
}

// Parse parses YAML config content, applying defaults.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads config from disk, applying defaults when missing.
// The boolean return indicates whether a config file was found.
func Load(pathOverride string) (Config, bool, error) {
	path := strings.TrimSpace(pathOverride)
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return Config{}, false, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), false, nil
		}
		return Config{}, false, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, true, err
	}
	return cfg, true, nil
}

// Validate enforces the supported configuration schema.
func (c Config) Validate() error {
	var errs []string
	if c.Version != DefaultConfigVersion {
		errs = append(errs, fmt.Sprintf("version must be %d", DefaultConfigVersion))
	}
	if c.Display.BufferSizeChars <= 0 {
		errs = append(errs, "display.buffer_size_chars must be > 0")
	}
	if _, err := filter.New(c.Filter.Pattern); err != nil {
		errs = append(errs, fmt.Sprintf("filter.pattern: %v", err))
	}
	if !types.IsValidApplyType(c.Filter.ApplyType) {
		errs = append(errs, "filter.apply_type must be new_only or buffered_and_new")
	}
	if !types.IsValidEncoding(c.Input.Encoding) {
		errs = append(errs, fmt.Sprintf("input.encoding must be one of: %s", strings.Join(encodingNames(), ", ")))
	}
	if !types.IsValidEnterKey(c.Tx.EnterKey) {
		errs = append(errs, "tx.enter_key must be cr|lf|crlf")
	}
	if !types.IsValidSendMode(c.Tx.SendMode) {
		errs = append(errs, "tx.send_mode must be immediate or on_enter")
	}
	if len(c.Macros) > MaxMacros {
		errs = append(errs, fmt.Sprintf("macros: at most %d entries", MaxMacros))
	}
	for i, m := range c.Macros {
		if strings.TrimSpace(m.Name) == "" {
			errs = append(errs, fmt.Sprintf("macros[%d].name is required", i))
		}
		if _, err := m.Bytes(); err != nil {
			errs = append(errs, fmt.Sprintf("macros[%d].sequence: %v", i, err))
		}
	}
	if !clipboard.IsValid(c.Clipboard.Backend) {
		errs = append(errs, "clipboard.backend must be one of: auto, pbcopy, wl-copy, xclip, xsel, none")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}

func encodingNames() []string {
	out := make([]string, 0, len(types.Encodings))
	for _, e := range types.Encodings {
		out = append(out, string(e))
	}
	return out
}
