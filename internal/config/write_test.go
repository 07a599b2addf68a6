package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/suryansh-23/rxterm/internal/tx"
)

func TestWriteConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Filter.Pattern = `\bERR\b`
	cfg.Macros = []tx.Macro{{Name: "ping", Sequence: `PING\r`}}
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := Write(path, cfg); err != nil {
		t.Fatalf("write config: %v", err)
	}
	got, found, err := Load(path)
	if err != nil || !found {
		t.Fatalf("load: found=%t err=%v", found, err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
}

func TestWriteRejectsInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Version = 2
	if err := Write(filepath.Join(t.TempDir(), "config.yaml"), cfg); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestWriteFileModeAndHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := Write(path, DefaultConfig()); err != nil {
		t.Fatalf("write config: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("mode = %o", perm)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(data), "# rxterm configuration") {
		t.Fatalf("missing header: %q", data)
	}
	if !strings.Contains(string(data), "\n  buffer_size_chars: 10000\n") {
		t.Fatalf("unexpected layout:\n%s", data)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil || len(entries) != 1 {
		t.Fatalf("leftover temp files: %v %v", entries, err)
	}
}
