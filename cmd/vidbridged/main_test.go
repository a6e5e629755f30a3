package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"vidbridge/internal/testsupport"
)

func writeConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := toml.Marshal(v)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "vidbridged.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestRunStopsWhenContextEnds(t *testing.T) {
	t.Setenv("FFPROBE_PATH", "")
	t.Setenv("VIDBRIDGE_API_TOKEN", "")
	cfg := testsupport.NewConfig(t, testsupport.WithAPIBind(""), testsupport.WithStubFFprobe(testsupport.SampleProbeJSON))
	path := writeConfig(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := newCommand()
	cmd.SetArgs([]string{"--config", path, "--log-level", "error"})
	if err := cmd.ExecuteContext(ctx); err != nil {
		t.Fatalf("expected clean shutdown, got %v", err)
	}
	if _, err := os.Stat(cfg.SocketPath()); !os.IsNotExist(err) {
		t.Fatalf("expected socket to be removed on shutdown, stat err=%v", err)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[ffprobe]\nverbosity = \"loud\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cmd := newCommand()
	cmd.SetArgs([]string{"--config", path})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("expected load config error, got %v", err)
	}
}
