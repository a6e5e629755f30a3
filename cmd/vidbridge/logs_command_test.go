package main

import (
	"os"
	"strings"
	"testing"
)

func TestLogsCommandFiltersByLevel(t *testing.T) {
	env := setupCLITestEnv(t, false)
	if err := os.MkdirAll(env.cfg.Paths.LogDir, 0o755); err != nil {
		t.Fatalf("mkdir log dir: %v", err)
	}
	content := strings.Join([]string{
		`{"ts":"2026-01-02T15:04:05Z","level":"info","msg":"vidbridge ready"}`,
		`{"ts":"2026-01-02T15:04:06Z","level":"warn","msg":"preflight check failed","component":"daemon"}`,
	}, "\n") + "\n"
	if err := os.WriteFile(env.cfg.LogPath(), []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	out, _, err := runCLI(t, []string{"logs", "--level", "warn"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, "preflight check failed")
	if strings.Contains(out, "vidbridge ready") {
		t.Fatalf("expected info record to be filtered, got %q", out)
	}

	out, _, err = runCLI(t, []string{"logs", "-n", "1"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("logs -n 1: %v", err)
	}
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("expected a single line, got %q", out)
	}
}
