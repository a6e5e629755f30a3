package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"vidbridge/internal/api"
	"vidbridge/internal/config"
	"vidbridge/internal/daemon"
	"vidbridge/internal/dialog"
	"vidbridge/internal/ipc"
	"vidbridge/internal/logging"
	"vidbridge/internal/media/ffprobe"
	"vidbridge/internal/testsupport"
)

// pickedHost answers every dialog with a fixed path.
type pickedHost struct{ path string }

func (h pickedHost) PickFile(_ context.Context, _ dialog.FileOptions, done dialog.Completion) { done(h.path, true, nil) }

func (h pickedHost) PickFolder(_ context.Context, _ dialog.FolderOptions, done dialog.Completion) { done(h.path, true, nil) }

type cliTestEnv struct {
	cfg        *config.Config
	daemon     *daemon.Daemon
	server     *ipc.Server
	socketPath string
	configPath string
	baseDir    string
}

// setupCLITestEnv writes a config pointing at a stub ffprobe with the "none"
// dialog backend and returns its path. When withDaemon is set it also starts
// a daemon whose dialogs always pick "/picked/by/daemon".
func setupCLITestEnv(t *testing.T, withDaemon bool) *cliTestEnv {
	t.Helper()

	t.Setenv("FFPROBE_PATH", "")
	t.Setenv("VIDBRIDGE_API_TOKEN", "")
	cfg := testsupport.NewConfig(t,
		testsupport.WithStubFFprobe(testsupport.SampleProbeJSON),
		testsupport.WithAPIBind(""))
	base := testsupport.BaseDir(cfg)

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	env := &cliTestEnv{
		cfg:        cfg,
		socketPath: cfg.SocketPath(),
		configPath: configPath,
		baseDir:    base,
	}
	if !withDaemon {
		return env
	}

	logger := logging.NewNop()
	prober, err := ffprobe.NewProber(cfg.FFprobe.Command)
	if err != nil {
		t.Fatalf("NewProber: %v", err)
	}
	selector := dialog.NewSelector(pickedHost{path: "/picked/by/daemon"}, "", "", nil, logger)
	d, err := daemon.New(cfg, api.NewService(prober, selector, logger), logger)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := d.Start(ctx); err != nil {
		cancel()
		t.Fatalf("daemon start: %v", err)
	}
	srv, err := ipc.NewServer(ctx, env.socketPath, d, logger)
	if err != nil {
		cancel()
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()
	t.Cleanup(func() {
		cancel()
		srv.Close()
		d.Close()
	})

	env.daemon = d
	env.server = srv
	return env
}

func runCLI(t *testing.T, args []string, socket, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--socket", socket}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
