package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"vidbridge/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options. The dialog
// backend defaults to "none" so tests never open a window.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.RuntimeDir = filepath.Join(base, "run")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Dialog.Backend = config.DialogBackendNone
	cfgVal.API.Bind = "127.0.0.1:0"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAPIBind overrides the HTTP bind address. An empty value disables the
// HTTP transport.
func WithAPIBind(bind string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.API.Bind = bind
	}
}

// WithAPIToken sets the bearer token required by the HTTP transport.
func WithAPIToken(token string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.API.Token = token
	}
}

// WithFFprobeCommand overrides the ffprobe command line.
func WithFFprobeCommand(command string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.FFprobe.Command = command
	}
}

// WithFFprobePath writes a stub ffprobe into dir and configures it as
// ffprobe.path.
func WithFFprobePath(dir, stdout string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.FFprobe.Path = WriteStubFFprobe(b.t, dir, stdout, "", 0)
	}
}

// WithStubFFprobe installs a fake ffprobe that prints stdout and exits 0, and
// points the config at it.
func WithStubFFprobe(stdout string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.FFprobe.Command = WriteStubFFprobe(b.t, filepath.Join(b.baseDir, "bin"), stdout, "", 0)
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, ffprobe is stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffprobe"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.RuntimeDir)
}
