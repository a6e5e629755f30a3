package daemonrun

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vidbridge/internal/api"
	"vidbridge/internal/config"
	"vidbridge/internal/daemon"
	"vidbridge/internal/dialog"
	"vidbridge/internal/ipc"
	"vidbridge/internal/logging"
	"vidbridge/internal/media/ffprobe"
	"vidbridge/internal/preflight"
)

// Options configures daemon process runtime behavior.
type Options struct {
	LogLevel    string
	Development bool
}

// NewProber builds the metadata extractor described by cfg.FFprobe. A
// configured path is launched as-is; otherwise the command line is split.
func NewProber(cfg *config.Config, logger *slog.Logger) (*ffprobe.Prober, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	opts := []ffprobe.Option{
		ffprobe.WithVerbosity(cfg.FFprobe.Verbosity),
		ffprobe.WithTimeout(time.Duration(cfg.FFprobe.TimeoutSeconds) * time.Second),
		ffprobe.WithLogger(logging.NewComponentLogger(logger, "ffprobe")),
	}
	var (
		prober *ffprobe.Prober
		err    error
	)
	if cfg.FFprobe.Path != "" {
		prober, err = ffprobe.NewBinaryProber(cfg.FFprobe.Path, opts...)
	} else {
		prober, err = ffprobe.NewProber(cfg.FFprobe.Command, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("configure ffprobe: %w", err)
	}
	return prober, nil
}

// NewService builds the bridge service from configuration. The CLI uses it
// directly for in-process calls; Run wraps it in a daemon.
func NewService(cfg *config.Config, logger *slog.Logger) (*api.Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	prober, err := NewProber(cfg, logger)
	if err != nil {
		return nil, err
	}
	selector, err := dialog.NewSelectorFromConfig(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("configure dialogs: %w", err)
	}
	return api.NewService(prober, selector, logger), nil
}

// Run starts the vidbridge daemon and blocks until SIGINT/SIGTERM or cmdCtx ends.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	level := cfg.Logging.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	logger, err := logging.New(logging.Options{
		Level:       level,
		Format:      cfg.Logging.Format,
		FilePath:    cfg.LogPath(),
		Development: opts.Development,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	logPreflight(signalCtx, logger, cfg)

	service, err := NewService(cfg, logger)
	if err != nil {
		return err
	}

	d, err := daemon.New(cfg, service, logger)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	// Take the lock before touching the socket so a second instance cannot
	// unlink the first one's socket.
	if err := d.Start(signalCtx); err != nil {
		return fmt.Errorf("start daemon: %w", err)
	}

	ipcServer, err := ipc.NewServer(signalCtx, cfg.SocketPath(), d, logger)
	if err != nil {
		return fmt.Errorf("start IPC server: %w", err)
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	logger.Info("vidbridge ready",
		logging.String(logging.FieldEventType, "bridge_ready"),
		logging.String("socket", cfg.SocketPath()),
		logging.String("http", d.APIAddress()),
		logging.Int("pid", os.Getpid()))

	<-signalCtx.Done()
	logger.Info("vidbridge daemon shutting down")
	return nil
}

func logPreflight(ctx context.Context, logger *slog.Logger, cfg *config.Config) {
	for _, result := range preflight.RunAll(ctx, cfg) {
		if result.Passed {
			logger.Debug("preflight check passed",
				logging.String("check", result.Name),
				logging.String("detail", result.Detail))
			continue
		}
		logging.WarnWithContext(logger, "preflight check failed", "preflight_failed",
			logging.String("check", result.Name),
			logging.String("detail", result.Detail),
			logging.String(logging.FieldErrorHint, "run `vidbridge status` for details"),
			logging.String(logging.FieldImpact, "affected bridge calls will return errors"))
	}
}
