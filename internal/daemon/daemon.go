package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"vidbridge/internal/api"
	"vidbridge/internal/config"
	"vidbridge/internal/deps"
	"vidbridge/internal/logging"
	"vidbridge/internal/preflight"
)

// Daemon owns the bridge service, the optional HTTP transport, and the
// single-instance lock for a runtime directory.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	service *api.Service

	lockPath string
	lock     *flock.Flock

	mu        sync.Mutex
	apiSrv    *apiServer
	startedAt time.Time

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	SocketPath   string
	LockFilePath string
	APIAddress   string
	StartedAt    time.Time
	Dependencies []deps.Status
}

// New constructs a daemon around the bridge service.
func New(cfg *config.Config, service *api.Service, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || service == nil {
		return nil, errors.New("daemon requires config and bridge service")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lockPath := cfg.LockPath()
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		service:  service,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock and starts the HTTP transport when configured.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}
	if err := os.MkdirAll(d.cfg.Paths.RuntimeDir, 0o755); err != nil {
		return fmt.Errorf("create runtime directory: %w", err)
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another vidbridge daemon instance is already running")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.ctx, d.cancel = context.WithCancel(ctx)
	srv, err := newAPIServer(d.cfg, d, d.logger)
	if err == nil {
		err = srv.start(d.ctx)
	}
	if err != nil {
		_ = d.lock.Unlock()
		d.cancel()
		d.ctx = nil
		d.cancel = nil
		return fmt.Errorf("start http transport: %w", err)
	}
	d.apiSrv = srv
	d.startedAt = time.Now()

	d.running.Store(true)
	d.logger.Info("vidbridge daemon started",
		logging.String(logging.FieldEventType, "daemon_start"),
		logging.String("lock", d.lockPath),
		logging.String("http", d.apiSrv.address()))
	return nil
}

// Stop shuts down the HTTP transport and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.apiSrv.stop()
	d.apiSrv = nil
	if err := d.lock.Unlock(); err != nil {
		logging.WarnWithContext(d.logger, "failed to release daemon lock", "daemon_lock_release_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "remove the lock file if the next start fails"))
	}
	d.ctx = nil
	d.startedAt = time.Time{}
	d.running.Store(false)
	d.logger.Info("vidbridge daemon stopped", logging.String(logging.FieldEventType, "daemon_stop"))
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	return nil
}

// Service returns the bridge service the transports dispatch to.
func (d *Daemon) Service() *api.Service {
	return d.service
}

// APIAddress returns the bound HTTP address, or "" when the transport is off.
func (d *Daemon) APIAddress() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.apiSrv.address()
}

// Status returns the current daemon status.
func (d *Daemon) Status(_ context.Context) Status {
	d.mu.Lock()
	startedAt := d.startedAt
	address := d.apiSrv.address()
	d.mu.Unlock()

	return Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		SocketPath:   d.cfg.SocketPath(),
		LockFilePath: d.lockPath,
		APIAddress:   address,
		StartedAt:    startedAt,
		Dependencies: preflight.CheckSystemDeps(d.cfg),
	}
}

// ToAPI converts the status to its wire representation.
func (s Status) ToAPI() api.DaemonStatus {
	return api.DaemonStatus{
		Running:      s.Running,
		PID:          s.PID,
		SocketPath:   s.SocketPath,
		LockFilePath: s.LockFilePath,
		APIBind:      s.APIAddress,
		StartedAt:    api.FormatTimestamp(s.StartedAt),
		Dependencies: api.FromDependencies(s.Dependencies),
	}
}
