package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gofrs/flock"

	"ledger/internal/api"
	"ledger/internal/config"
	"ledger/internal/logging"
	"ledger/internal/store"
)

// Daemon serves the HTTP API and enforces single-instance execution.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *store.Store
	service *api.ShipmentService
	server  *apiServer

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	Address      string
	DatabasePath string
	LockFilePath string
	Storage      string
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, st *store.Store, svc *api.ShipmentService, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || st == nil || svc == nil {
		return nil, errors.New("daemon requires config, store, and shipment service")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	d := &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    st,
		service:  svc,
		lockPath: cfg.LockPath(),
		lock:     flock.New(cfg.LockPath()),
	}
	d.server = newAPIServer(cfg.Paths.APIBind, newRouter(svc, d.health, logger), logger)
	return d, nil
}

// Start acquires the daemon lock and begins serving the API.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another ledgerd instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := d.server.start(runCtx); err != nil {
		cancel()
		_ = d.lock.Unlock()
		return err
	}
	d.cancel = cancel
	d.running.Store(true)
	d.logger.Info("ledger daemon started",
		logging.String("lock", d.lockPath),
		logging.String("address", d.server.addr()),
		logging.String("storage", d.cfg.Storage.Backend),
	)
	return nil
}

// Stop shuts the API server down and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.server.stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("ledger daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Status reports runtime information.
func (d *Daemon) Status(context.Context) Status {
	return Status{
		Running:      d.running.Load(),
		Address:      d.server.addr(),
		DatabasePath: d.store.Path(),
		LockFilePath: d.lockPath,
		Storage:      d.cfg.Storage.Backend,
	}
}

// Handler exposes the API router, mainly for tests.
func (d *Daemon) Handler() http.Handler {
	return d.server.handler
}

func (d *Daemon) health(ctx context.Context) (api.HealthResponse, error) {
	resp := api.HealthResponse{Status: "ok", Database: "ok", Storage: d.cfg.Storage.Backend}
	if err := d.store.Ping(ctx); err != nil {
		resp.Status = "degraded"
		resp.Database = err.Error()
		return resp, err
	}
	return resp, nil
}
