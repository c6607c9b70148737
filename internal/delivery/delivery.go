package delivery

import (
	"fmt"
	"log/slog"

	"ledger/internal/config"
	"ledger/internal/labels"
	"ledger/internal/services"
)

// New returns the sink selected by storage.backend.
func New(cfg *config.Config, logger *slog.Logger) (labels.Sink, error) {
	switch cfg.Storage.Backend {
	case config.StorageLocal, "":
		return NewLocal(cfg.Paths.OutputDir, logger), nil
	case config.StorageMinio:
		return NewMinio(cfg.Storage.Minio, cfg.Label.ProductPrefix, logger)
	default:
		return nil, services.Wrap(services.ErrConfiguration, "delivery", "select backend", fmt.Sprintf("unknown storage backend %q", cfg.Storage.Backend), nil)
	}
}
