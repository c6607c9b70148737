package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ledger/internal/fileutil"
	"ledger/internal/labels"
	"ledger/internal/logging"
	"ledger/internal/services"
	"ledger/internal/textutil"
)

// Local writes artifacts into a directory. A document generated twice on the
// same day replaces the earlier file.
type Local struct {
	dir    string
	logger *slog.Logger
}

// NewLocal returns a sink writing into dir.
func NewLocal(dir string, logger *slog.Logger) *Local {
	return &Local{dir: dir, logger: logging.NewComponentLogger(logger, "delivery")}
}

// Deliver writes the artifact atomically, verifies it and returns its path.
func (l *Local) Deliver(ctx context.Context, artifact *labels.Artifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := textutil.SanitizeFileName(artifact.Filename)
	if name == "" {
		return "", services.Wrap(services.ErrValidation, "delivery", "local", "artifact has no filename", nil)
	}
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(l.dir, name)
	if err := fileutil.WriteFileAtomic(path, artifact.Data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := fileutil.VerifyFile(path, artifact.Data); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("verify %s: %w", name, err)
	}
	logging.WithContext(ctx, l.logger).Info("label document saved",
		logging.String("path", path),
		logging.Int("pages", artifact.Pages),
		logging.Int64("bytes", artifact.Size()),
	)
	return path, nil
}
