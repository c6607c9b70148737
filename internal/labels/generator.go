package labels

import (
	"context"
	"log/slog"

	"ledger/internal/logging"
	"ledger/internal/shipment"
)

// Sink delivers a finished artifact and returns where it went.
type Sink interface {
	Deliver(ctx context.Context, artifact *Artifact) (string, error)
}

// Delivery is the result of a generation request.
type Delivery struct {
	Artifact *Artifact
	Location string
}

// Generator is the label generation entry point.
type Generator struct {
	assembler *Assembler
	sink      Sink
	logger    *slog.Logger
}

// NewGenerator returns a Generator. A nil sink leaves delivery to the caller,
// which then receives the artifact with an empty Location.
func NewGenerator(assembler *Assembler, sink Sink, logger *slog.Logger) *Generator {
	return &Generator{
		assembler: assembler,
		sink:      sink,
		logger:    logging.NewComponentLogger(logger, "labels"),
	}
}

// Generate rejects an empty selection, assembles the document and hands it to
// the sink exactly once.
func (g *Generator) Generate(ctx context.Context, records []shipment.Record) (*Delivery, error) {
	if len(records) == 0 {
		return nil, ErrEmptySelection
	}
	artifact, err := g.assembler.Assemble(ctx, records)
	if err != nil {
		return nil, err
	}
	delivery := &Delivery{Artifact: artifact}
	if g.sink == nil {
		return delivery, nil
	}
	location, err := g.sink.Deliver(ctx, artifact)
	if err != nil {
		logging.ErrorWithContext(logging.WithContext(ctx, g.logger), "label delivery failed", "label_delivery_failed",
			logging.String("filename", artifact.Filename),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the output directory or object storage settings"),
		)
		return nil, &SerializationError{Op: "deliver", Err: err}
	}
	delivery.Location = location
	return delivery, nil
}
