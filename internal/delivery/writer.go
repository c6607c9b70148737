package delivery

import (
	"context"
	"fmt"
	"io"

	"ledger/internal/labels"
)

// Writer streams artifacts to an io.Writer such as stdout.
type Writer struct {
	w    io.Writer
	name string
}

// NewWriter returns a sink writing to w. name is reported as the location.
func NewWriter(w io.Writer, name string) *Writer {
	return &Writer{w: w, name: name}
}

func (s *Writer) Deliver(ctx context.Context, artifact *labels.Artifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	n, err := s.w.Write(artifact.Data)
	if err != nil {
		return "", err
	}
	if n != len(artifact.Data) {
		return "", fmt.Errorf("short write: %d of %d bytes", n, len(artifact.Data))
	}
	return s.name, nil
}
