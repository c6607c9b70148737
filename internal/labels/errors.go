package labels

import (
	"fmt"

	"ledger/internal/services"
)

// ErrEmptySelection rejects a generation request that selects no shipments.
var ErrEmptySelection = fmt.Errorf("%w: no shipments selected for label generation", services.ErrValidation)

// SerializationError reports that the document could not be drawn, encoded or
// delivered. Nothing is delivered when it is returned.
type SerializationError struct {
	Op  string
	Err error
}

func (e *SerializationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("label document %s: %v", e.Op, e.Err)
}

func (e *SerializationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
