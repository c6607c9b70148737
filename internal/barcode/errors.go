package barcode

import "fmt"

// Symbology names reported in EncodingError.
const (
	SymbologyCode128 = "code128"
	SymbologyQR      = "qr"
)

// EncodingError reports that a symbol could not be rendered for a payload.
type EncodingError struct {
	Symbology string
	Payload   string
	Err       error
}

func (e *EncodingError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("encode %s %q: %v", e.Symbology, e.Payload, e.Err)
}

func (e *EncodingError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
