package barcode

import (
	"fmt"
	"image"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// ParseLevel maps an L/M/Q/H error correction name to its go-qrcode level.
func ParseLevel(name string) (qrcode.RecoveryLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "L":
		return qrcode.Low, nil
	case "M", "":
		return qrcode.Medium, nil
	case "Q":
		return qrcode.High, nil
	case "H":
		return qrcode.Highest, nil
	default:
		return 0, fmt.Errorf("unknown qr error correction level %q", name)
	}
}

// QR renders QR codes at a fixed error correction level and module scale.
type QR struct {
	level qrcode.RecoveryLevel
	scale int
}

// NewQR builds a QR synthesizer. scale is the pixel width of one module.
func NewQR(level string, scale int) (*QR, error) {
	parsed, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if scale <= 0 {
		return nil, fmt.Errorf("qr scale must be positive, got %d", scale)
	}
	return &QR{level: parsed, scale: scale}, nil
}

// Synthesize renders content. Failures are *EncodingError.
func (q *QR) Synthesize(content string) (image.Image, error) {
	code, err := qrcode.New(content, q.level)
	if err != nil {
		return nil, &EncodingError{Symbology: SymbologyQR, Payload: content, Err: err}
	}
	// A negative size tells go-qrcode to use scale pixels per module.
	return code.Image(-q.scale), nil
}
