package barcode

import "strings"

const (
	// DefaultPrefix is the fixed numeric prefix of every label payload.
	DefaultPrefix = "6820253043"
	suffixLength  = 3
)

// Deriver turns a raw shipment identifier into a barcode payload.
type Deriver struct {
	Prefix   string
	Fallback string
}

// NewDeriver returns a Deriver whose fallback is all zeros and as long as a
// normal payload for prefix.
func NewDeriver(prefix string) Deriver {
	return Deriver{
		Prefix:   prefix,
		Fallback: strings.Repeat("0", len([]rune(prefix))+suffixLength),
	}
}

// Derive appends the last three characters of raw (all of raw when shorter)
// to the prefix and trims the result. An empty source yields the fallback.
func (d Deriver) Derive(raw string) string {
	runes := []rune(raw)
	if len(runes) > suffixLength {
		runes = runes[len(runes)-suffixLength:]
	}
	payload := strings.TrimSpace(d.Prefix + string(runes))
	if payload == strings.TrimSpace(d.Prefix) {
		return d.Fallback
	}
	return payload
}

// DerivePayload derives a payload with DefaultPrefix.
func DerivePayload(raw string) string {
	return NewDeriver(DefaultPrefix).Derive(raw)
}
