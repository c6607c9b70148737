package shipment

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"ledger/internal/services"
)

const (
	// MaxBlankPrefix is the longest house bill prefix accepted for blank generation.
	MaxBlankPrefix = 4
	// MaxBlankCount caps how many placeholder records one request may create.
	MaxBlankCount = 1000
)

// Blank builds count placeholder records whose house bill numbers run from
// prefix+start upward, the sequence number zero-padded to three digits
// (ERDF001, ERDF002, ...). Cargo figures start at zero and status at pending.
func Blank(prefix string, start, count int) ([]Record, error) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" || utf8.RuneCountInString(prefix) > MaxBlankPrefix {
		return nil, invalidBlank("prefix must be 1-%d characters, got %q", MaxBlankPrefix, prefix)
	}
	if start < 0 {
		return nil, invalidBlank("start number must be >= 0, got %d", start)
	}
	if count < 1 || count > MaxBlankCount {
		return nil, invalidBlank("count must be between 1 and %d, got %d", MaxBlankCount, count)
	}

	records := make([]Record, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, Record{
			HouseBillNumber: fmt.Sprintf("%s%03d", prefix, start+i),
			WeightKG:        Float(0),
			Pieces:          Int(0),
			GoodsValue:      Float(0),
			CBM:             Float(0),
			Status:          StatusPending,
		})
	}
	return records, nil
}

func invalidBlank(format string, args ...any) error {
	return services.Wrap(services.ErrValidation, "shipment", "blank", fmt.Sprintf(format, args...), nil)
}
