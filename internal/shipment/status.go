package shipment

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status represents the delivery lifecycle of a shipment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusInTransit Status = "in_transit"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

var allStatuses = []Status{
	StatusPending,
	StatusInTransit,
	StatusDelivered,
	StatusCancelled,
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status. Spaces and dashes are
// accepted in place of underscores so "In Transit" parses.
func ParseStatus(value string) (Status, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)
	for _, status := range allStatuses {
		if string(status) == normalized {
			return status, true
		}
	}
	return "", false
}

// Label returns the display form of the status, e.g. "In Transit".
// A Caser keeps state, so each call builds its own.
func (s Status) Label() string {
	if s == "" {
		return "Unknown"
	}
	return cases.Title(language.English).String(strings.ReplaceAll(string(s), "_", " "))
}
