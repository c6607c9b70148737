package shipment

import (
	"fmt"
	"strconv"
)

// Text coerces a field value to the string printed on a label. Missing
// values (nil, nil pointers) become the empty string and numbers use the
// shortest representation that round-trips, so 12.5 prints as "12.5" and 3
// as "3".
func Text(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case float64:
		return FormatNumber(v)
	case *float64:
		if v == nil {
			return ""
		}
		return FormatNumber(*v)
	case int:
		return strconv.Itoa(v)
	case *int:
		if v == nil {
			return ""
		}
		return strconv.Itoa(*v)
	case int64:
		return strconv.FormatInt(v, 10)
	case Status:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// FormatNumber renders f without trailing zeros or exponent notation.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }

// Int returns a pointer to n.
func Int(n int) *int { return &n }
