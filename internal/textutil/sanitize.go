package textutil

import (
	"strings"
	"unicode"
)

// DefaultObjectPrefix names the storage folder when a product prefix sanitizes to nothing.
const DefaultObjectPrefix = "labels"

// SanitizeFileName makes a label document name safe to write on any
// filesystem. Path separators, colons, asterisks and whitespace become dashes;
// quotes, wildcards, pipes, angle brackets and control characters are
// dropped. Leading dots are stripped so the result is never hidden.
func SanitizeFileName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*':
			return '-'
		case r == '?' || r == '"' || r == '<' || r == '>' || r == '|':
			return -1
		case unicode.IsControl(r):
			return -1
		case unicode.IsSpace(r):
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
	return strings.TrimLeft(name, ".")
}

// ObjectPrefix lowercases a product name into an object storage folder.
// Letters and digits survive, anything else collapses to an underscore.
func ObjectPrefix(product string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(product) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "_-")
	if out == "" {
		return DefaultObjectPrefix
	}
	return out
}
