package key

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// keyRegex parses the full grammar in one pass: an optional form segment
// with an optional :index suffix, then the field name.
var keyRegex = regexp.MustCompile(`^(?:([A-Za-z0-9_-]+)(?::(\d+))?\.)?([A-Za-z0-9_-]+)$`)

// Key is the structured form of a value key.
type Key struct {
	// Form is the declared form name, or "" for a key relative to the
	// requesting instance.
	Form string
	// Index is the zero-based instance index, or -1 when the key does not
	// address a repeatable instance.
	Index int
	// Field is the field name on the target form.
	Field string
}

// Parse converts the raw string representation of a value key into a Key.
func Parse(raw string) (Key, error) {
	if raw == "" {
		return Key{}, fmt.Errorf("value key cannot be empty")
	}

	matches := keyRegex.FindStringSubmatch(raw)
	if matches == nil {
		return Key{}, fmt.Errorf("invalid value key: %q", raw)
	}

	k := Key{Form: matches[1], Index: -1, Field: matches[3]}
	if matches[2] != "" {
		index, err := strconv.Atoi(matches[2])
		if err != nil {
			// Unreachable due to regex `\d+`
			return Key{}, fmt.Errorf("internal error parsing instance index: %w", err)
		}
		k.Index = index
	}

	return k, nil
}

// Qualified reports whether the key names a form explicitly.
func (k Key) Qualified() bool {
	return k.Form != ""
}

// Indexed reports whether the key addresses a specific instance of a
// repeatable form.
func (k Key) Indexed() bool {
	return k.Index >= 0
}

// String serializes the Key into its canonical string representation.
func (k Key) String() string {
	var sb strings.Builder
	if k.Form != "" {
		sb.WriteString(k.Form)
		if k.Index >= 0 {
			sb.WriteByte(':')
			sb.WriteString(strconv.Itoa(k.Index))
		}
		sb.WriteByte('.')
	}
	sb.WriteString(k.Field)
	return sb.String()
}
