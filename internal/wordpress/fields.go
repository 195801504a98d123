package wordpress

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// The ACF plugin types the same logical field differently across entity
// types: prices arrive as numbers or numeric strings, categories as strings
// or arrays, flags as booleans or "1". Everything below coerces those values
// into fixed application types right at the API boundary, with documented
// defaults, and never panics.

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Number coerces a heterogeneous value to float64, defaulting to 0 for nil,
// empty or unparseable input.
func Number(v any) float64 {
	return NumberOr(v, 0)
}

// NumberOr is Number with a caller-chosen fallback (the blog's reading-time
// field defaults to 5, not 0).
func NumberOr(v any, fallback float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return fallback
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return fallback
		}
		return f
	default:
		return fallback
	}
}

// Bool interprets the truthy encodings ACF uses for checkbox fields.
func Bool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	case int:
		return b != 0
	case string:
		return b == "1" || b == "true"
	default:
		return false
	}
}

// CategoryOr maps a string-or-array category value to a single string. For
// arrays only the first element counts: a comma-joined value could never
// match a category filter. fallback is call-site dependent ("General" for
// productos, "" for the plant collections).
func CategoryOr(v any, fallback string) string {
	switch c := v.(type) {
	case string:
		return c
	case []string:
		if len(c) == 0 {
			return fallback
		}
		return c[0]
	case []any:
		if len(c) == 0 {
			return fallback
		}
		if s, ok := c[0].(string); ok {
			return s
		}
		return fmt.Sprint(c[0])
	default:
		return fallback
	}
}

// String returns v if it is a string, else "".
func String(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// MediaID coerces a number-or-numeric-string media reference. ok is false
// for zero, empty, negative or non-numeric input, meaning "no lookup".
func MediaID(v any) (int, bool) {
	var id int
	switch n := v.(type) {
	case float64:
		id = int(n)
	case int:
		id = n
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		id = int(i)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		id = i
	default:
		return 0, false
	}
	if id <= 0 {
		return 0, false
	}
	return id, true
}

// StripHTML removes markup tags and trims whitespace. HTML entities are left
// as-is, matching how the storefront has always rendered these strings.
func StripHTML(html string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(html, ""))
}

// Excerpt strips markup and truncates to limit runes, appending an ellipsis
// marker when something was cut.
func Excerpt(html string, limit int) string {
	plain := StripHTML(html)
	if limit <= 0 {
		return plain
	}
	runes := []rune(plain)
	if len(runes) <= limit {
		return plain
	}
	return string(runes[:limit]) + "..."
}
