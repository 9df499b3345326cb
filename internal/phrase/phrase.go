// Package phrase renders spoken phrase templates.
//
// A template holds zero or more {{identifier}} placeholders. Rendering never
// fails: a placeholder without a value renders as "undefined".
package phrase

import (
	"fmt"
	"regexp"
)

// RemainsKey is the placeholder filled with the remaining whole seconds.
const RemainsKey = "remains"

// missingValue is substituted for placeholders without a value.
const missingValue = "undefined"

//nolint:gochecknoglobals // Compiled once, read-only.
var placeholderPattern = regexp.MustCompile(`\{\{([a-zA-Z0-9_]+)\}\}`)

// Render substitutes every placeholder in template with the matching value.
func Render(template string, values map[string]any) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]

		value, ok := values[key]
		if !ok || value == nil {
			return missingValue
		}

		return fmt.Sprint(value)
	})
}

// Remains builds the values for a template spoken with n seconds left.
func Remains(seconds int) map[string]any {
	return map[string]any{RemainsKey: seconds}
}

// Placeholders lists the identifiers used by template in order of appearance.
func Placeholders(template string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(template, -1)

	keys := make([]string, 0, len(matches))
	for _, match := range matches {
		keys = append(keys, match[1])
	}

	return keys
}
