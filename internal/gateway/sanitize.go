package gateway

import (
	"regexp"
	"strings"
)

var (
	disallowedIDChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	leadingDigits     = regexp.MustCompile(`^\d+`)
	snakeRemnant      = regexp.MustCompile(`_([a-z])`)
)

// SanitizeFieldID rewrites a model-proposed field id into a safe
// identifier-like token: disallowed characters are stripped, a leading
// run of digits is removed, and snake_case remnants are collapsed to
// camelCase. The pipeline is idempotent.
func SanitizeFieldID(id string) string {
	id = disallowedIDChars.ReplaceAllString(id, "")
	id = leadingDigits.ReplaceAllString(id, "")
	id = snakeRemnant.ReplaceAllStringFunc(id, func(m string) string {
		return strings.ToUpper(m[1:])
	})
	return id
}
