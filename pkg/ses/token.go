package ses

import (
	"regexp"
	"strings"
)

// FallbackToken is returned by SanitizeToken for empty or all-whitespace
// input.
const FallbackToken = "Generated"

var (
	whitespaceRun = regexp.MustCompile(`[ \t\n\v\f\r]+`)
	nonTokenChar  = regexp.MustCompile(`[^A-Za-z0-9_-]`)
)

// SanitizeToken maps an arbitrary string to a token safe for embedding in
// SES sentences. Whitespace runs collapse to a single underscore, any
// character outside [A-Za-z0-9_-] becomes an underscore, and a leading
// digit gets an underscore prefix. Empty or blank input yields
// [FallbackToken].
//
// The result is never empty, never starts with a digit, and the function
// is idempotent: sanitizing an already-sanitized token is a no-op.
func SanitizeToken(s string) string {
	t := strings.TrimSpace(s)
	if t == "" {
		return FallbackToken
	}
	t = whitespaceRun.ReplaceAllString(t, "_")
	t = nonTokenChar.ReplaceAllString(t, "_")
	if t[0] >= '0' && t[0] <= '9' {
		t = "_" + t
	}
	return t
}
