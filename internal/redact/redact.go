// Package redact strips sensitive information from strings before they are
// logged. Error messages bubbling up from the database driver or the JWT
// library can embed connection strings, tokens, or raw SQL; redacting them at
// the logging boundary prevents accidental leakage.
package redact

import "regexp"

// Placeholders substituted for matched sensitive content.
const (
	redactedCredential = "[REDACTED_CREDENTIAL]"
	redactedJWT        = "[REDACTED_JWT]"
	redactedEmail      = "[REDACTED_EMAIL]"
	redactedSQL        = "[REDACTED_SQL]"
)

var replacements = []struct {
	pattern     *regexp.Regexp
	placeholder string
}{
	// Connection strings with inline credentials.
	{regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`), redactedCredential},
	// password=..., pwd: ... and similar assignments.
	{regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`), redactedCredential},
	// Standard three-part base64url JWT tokens.
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`), redactedJWT},
	// Email addresses.
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), redactedEmail},
	// SQL statement fragments surfaced by driver errors.
	{regexp.MustCompile(`(?i)(SELECT|INSERT|UPDATE|DELETE)\s[\s\w,*()$=<>'"]+\b(FROM|INTO|SET|WHERE)\b[\s\w,*()$=<>'"]*`), redactedSQL},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range replacements {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
// Returns an empty string for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
