// Package redact scrubs sensitive material from strings before they reach
// logs or error responses: connection strings, credentials, bearer tokens,
// and raw SQL fragments.
package redact

import "regexp"

// Redaction placeholders.
const (
	RedactedCredential = "[REDACTED_CREDENTIAL]"
	RedactedToken      = "[REDACTED_TOKEN]"
	RedactedSQL        = "[REDACTED_SQL]"
)

var (
	// Database connection strings with embedded credentials.
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`)

	// Password and secret assignments.
	credentialRegex = regexp.MustCompile(
		`(?i)(password|passwd|secret|api[_-]?key)([=:\s]['"]?)[^'"&\s]{3,}`,
	)

	// JWTs: three dot-joined base64url segments starting with "eyJ".
	jwtRegex = regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`)

	// SQL statements leaked from the storage layer.
	sqlRegex = regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE)[\s\w,*()=$]+(FROM|INTO|SET|WHERE)[\s\w,*()='"$]*`,
	)
)

// String returns s with sensitive fragments replaced by placeholders.
func String(s string) string {
	if s == "" {
		return s
	}
	s = dbConnRegex.ReplaceAllString(s, RedactedCredential+"@")
	s = credentialRegex.ReplaceAllString(s, "$1$2"+RedactedCredential)
	s = jwtRegex.ReplaceAllString(s, RedactedToken)
	s = sqlRegex.ReplaceAllString(s, RedactedSQL)
	return s
}

// Error returns the redacted message of err, or "" for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
