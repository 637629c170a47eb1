// Package redact strips credentials, connection strings and API keys from
// error text before it is logged. Background task failures are logged with
// their full cause chain, and database or LLM client errors routinely embed
// DSNs and keys.
package redact

import "regexp"

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

var rules = []rule{
	// user:password@ in connection strings
	{regexp.MustCompile(`(?i)\b(postgres(?:ql)?|mysql|mongodb|redis)://[^@\s]+@`), "$1://[REDACTED_CREDENTIAL]@"},
	// password=... in key/value DSNs
	{regexp.MustCompile(`(?i)\b(password|passwd|pwd)=\S+`), "$1=[REDACTED_CREDENTIAL]"},
	// api keys and tokens passed as parameters
	{regexp.MustCompile(`(?i)\b(api[_-]?key|key|token|secret)([=:]\s*)[A-Za-z0-9_\-.~+/]{8,}`), "$1$2[REDACTED_KEY]"},
	// Google API keys appear verbatim in genai client errors
	{regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`), "[REDACTED_KEY]"},
}

// String redacts sensitive information from s.
func String(s string) string {
	for _, r := range rules {
		s = r.pattern.ReplaceAllString(s, r.placeholder)
	}
	return s
}

// Error redacts err.Error(); a nil error yields "".
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
