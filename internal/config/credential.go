package config

import "strings"

// MissingKeyError indicates no usable Gemini API key could be resolved for
// an operation. It maps to HTTP 500.
type MissingKeyError struct{}

func (e *MissingKeyError) Error() string {
	return "no Gemini API key configured: supply apiKey in the request or set GEMINI_API_KEY"
}

// ResolveAPIKey picks the credential for one operation: a non-blank
// request-scoped override wins over the process-wide configured key. It is
// called fresh on every operation; there is no cached credential state.
func ResolveAPIKey(override, configured string) (string, error) {
	if key := strings.TrimSpace(override); key != "" {
		return key, nil
	}
	if key := strings.TrimSpace(configured); key != "" {
		return key, nil
	}
	return "", &MissingKeyError{}
}
