package errors

import (
	"strings"
	"unicode"
)

// maxAPIKeyLength bounds the access key; real keys are short opaque tokens.
const maxAPIKeyLength = 256

// ValidateAPIKey checks that an access key can be sent as a query parameter.
//
// Validation rules:
//   - No empty keys (the service rejects every request without one)
//   - No whitespace or control characters
//   - Maximum length of 256 characters
func ValidateAPIKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "API key cannot be empty")
	}

	if len(key) > maxAPIKeyLength {
		return New(ErrCodeInvalidInput, "API key too long (max %d characters)", maxAPIKeyLength)
	}

	for _, r := range key {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "API key contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// ValidateQueryValue rejects parameter values that carry control characters.
// Such values are never meaningful to the service and usually come from
// pasted terminal input.
func ValidateQueryValue(name, value string) error {
	for _, r := range value {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s contains invalid control characters", name)
		}
	}
	return nil
}
