package errors

import (
	"strings"
	"testing"
)

func TestValidateAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid alnum", "ABC123XYZ", false},
		{"valid with dash", "abc-123_xyz", false},

		{"empty", "", true},
		{"too long", strings.Repeat("k", 300), true},
		{"space", "abc 123", true},
		{"tab", "abc\t123", true},
		{"newline", "abc123\n", true},
		{"null byte", "abc\x00123", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAPIKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAPIKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateAPIKey(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"http", "http://pillbox.nlm.nih.gov/PHP/pillboxAPIService.php", false},
		{"https", "https://example.org/pillbox", false},

		{"empty", "", true},
		{"no scheme", "pillbox.nlm.nih.gov", true},
		{"ftp", "ftp://example.org", true},
		{"javascript", "javascript:alert(1)", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateQueryValue(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain", "ASPIRIN", false},
		{"with spaces", "acetaminophen 325 mg", false},
		{"empty", "", false},
		{"unicode", "paracétamol", false},

		{"newline", "ASPIRIN\n", true},
		{"escape", "\x1b[31mRED", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQueryValue("ingredient", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateQueryValue(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
