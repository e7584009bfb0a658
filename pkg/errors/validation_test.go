package errors

import (
	"strings"
	"testing"
)

func TestValidateDocumentFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"json", "week7.json", false},
		{"yaml", "sheets/week7.yaml", false},
		{"yml upper", "WEEK7.YML", false},
		{"toml", "/tmp/sheet.toml", false},
		{"empty", "", true},
		{"hidden", ".sheet.json", true},
		{"no extension", "sheet", true},
		{"spreadsheet", "sheet.xlsx", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDocumentFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDocument) {
				t.Errorf("ValidateDocumentFilename(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidDocument)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out/week7.xlsx", false},
		{"absolute", "/tmp/week7.png", false},
		{"dots in name", "week7..final.txt", false},
		{"empty", "", true},
		{"traversal", "../etc/passwd", true},
		{"nested traversal", "out/../../x", true},
		{"null byte", "a\x00b", true},
		{"control", "a\nb", true},
		{"backslash", `out\x.png`, true},
		{"too long", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
