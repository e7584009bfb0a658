package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidPageFormat, "unknown page format %q", "3-page")

	if err.Code != ErrCodeInvalidPageFormat {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidPageFormat)
	}

	want := `INVALID_PAGE_FORMAT: unknown page format "3-page"`
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidDocument, cause, "decode sheet.json")

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	want := "INVALID_DOCUMENT: decode sheet.json: unexpected EOF"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeInvalidOrientation, "x"), ErrCodeInvalidOrientation, true},
		{"other code", New(ErrCodeInvalidOrientation, "x"), ErrCodeInvalidFormat, false},
		{"outer code wins", Wrap(ErrCodeInternal, New(ErrCodeInvalidPath, "inner"), "outer"), ErrCodeInternal, true},
		{"fmt wrapped", fmt.Errorf("load: %w", New(ErrCodeFileNotFound, "missing")), ErrCodeFileNotFound, true},
		{"plain error", errors.New("plain"), ErrCodeInvalidInput, false},
		{"nil", nil, ErrCodeInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeUnsupported, "x")); got != ErrCodeUnsupported {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeUnsupported)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidDocument, "section 2 has no title")); got != "section 2 has no title" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("boom")); got != "boom" {
		t.Errorf("UserMessage(plain) = %q, want %q", got, "boom")
	}
}

func TestProblems(t *testing.T) {
	var p Problems
	p.Code = ErrCodeInvalidDocument
	if err := p.Err(); err != nil {
		t.Fatalf("Err() on empty = %v, want nil", err)
	}

	p.Add("section %d: missing title", 1)
	if got := UserMessage(p.Err()); got != "section 1: missing title" {
		t.Errorf("UserMessage() = %q", got)
	}

	p.Add("section %d: missing title", 3)
	p.Add("box %q: bad span", "b1")
	err := p.Err()
	if !Is(err, ErrCodeInvalidDocument) {
		t.Errorf("Is(INVALID_DOCUMENT) = false for %v", err)
	}
	if got, want := UserMessage(err), "section 1: missing title (and 2 more)"; got != want {
		t.Errorf("UserMessage() = %q, want %q", got, want)
	}
}
