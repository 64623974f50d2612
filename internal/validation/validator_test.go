package validation

import (
	"errors"
	"strings"
	"testing"
)

func newTestValidator(t *testing.T, cfg *Config) *Validator {
	t.Helper()
	v, err := NewValidator(cfg)
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}
	return v
}

func TestEstimateTokens(t *testing.T) {
	v := newTestValidator(t, NewConfig())

	cases := []struct {
		text string
		want int
	}{
		{"", 1},
		{"abc", 1},
		{"abcdefgh", 2},
		{"a   b   c", 1},                     // collapses to "a b c", 5 chars
		{strings.Repeat("x", 400), 100},
		{"  leading and trailing  ", 5},      // trimmed to 20 chars
	}

	for _, tc := range cases {
		if got := v.EstimateTokens(tc.text); got != tc.want {
			t.Errorf("EstimateTokens(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestValidateTexts_Passes(t *testing.T) {
	v := newTestValidator(t, NewConfig())

	if err := v.ValidateTexts([]string{"hello", "a perfectly ordinary sentence"}); err != nil {
		t.Fatalf("expected valid input to pass, got %v", err)
	}
	if err := v.ValidateTexts(nil); err != nil {
		t.Fatalf("expected empty input to pass through, got %v", err)
	}
}

func TestValidateTexts_TooManyTexts(t *testing.T) {
	v := newTestValidator(t, &Config{
		MaxTexts:           2,
		MaxTextChars:       DefaultMaxTextChars,
		MaxEstimatedTokens: DefaultMaxEstimatedTokens,
		MinTextChars:       1,
	})

	err := v.ValidateTexts([]string{"a", "b", "c"})
	if err == nil {
		t.Fatal("expected batch width rejection")
	}

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if verr.Index != -1 {
		t.Errorf("batch-level error should carry index -1, got %d", verr.Index)
	}
	if verr.Detail != "Too many texts in batch: 3 (maximum: 2)" {
		t.Errorf("unexpected detail %q", verr.Detail)
	}
}

func TestValidateTexts_TooShort(t *testing.T) {
	v := newTestValidator(t, NewConfig())

	err := v.ValidateTexts([]string{"fine", "   ", "also fine"})
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if verr.Index != 1 {
		t.Errorf("expected index 1, got %d", verr.Index)
	}
	if !strings.Contains(verr.Detail, "too short") {
		t.Errorf("unexpected detail %q", verr.Detail)
	}
}

func TestValidateTexts_TooLongChars(t *testing.T) {
	v := newTestValidator(t, &Config{
		MaxTexts:           DefaultMaxTexts,
		MaxTextChars:       10,
		MaxEstimatedTokens: DefaultMaxEstimatedTokens,
		MinTextChars:       1,
	})

	err := v.ValidateTexts([]string{"this text is clearly beyond ten characters"})
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if verr.Index != 0 {
		t.Errorf("expected index 0, got %d", verr.Index)
	}
	if !strings.Contains(verr.Detail, "maximum 10") {
		t.Errorf("unexpected detail %q", verr.Detail)
	}
}

func TestValidateTexts_TooLongTokens(t *testing.T) {
	v := newTestValidator(t, &Config{
		MaxTexts:           DefaultMaxTexts,
		MaxTextChars:       DefaultMaxTextChars,
		MaxEstimatedTokens: 5,
		MinTextChars:       1,
	})

	// 40 characters with no whitespace, about 10 estimated tokens.
	err := v.ValidateTexts([]string{strings.Repeat("x", 40)})
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if !strings.Contains(verr.Detail, "tokens") || !strings.Contains(verr.Detail, "splitting") {
		t.Errorf("unexpected detail %q", verr.Detail)
	}
}

func TestValidateTexts_CountsRunesNotBytes(t *testing.T) {
	v := newTestValidator(t, &Config{
		MaxTexts:           DefaultMaxTexts,
		MaxTextChars:       10,
		MaxEstimatedTokens: DefaultMaxEstimatedTokens,
		MinTextChars:       1,
	})

	// Ten runes, nineteen bytes. Must pass the ten-character limit.
	if err := v.ValidateTexts([]string{"привет мир"}); err != nil {
		t.Fatalf("expected multibyte text within rune limit to pass, got %v", err)
	}
}

func TestNewValidator_RejectsBadConfig(t *testing.T) {
	if _, err := NewValidator(&Config{MaxTexts: 0, MaxTextChars: 1, MaxEstimatedTokens: 1, MinTextChars: 1}); err == nil {
		t.Fatal("expected config rejection")
	}
}
