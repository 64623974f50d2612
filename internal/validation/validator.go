package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validator checks embedding input texts against the configured limits.
type Validator struct {
	cfg *Config
}

// NewValidator creates a Validator after validating the configuration.
//
// Parameters:
//   - cfg: limit configuration, typically from NewConfig()
//
// Returns:
//   - *Validator: ready-to-use validator
//   - error: configuration error
func NewValidator(cfg *Config) (*Validator, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Validator{cfg: cfg}, nil
}

// EstimateTokens approximates the token count of a text. Whitespace runs are
// collapsed before counting, and every text estimates at least one token.
func (v *Validator) EstimateTokens(text string) int {
	cleaned := strings.Join(strings.Fields(text), " ")
	estimated := utf8.RuneCountInString(cleaned) / charsPerToken
	if estimated < 1 {
		return 1
	}
	return estimated
}

// ValidateTexts checks the batch width, then each text in order. The first
// failure is returned as a *Error; a nil return admits the whole request.
func (v *Validator) ValidateTexts(texts []string) error {
	if len(texts) > v.cfg.MaxTexts {
		return &Error{
			Index:  -1,
			Detail: fmt.Sprintf("Too many texts in batch: %d (maximum: %d)", len(texts), v.cfg.MaxTexts),
		}
	}

	for i, text := range texts {
		if err := v.validateText(text, i); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) validateText(text string, index int) error {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < v.cfg.MinTextChars {
		return &Error{
			Index:  index,
			Detail: fmt.Sprintf("Text at index %d is too short (minimum %d characters)", index, v.cfg.MinTextChars),
		}
	}

	if chars := utf8.RuneCountInString(text); chars > v.cfg.MaxTextChars {
		return &Error{
			Index:  index,
			Detail: fmt.Sprintf("Text at index %d is too long (%d chars, maximum %d)", index, chars, v.cfg.MaxTextChars),
		}
	}

	if tokens := v.EstimateTokens(text); tokens > v.cfg.MaxEstimatedTokens {
		return &Error{
			Index: index,
			Detail: fmt.Sprintf(
				"Text at index %d is too long (~%d tokens, maximum %d). Consider splitting into smaller chunks.",
				index, tokens, v.cfg.MaxEstimatedTokens,
			),
		}
	}

	return nil
}
