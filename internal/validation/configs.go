package validation

import (
	"fmt"
	"os"
	"strconv"
)

// Limits sized for BGE-M3: the model accepts up to 8192 tokens, and at a
// rough four characters per token that bounds texts at 32768 characters.
const (
	DefaultMaxTexts           = 100
	DefaultMaxTextChars       = 32768
	DefaultMaxEstimatedTokens = 8192
	DefaultMinTextChars       = 1

	charsPerToken = 4
)

type Config struct {
	MaxTexts           int // Maximum texts in one request
	MaxTextChars       int // Maximum characters per text
	MaxEstimatedTokens int // Maximum estimated tokens per text
	MinTextChars       int // Minimum characters per text after trimming
}

// NewConfig reads from environment variables.
func NewConfig() *Config {
	return &Config{
		MaxTexts:           intFromEnv("VALIDATION_MAX_TEXTS", DefaultMaxTexts),
		MaxTextChars:       intFromEnv("VALIDATION_MAX_TEXT_CHARS", DefaultMaxTextChars),
		MaxEstimatedTokens: intFromEnv("VALIDATION_MAX_TOKENS", DefaultMaxEstimatedTokens),
		MinTextChars:       DefaultMinTextChars,
	}
}

// Validate ensures the limits are usable.
func (c *Config) Validate() error {
	if c.MaxTexts <= 0 {
		return fmt.Errorf("validation: MaxTexts must be positive, got %d", c.MaxTexts)
	}
	if c.MaxTextChars <= 0 {
		return fmt.Errorf("validation: MaxTextChars must be positive, got %d", c.MaxTextChars)
	}
	if c.MaxEstimatedTokens <= 0 {
		return fmt.Errorf("validation: MaxEstimatedTokens must be positive, got %d", c.MaxEstimatedTokens)
	}
	if c.MinTextChars < 1 {
		return fmt.Errorf("validation: MinTextChars must be at least 1, got %d", c.MinTextChars)
	}
	return nil
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
