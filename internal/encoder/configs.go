package encoder

import (
	"fmt"
	"os"
	"strconv"
)

// DefaultModel is the model served when MODEL_NAME is not set.
const DefaultModel = "BAAI/bge-m3"

// ENCODER_ENDPOINT must point to the root of the backend inference service
// (no path appended). The provider appends /v1/embeddings itself, so callers
// only need to supply the host base URL.

type Config struct {
	// Backend endpoint and auth
	Endpoint     string // Base URL of the BGE-M3 inference backend
	ServiceToken string // Optional bearer token for the backend
	Model        string // Model identifier, default "BAAI/bge-m3"
	HTTPTimeoutS int    // HTTP timeout seconds (default 30)
}

// NewConfig reads from environment variables.
func NewConfig() *Config {
	timeout := 30
	if v := os.Getenv("ENCODER_HTTP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeout = n
		}
	}

	model := os.Getenv("MODEL_NAME")
	if model == "" {
		model = DefaultModel
	}

	return &Config{
		Endpoint:     os.Getenv("ENCODER_ENDPOINT"),
		ServiceToken: os.Getenv("ENCODER_SERVICE_TOKEN"),
		Model:        model,
		HTTPTimeoutS: timeout,
	}
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("encoder: missing ENCODER_ENDPOINT")
	}
	if c.Model == "" {
		return fmt.Errorf("encoder: missing MODEL_NAME")
	}
	return nil
}
