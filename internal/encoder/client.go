package encoder

import (
	"context"
	"fmt"
)

// Client is the public entrypoint for computing embeddings.
//
// It hides all provider details (backend endpoints, HTTP, etc.)
// from the application layer.
type Client struct {
	provider Provider
	model    string
}

// NewClient constructs a Client from Config.
// It validates the config and internally constructs the inference provider.
// Application code should depend on *Client or the Encoder interface, not on
// Provider or inferenceProvider.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("encoder: invalid config: %w", err)
	}

	p, err := newInferenceProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoder: failed to create provider: %w", err)
	}

	return &Client{provider: p, model: cfg.Model}, nil
}

// Encode computes the selected vector kinds for every text.
func (c *Client) Encode(ctx context.Context, texts []string, kinds Kinds) ([]Vectors, error) {
	return c.provider.Encode(ctx, texts, kinds)
}

// Model returns the model identifier this client serves.
func (c *Client) Model() string {
	return c.model
}

// Close allows the client to release any internal resources used by the provider.
// Currently this is a no-op unless the provider implements Close().
func (c *Client) Close() error {
	if closer, ok := c.provider.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
