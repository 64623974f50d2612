package encoder

import (
	"context"

	"go.uber.org/fx"
)

// FXModule wires the encoder client into Fx.
//
// It provides:
//   - *Config                (NewConfig)
//   - *Client                (NewClient)
//   - Encoder interface      (ProvideEncoder)
//   - Lifecycle hook         (RegisterEncoderLifecycle)
var FXModule = fx.Module(
	"encoder",

	fx.Provide(
		NewConfig, // -> *Config
		NewClient, // -> *Client
		fx.Annotate(
			ProvideEncoder,      // Returns Encoder interface
			fx.As(new(Encoder)), // Expose as Encoder interface
		),
	),

	fx.Invoke(RegisterEncoderLifecycle),
)

// ProvideEncoder wraps the concrete *Client and returns it as the Encoder
// interface consumed by the scheduler.
func ProvideEncoder(client *Client) Encoder {
	return client
}

// RegisterEncoderLifecycle ensures that the Client (and its provider)
// are properly cleaned up on application shutdown.
func RegisterEncoderLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
