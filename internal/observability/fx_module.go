package observability

import (
	"go.uber.org/fx"
)

// FXModule wires the Prometheus-backed observer into Fx.
//
// It provides *PrometheusObserver and exposes it as the Observer interface,
// so components declaring an optional observability.Observer dependency
// receive it automatically once this module is included.
//
// Usage:
//
//	app := fx.New(
//	    metrics.FXModule,
//	    observability.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("observability",
	fx.Provide(
		NewPrometheusObserver, // Returns *PrometheusObserver
		fx.Annotate(
			ProvideObserver,      // Returns Observer interface
			fx.As(new(Observer)), // Expose as Observer interface
		),
	),
)

// ProvideObserver wraps the concrete *PrometheusObserver and returns it as the
// Observer interface. This enables applications to depend on the interface
// rather than the concrete type.
func ProvideObserver(o *PrometheusObserver) Observer {
	return o
}
