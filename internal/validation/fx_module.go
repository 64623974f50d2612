package validation

import "go.uber.org/fx"

// FXModule provides the input validator for dependency injection.
//
// Usage:
//
//	app := fx.New(
//	    validation.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module(
	"validation",
	fx.Provide(
		NewConfig,
		NewValidator,
	),
)
