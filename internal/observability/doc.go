// Package observability defines the operation-level observability contract
// shared by all infrastructure clients in this service.
//
// Components (scheduler, encoder, cache) do not talk to Prometheus or a
// tracing backend directly. Instead they accept an optional Observer and
// report each significant operation through ObserveOperation. This keeps
// instrumentation concerns out of the component code and lets the
// application decide how operations are recorded.
//
// # Usage
//
//	type MyClient struct {
//	    observer observability.Observer
//	}
//
//	func (c *MyClient) doWork(ctx context.Context) error {
//	    start := time.Now()
//	    err := c.execute(ctx)
//	    if c.observer != nil {
//	        c.observer.ObserveOperation(observability.OperationContext{
//	            Component: "my-client",
//	            Operation: "do-work",
//	            Duration:  time.Since(start),
//	            Error:     err,
//	        })
//	    }
//	    return err
//	}
//
// The package ships a Prometheus-backed implementation, PrometheusObserver,
// which translates operation contexts into counters and latency histograms
// registered on the service's metrics registry. The FXModule provides it as
// the Observer interface so that every component declaring an optional
// observability.Observer dependency receives it automatically.
package observability
