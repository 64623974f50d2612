// Package tracer provides distributed tracing for the embedding-inference
// service using OpenTelemetry.
//
// It wraps the OpenTelemetry SDK behind a small API for creating spans,
// recording errors, attaching attributes, and propagating trace context
// across service boundaries via W3C Trace Context carriers.
//
// Trace export uses the OTLP HTTP exporter and is disabled by default;
// set TRACER_ENABLE_EXPORT=true and the standard OTEL_EXPORTER_OTLP_*
// environment variables to ship spans to a collector.
//
// # Usage
//
//	ctx, span := tracerClient.StartSpan(ctx, "execute-batch")
//	defer span.End()
//
//	if err := doWork(ctx); err != nil {
//	    tracerClient.RecordErrorOnSpan(span, err)
//	    return err
//	}
package tracer
