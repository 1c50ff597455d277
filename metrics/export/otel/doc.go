// Package otel bridges pipeline metrics to OpenTelemetry observable
// instruments. Values are pulled from a snapshot inside the meter's
// collection callback, so the pipeline's hot path never touches the SDK.
package otel
