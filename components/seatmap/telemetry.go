package seatmap

import "context"

// Telemetry records builder events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

// TelemetryFunc adapts a function to Telemetry.
type TelemetryFunc func(ctx context.Context, event string, payload map[string]any)

// Record calls f.
func (f TelemetryFunc) Record(ctx context.Context, event string, payload map[string]any) {
	f(ctx, event, payload)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}
