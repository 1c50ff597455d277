package otel

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/credgate/credgate"
)

type fakeSource struct {
	snapshot credgate.MetricsSnapshot
}

func (f *fakeSource) MetricsSnapshot() credgate.MetricsSnapshot {
	return f.snapshot
}

func TestNewRejectsNilInputs(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	meter := provider.Meter("test")

	if _, err := New(nil, &fakeSource{}); err != ErrNilMeter {
		t.Fatalf("expected ErrNilMeter, got %v", err)
	}
	if _, err := New(meter, nil); err != ErrNilSource {
		t.Fatalf("expected ErrNilSource, got %v", err)
	}
}

func TestExporterObservesSnapshot(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	meter := provider.Meter("test")

	source := &fakeSource{snapshot: credgate.MetricsSnapshot{
		Counters: map[credgate.MetricID]uint64{
			credgate.MetricTokenIssued: 9,
		},
		Histograms: map[credgate.MetricID][]uint64{
			credgate.MetricVerifyLatency: {1, 0, 0, 0, 0, 0, 0, 0},
		},
	}}

	exporter, err := New(meter, source)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer func() { _ = exporter.Close() }()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect error: %v", err)
	}

	found := false
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != "credgate_token_issued_total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok || len(sum.DataPoints) != 1 {
				t.Fatalf("unexpected data shape for %s: %+v", m.Name, m.Data)
			}
			if got := sum.DataPoints[0].Value; got != 9 {
				t.Fatalf("token issued = %d, want 9", got)
			}
			found = true
		}
	}
	if !found {
		t.Fatal("credgate_token_issued_total not observed")
	}
}

func TestCloseUnregisters(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	meter := provider.Meter("test")

	exporter, err := New(meter, &fakeSource{})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if err := exporter.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	// Closing twice is a no-op only when registration is nil; a second call
	// may error and that is acceptable, just must not panic.
	_ = exporter.Close()
}
