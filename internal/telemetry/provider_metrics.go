package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const providerMeterName = "github.com/travelsaathi/travelsaathi/internal/telemetry"

// ProviderMetrics records calls to external providers: the itinerary
// generation model and the IP geolocation service.
type ProviderMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

// NewProviderMetrics creates provider call instruments on the global meter.
func NewProviderMetrics() (*ProviderMetrics, error) {
	meter := Meter(providerMeterName)

	requests, err := meter.Int64Counter(
		"provider_requests_total",
		metric.WithDescription("Total number of external provider requests"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"provider_request_duration_seconds",
		metric.WithDescription("External provider request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &ProviderMetrics{
		requests: requests,
		duration: duration,
	}, nil
}

// Record registers one provider call. Safe on a nil receiver so callers can
// run without metrics wired.
func (m *ProviderMetrics) Record(ctx context.Context, provider string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}

	outcome := "success"
	if err != nil {
		outcome = "error"
	}

	attrs := metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("outcome", outcome),
	)

	m.requests.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}
