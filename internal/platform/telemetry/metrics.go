package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/jsamuelsen/quotes"

// Mutation outcomes recorded on quotes.mutations.
const (
	OutcomeOK          = "ok"
	OutcomeInvalid     = "invalid"
	OutcomeNotFound    = "not_found"
	OutcomeConflict    = "conflict"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

// Tracer returns the tracer used for quote operations.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// Metrics holds the quote book instruments. A nil *Metrics records nothing.
type Metrics struct {
	displayed     metric.Int64Counter
	mutations     metric.Int64Counter
	parseDuration metric.Float64Histogram
}

// NewMetrics creates quote metrics on the global meter provider.
func NewMetrics() (*Metrics, error) {
	return NewMetricsWithMeter(otel.Meter(instrumentationName))
}

// NewMetricsWithMeter creates quote metrics on the given meter.
func NewMetricsWithMeter(meter metric.Meter) (*Metrics, error) {
	displayed, err := meter.Int64Counter(
		"quotes.displayed",
		metric.WithDescription("Quotes rendered to the terminal"),
	)
	if err != nil {
		return nil, err
	}

	mutations, err := meter.Int64Counter(
		"quotes.mutations",
		metric.WithDescription("Changes applied to the quote book"),
	)
	if err != nil {
		return nil, err
	}

	parseDuration, err := meter.Float64Histogram(
		"quotes.parse.duration",
		metric.WithDescription("Time spent parsing quote markup"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		displayed:     displayed,
		mutations:     mutations,
		parseDuration: parseDuration,
	}, nil
}

// RecordDisplay counts one displayed quote.
func (m *Metrics) RecordDisplay(ctx context.Context, favourite bool) {
	if m == nil {
		return
	}

	m.displayed.Add(ctx, 1, metric.WithAttributes(attribute.Bool("favourite", favourite)))
}

// RecordMutation counts one change attempt and its outcome.
func (m *Metrics) RecordMutation(ctx context.Context, operation, outcome string) {
	if m == nil {
		return
	}

	m.mutations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

// RecordParse records how long parsing one quote took.
func (m *Metrics) RecordParse(ctx context.Context, d time.Duration) {
	if m == nil {
		return
	}

	m.parseDuration.Record(ctx, d.Seconds())
}
