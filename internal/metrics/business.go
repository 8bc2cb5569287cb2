package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics records engine operation metrics.
//
// Domain is "crypto"; operations are "encrypt", "decrypt", "hash" and "verify"; status is
// "success" or "error". A failed password match is a successful verify.
type BusinessMetrics interface {
	// RecordOperation counts an operation by outcome.
	RecordOperation(ctx context.Context, domain, operation, status string)

	// RecordDuration records the operation duration in seconds.
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)

	// RecordPayloadSize records the size of the input an operation received, in bytes.
	RecordPayloadSize(ctx context.Context, domain, operation string, size int)

	// AddInFlight adjusts the number of operations currently running.
	AddInFlight(ctx context.Context, domain, operation string, delta int64)
}

type businessMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
	payloadHisto     metric.Int64Histogram
	inFlight         metric.Int64UpDownCounter
}

// NewBusinessMetrics creates the engine instruments on meterProvider, prefixed with namespace.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of cryptographic operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of cryptographic operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	payloadHisto, err := meter.Int64Histogram(
		fmt.Sprintf("%s_operation_payload_size_bytes", namespace),
		metric.WithDescription("Size of cryptographic operation inputs in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create payload size histogram: %w", err)
	}

	inFlight, err := meter.Int64UpDownCounter(
		fmt.Sprintf("%s_operations_in_flight", namespace),
		metric.WithDescription("Number of cryptographic operations currently running"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-flight counter: %w", err)
	}

	return &businessMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
		payloadHisto:     payloadHisto,
		inFlight:         inFlight,
	}, nil
}

func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operationCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.durationHisto.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

func (b *businessMetrics) RecordPayloadSize(ctx context.Context, domain, operation string, size int) {
	b.payloadHisto.Record(ctx, int64(size),
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
		),
	)
}

func (b *businessMetrics) AddInFlight(ctx context.Context, domain, operation string, delta int64) {
	b.inFlight.Add(ctx, delta,
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
		),
	)
}

// NoOpBusinessMetrics is used when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

func (n *NoOpBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {}

func (n *NoOpBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
}

func (n *NoOpBusinessMetrics) RecordPayloadSize(ctx context.Context, domain, operation string, size int) {}

func (n *NoOpBusinessMetrics) AddInFlight(ctx context.Context, domain, operation string, delta int64) {}
