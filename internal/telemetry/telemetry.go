// Package telemetry holds the OpenTelemetry tracer and instruments shared by
// the store and the search packages, plus the SDK bootstrap used by the
// command-line tool. Without Init every call is a cheap no-op against the
// global no-op providers.
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ScopeName is the instrumentation scope for every span and instrument.
const ScopeName = "github.com/katalvlaran/topograph"

var (
	searchLatency metric.Float64Histogram
	searchTotal   metric.Int64Counter
	searchPartial metric.Int64Counter
	mutationTotal metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

func initMetrics() error {
	metricsOnce.Do(func() {
		meter := otel.Meter(ScopeName)
		var err error

		searchLatency, err = meter.Float64Histogram(
			"topograph_search_duration_seconds",
			metric.WithDescription("Duration of graph searches"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		searchTotal, err = meter.Int64Counter(
			"topograph_search_total",
			metric.WithDescription("Number of graph searches"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		searchPartial, err = meter.Int64Counter(
			"topograph_search_partial_total",
			metric.WithDescription("Searches that stopped on their time budget"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		mutationTotal, err = meter.Int64Counter(
			"topograph_store_mutations_total",
			metric.WithDescription("Nodes and segments added or removed"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})

	return metricsErr
}

// Start opens a span named name under ctx. A nil ctx is treated as Background.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}

	return otel.Tracer(ScopeName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSearch records the outcome of a search on span and in the search
// instruments, then ends span.
func EndSearch(ctx context.Context, span trace.Span, algo string, began time.Time, results int, partial bool, err error) {
	span.SetAttributes(
		attribute.Int("search.results", results),
		attribute.Bool("search.partial", partial),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()

	if initMetrics() != nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("algorithm", algo),
		attribute.Bool("success", err == nil),
	)
	searchLatency.Record(ctx, time.Since(began).Seconds(), attrs)
	searchTotal.Add(ctx, 1, attrs)
	if partial {
		searchPartial.Add(ctx, 1, metric.WithAttributes(attribute.String("algorithm", algo)))
	}
}

// RecordMutation counts n store changes of kind op (for example "add_nodes").
func RecordMutation(ctx context.Context, op string, n int) {
	if n == 0 || initMetrics() != nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	mutationTotal.Add(ctx, int64(n), metric.WithAttributes(attribute.String("op", op)))
}
