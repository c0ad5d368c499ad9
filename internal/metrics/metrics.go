// Package metrics defines Prometheus metrics for tradein-valuator.
package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "tiv"

// Registry holds every collector defined here. It is separate from the
// default registry so a push carries only valuation metrics.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// Valuation metrics.
var (
	ValuationsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "valuations_total",
		Help:      "Total number of valuations computed.",
	}, []string{"strategy", "gate", "grade"})

	OfferAmount = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "valuation_offer",
		Help:      "Distribution of final offers in catalog currency units.",
		Buckets:   prometheus.ExponentialBuckets(25, 2, 8), // 25 .. 3200
	}, []string{"strategy"})

	DeductionsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "valuation_deductions_total",
		Help:      "Total number of repair deductions applied, by kind.",
	}, []string{"kind"})

	FloorAppliedTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "valuation_floor_applied_total",
		Help:      "Total number of offers raised to the floor.",
	})

	ValuationErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "valuation_errors_total",
		Help:      "Total number of rejected valuation requests.",
	}, []string{"reason"})
)

// Batch metrics.
var (
	BatchDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "batch_duration_seconds",
		Help:      "Duration of batch valuation runs in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	BatchItemsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "batch_items_total",
		Help:      "Total number of batch items processed, by outcome.",
	}, []string{"outcome"})
)

// Push sends the current state of Registry to a Prometheus Pushgateway,
// replacing any metrics previously pushed under job.
func Push(ctx context.Context, url, job string) error {
	if err := push.New(url, job).Gatherer(Registry).PushContext(ctx); err != nil {
		return fmt.Errorf("pushing metrics to %s: %w", url, err)
	}
	return nil
}
