package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/tradein-valuator/internal/metrics"
)

// BatchItem is one entry of a batch. Exactly one of Graded or Simple is set.
type BatchItem struct {
	Graded *GradedRequest
	Simple *SimpleRequest
}

func (b *BatchItem) id() string {
	if b.Graded != nil {
		return b.Graded.ID
	}
	if b.Simple != nil {
		return b.Simple.ID
	}
	return ""
}

func (b *BatchItem) model() string {
	if b.Graded != nil {
		return b.Graded.Model
	}
	if b.Simple != nil {
		return b.Simple.Model
	}
	return ""
}

// Batch values every item concurrently and returns results in input order.
// A failing item does not stop the batch; its Result carries the error.
// Only cancellation of ctx aborts the run.
func (e *Engine) Batch(ctx context.Context, items []BatchItem) ([]Result, error) {
	start := time.Now()
	defer func() {
		metrics.BatchDuration.Observe(time.Since(start).Seconds())
	}()

	e.log.Info("processing batch", "items", len(items), "concurrency", e.concurrency)

	results := make([]Result, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	var succeeded, failed atomic.Int64

	for i := range items {
		item := &items[i]
		g.Go(func() error {
			res, err := e.valuate(gctx, item)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				failed.Add(1)
				metrics.BatchItemsTotal.WithLabelValues("failed").Inc()
				e.log.Warn("batch item failed", "index", i, "id", item.id(), "error", err)
				results[i] = Result{
					ID:    e.idOr(item.id()),
					Model: item.model(),
					Err:   err,
					Error: err.Error(),
				}
				return nil
			}

			succeeded.Add(1)
			metrics.BatchItemsTotal.WithLabelValues("succeeded").Inc()
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("batch valuation: %w", err)
	}

	e.log.Info("batch complete",
		"succeeded", succeeded.Load(),
		"failed", failed.Load(),
		"duration", time.Since(start),
	)
	return results, nil
}

func (e *Engine) valuate(ctx context.Context, item *BatchItem) (Result, error) {
	switch {
	case item.Graded != nil && item.Simple != nil:
		return Result{}, errors.New("batch item sets both graded and simple requests")
	case item.Graded != nil:
		return e.Graded(ctx, *item.Graded)
	case item.Simple != nil:
		return e.Simple(ctx, *item.Simple)
	default:
		return Result{}, errors.New("empty batch item")
	}
}
