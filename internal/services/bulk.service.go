package services

import (
	"context"
	"time"

	"github.com/ardacaliskaan/RaporServisi/internal/logger"
)

// BulkOutcome aggregates one batch run. Every input item lands in exactly
// one of the two lists, in input order.
type BulkOutcome[S any, E any] struct {
	SuccessList []S `json:"successList"`
	ErrorList   []E `json:"errorList"`
}

func (o BulkOutcome[S, E]) SuccessCount() int {
	return len(o.SuccessList)
}

func (o BulkOutcome[S, E]) ErrorCount() int {
	return len(o.ErrorList)
}

// Success is true when at least one item went through.
func (o BulkOutcome[S, E]) Success() bool {
	return len(o.SuccessList) > 0
}

// BulkRunner applies a single-item operation across a batch without
// aborting on partial failure, pacing between items so the upstream is
// not hammered.
type BulkRunner struct {
	pace time.Duration
	log  logger.Logger
}

func NewBulkRunner(pace time.Duration) *BulkRunner {
	return &BulkRunner{
		pace: pace,
		log:  logger.New("bulkRunner"),
	}
}

// RunBatch invokes op for each item in order. A failed item is converted
// into an error entry via onError and processing continues. Cancellation
// stops before the next item and returns whatever was collected so far.
func RunBatch[T any, S any, E any](
	ctx context.Context,
	runner *BulkRunner,
	items []T,
	op func(ctx context.Context, item T) (S, error),
	onError func(item T, err error) E,
) BulkOutcome[S, E] {
	log := runner.log.Function("RunBatch")

	var outcome BulkOutcome[S, E]
	for i, item := range items {
		if ctx.Err() != nil {
			log.Warn("batch cancelled", "processed", i, "total", len(items))
			break
		}

		success, err := op(ctx, item)
		if err != nil {
			outcome.ErrorList = append(outcome.ErrorList, onError(item, err))
		} else {
			outcome.SuccessList = append(outcome.SuccessList, success)
		}

		if runner.pace > 0 && i < len(items)-1 {
			select {
			case <-time.After(runner.pace):
			case <-ctx.Done():
			}
		}
	}

	log.Info("batch completed",
		"total", len(items),
		"success", outcome.SuccessCount(),
		"errors", outcome.ErrorCount(),
	)

	return outcome
}
