package reviews

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rafaelbsfarias/proline-backend/pkg/db/models"
)

// DropReason explains why a quote fell out of a batch read model. Missing
// linkage is stale data, not a system error, so dropped quotes never fail
// the request.
type DropReason string

const (
	DropVehicleUnresolved   DropReason = "vehicle_unresolved"
	DropClientUnresolved    DropReason = "client_unresolved"
	DropRevisionEventAbsent DropReason = "revision_event_absent"
	DropStoreFailure        DropReason = "store_failure"
)

// DroppedQuote records one quote excluded from a batch result.
type DroppedQuote struct {
	QuoteID uuid.UUID  `json:"quote_id"`
	Reason  DropReason `json:"reason"`
}

// BatchResult pairs the rows that resolved with the quotes that dropped,
// so callers and tests can assert on both sides.
type BatchResult[T any] struct {
	Items   []T            `json:"items"`
	Dropped []DroppedQuote `json:"dropped,omitempty"`
}

// resolveOutcome is what a per-quote resolver produces: a row, a drop, or
// a skip (quote out of scope for the read model, e.g. not assigned).
type resolveOutcome[T any] struct {
	item    *T
	dropped *DroppedQuote
}

func dropOutcome[T any](quoteID uuid.UUID, reason DropReason) resolveOutcome[T] {
	return resolveOutcome[T]{dropped: &DroppedQuote{QuoteID: quoteID, Reason: reason}}
}

func keepOutcome[T any](item T) resolveOutcome[T] {
	return resolveOutcome[T]{item: &item}
}

func skipOutcome[T any]() resolveOutcome[T] {
	return resolveOutcome[T]{}
}

// resolveQuotes fans the per-quote resolution out across a bounded errgroup
// and collects results in the input order. Resolver errors abort the batch;
// per-quote lookup failures must be converted to drops inside the resolver.
func resolveQuotes[T any](ctx context.Context, quotes []models.Quote, concurrency int, resolve func(ctx context.Context, quote models.Quote) resolveOutcome[T]) (*BatchResult[T], error) {
	if concurrency <= 0 {
		concurrency = 1
	}

	outcomes := make([]resolveOutcome[T], len(quotes))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)

	for i := range quotes {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcomes[i] = resolve(groupCtx, quotes[i])
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	result := &BatchResult[T]{Items: make([]T, 0, len(quotes))}
	for _, outcome := range outcomes {
		switch {
		case outcome.item != nil:
			result.Items = append(result.Items, *outcome.item)
		case outcome.dropped != nil:
			result.Dropped = append(result.Dropped, *outcome.dropped)
		}
	}
	return result, nil
}
