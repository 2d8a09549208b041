package service

import (
	"context"
	"fmt"
	"log/slog"

	"basegraph.app/tenancy/internal/events"
	"basegraph.app/tenancy/internal/lock"
)

// mutator is what every write use case shares: locks, one transaction, and
// events published after commit.
type mutator struct {
	txRunner  TxRunner
	locker    lock.Locker
	publisher events.Publisher
}

// inTx takes keys, runs fn in one transaction and releases the keys.
func (m *mutator) inTx(ctx context.Context, keys []string, fn func(stores StoreProvider) error) error {
	release, err := m.locker.Acquire(ctx, keys...)
	if err != nil {
		return fmt.Errorf("locking %v: %w", keys, err)
	}
	defer release()

	return m.txRunner.WithTx(ctx, fn)
}

// publish never fails the caller. The write is already committed.
func (m *mutator) publish(ctx context.Context, evs ...events.Event) {
	if err := m.publisher.Publish(ctx, evs...); err != nil {
		slog.WarnContext(ctx, "failed to publish events", "error", err, "count", len(evs))
	}
}
