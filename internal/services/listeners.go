package services

import (
	"context"

	"financas/internal/core"
	applog "financas/internal/log"
)

// Persister writes the whole list after each change. Implementations
// swallow their own failures.
type Persister interface {
	Save(ctx context.Context, txs []core.Transaction)
	Clear(ctx context.Context)
}

// ChangePublisher announces changes to other processes.
type ChangePublisher interface {
	PublishChange(ctx context.Context, kind string, ids []string, count int) error
}

// PersistChanges re-saves the full list after every change. A clear removes
// the stored key instead of writing an empty list.
func PersistChanges(p Persister) Listener {
	return func(ctx context.Context, ch Change) {
		if ch.Kind == ChangeCleared {
			p.Clear(ctx)
			return
		}
		p.Save(ctx, ch.Transactions)
	}
}

// PublishChanges forwards every change to p. Publishing is best effort: the
// change is already applied and persisted when this runs.
func PublishChanges(p ChangePublisher, logger *applog.Logger) Listener {
	logger = logger.WithComponent(applog.ComponentAMQP)
	return func(ctx context.Context, ch Change) {
		if p == nil {
			logger.DebugContext(ctx, "Change publisher not available, skipping change message")
			return
		}
		if err := p.PublishChange(ctx, string(ch.Kind), ch.IDs, len(ch.Transactions)); err != nil {
			logger.ErrorContext(ctx, "Failed to publish change message",
				applog.FieldChangeKind, ch.Kind,
				applog.FieldIDs, ch.IDs,
				applog.FieldError, err)
		}
	}
}
