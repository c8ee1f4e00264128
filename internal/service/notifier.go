package service

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jengzang/tours-backend-go/internal/logging"
)

// ChangeKind identifies what happened to a tour or its POIs
type ChangeKind string

const (
	POICreated    ChangeKind = "poi_created"
	POIUpdated    ChangeKind = "poi_updated"
	POIDeleted    ChangeKind = "poi_deleted"
	POIsReordered ChangeKind = "pois_reordered"
	TourUpdated   ChangeKind = "tour_updated"
	TourDeleted   ChangeKind = "tour_deleted"
)

// AffectsPOIs reports whether the change touched the POI set of the tour
func (k ChangeKind) AffectsPOIs() bool {
	switch k {
	case POICreated, POIUpdated, POIDeleted, POIsReordered:
		return true
	}
	return false
}

// ChangeEvent describes one mutation of a tour
type ChangeEvent struct {
	Kind   ChangeKind
	TourID int64
	POIID  int64
}

// TxSubscriber runs inside the transaction that produced the event. An error
// aborts the transaction.
type TxSubscriber func(ctx context.Context, tx *sqlx.Tx, ev ChangeEvent) error

// CommitHook runs after the transaction that produced the event committed
type CommitHook func(ctx context.Context, ev ChangeEvent)

// ChangeNotifier dispatches tour change events. Subscribers are registered at
// startup, before any event is published.
type ChangeNotifier struct {
	subscribers []TxSubscriber
	hooks       []CommitHook
}

// NewChangeNotifier creates a notifier with no subscribers
func NewChangeNotifier() *ChangeNotifier {
	return &ChangeNotifier{}
}

// Subscribe registers a transactional subscriber
func (n *ChangeNotifier) Subscribe(fn TxSubscriber) {
	n.subscribers = append(n.subscribers, fn)
}

// OnCommitted registers a hook run after commit
func (n *ChangeNotifier) OnCommitted(fn CommitHook) {
	n.hooks = append(n.hooks, fn)
}

// Publish delivers ev to every transactional subscriber in registration order
func (n *ChangeNotifier) Publish(ctx context.Context, tx *sqlx.Tx, ev ChangeEvent) error {
	for _, fn := range n.subscribers {
		if err := fn(ctx, tx, ev); err != nil {
			return err
		}
	}
	return nil
}

// Committed delivers events to the post-commit hooks. Hooks cannot fail the
// mutation; they log their own errors.
func (n *ChangeNotifier) Committed(ctx context.Context, events ...ChangeEvent) {
	for _, ev := range events {
		logging.Ctx(ctx).Debug().
			Str("kind", string(ev.Kind)).
			Int64("tour_id", ev.TourID).
			Int64("poi_id", ev.POIID).
			Msg("tour change committed")
		for _, fn := range n.hooks {
			fn(ctx, ev)
		}
	}
}
