package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func TestNotifierPublishStopsAtFirstError(t *testing.T) {
	n := NewChangeNotifier()
	boom := errors.New("boom")

	var calls []string
	n.Subscribe(func(context.Context, *sqlx.Tx, ChangeEvent) error {
		calls = append(calls, "first")
		return boom
	})
	n.Subscribe(func(context.Context, *sqlx.Tx, ChangeEvent) error {
		calls = append(calls, "second")
		return nil
	})

	err := n.Publish(context.Background(), nil, ChangeEvent{Kind: POICreated, TourID: 1})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"first"}, calls)
}

func TestNotifierCommittedRunsHooksPerEvent(t *testing.T) {
	n := NewChangeNotifier()

	var seen []ChangeEvent
	n.OnCommitted(func(_ context.Context, ev ChangeEvent) {
		seen = append(seen, ev)
	})

	events := []ChangeEvent{
		{Kind: TourUpdated, TourID: 3},
		{Kind: POIsReordered, TourID: 3},
	}
	n.Committed(context.Background(), events...)
	assert.Equal(t, events, seen)
}

func TestChangeKindAffectsPOIs(t *testing.T) {
	for _, k := range []ChangeKind{POICreated, POIUpdated, POIDeleted, POIsReordered} {
		assert.True(t, k.AffectsPOIs(), k)
	}
	assert.False(t, TourUpdated.AffectsPOIs())
	assert.False(t, TourDeleted.AffectsPOIs())
}
