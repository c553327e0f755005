package tracking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/example/pizzaria/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	events chan models.StatusEvent
	once   sync.Once
	err    error
}

func newFakeSource() *fakeSource {
	return &fakeSource{events: make(chan models.StatusEvent, 16)}
}

func (f *fakeSource) SubscribeStatus(ctx context.Context, orderID string) (<-chan models.StatusEvent, func(), error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	cancel := func() { f.once.Do(func() { close(f.events) }) }
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return f.events, cancel, nil
}

func (f *fakeSource) publish(orderID, status string) {
	f.events <- models.StatusEvent{OrderID: orderID, Status: status, UpdatedAt: time.Now()}
}

func TestProject(t *testing.T) {
	tests := map[string]Stage{
		"pendente":           StageReceived,
		"pending":            StageReceived,
		"preparando":         StagePreparing,
		"em preparo":         StagePreparing,
		"pronto":             StagePreparing,
		"em rota de entrega": StageDelivery,
		"saiu para entrega":  StageDelivery,
		"entregue":           StageDelivered,
		"Entregue ":          StageDelivered,
		"desconhecido":       StageReceived,
		"":                   StageReceived,
		"cancelado":          StageReceived,
	}
	for status, want := range tests {
		assert.Equal(t, want, Project(status), status)
	}
}

func TestStageProgress(t *testing.T) {
	assert.Equal(t, 25, StageReceived.Progress())
	assert.Equal(t, 50, StagePreparing.Progress())
	assert.Equal(t, 75, StageDelivery.Progress())
	assert.Equal(t, 100, StageDelivered.Progress())
	assert.Equal(t, "Saiu para Entrega", StageDelivery.Label())
}

func TestNewUpdateCancelled(t *testing.T) {
	u := NewUpdate("o1", models.StatusCancelled, time.Now())
	assert.True(t, u.Cancelled)
	assert.Equal(t, StageReceived, u.Stage)
}

func status(s string) Baseline {
	return func(context.Context) (string, error) { return s, nil }
}

func next(t *testing.T, updates <-chan Update) Update {
	t.Helper()
	select {
	case u, ok := <-updates:
		require.True(t, ok, "updates closed")
		return u
	case <-time.After(2 * time.Second):
		t.Fatal("no update")
		return Update{}
	}
}

func TestWatchDeduplicates(t *testing.T) {
	src := newFakeSource()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, unsubscribe, err := NewProjector(src).Watch(ctx, "o1", status(models.StatusPending))
	require.NoError(t, err)
	defer unsubscribe()

	src.publish("o1", models.StatusPending)
	src.publish("o1", models.StatusCooking)
	src.publish("o1", models.StatusCooking)
	src.publish("o2", models.StatusDelivered)
	src.publish("o1", models.StatusOnTheWay)

	u := next(t, updates)
	assert.Equal(t, models.StatusCooking, u.Status)
	assert.Equal(t, StagePreparing, u.Stage)
	assert.Equal(t, 50, u.Progress)

	u = next(t, updates)
	assert.Equal(t, models.StatusOnTheWay, u.Status)
	assert.Equal(t, StageDelivery, u.Stage)
}

func TestWatchClosesOnUnsubscribe(t *testing.T) {
	src := newFakeSource()
	updates, unsubscribe, err := NewProjector(src).Watch(context.Background(), "o1", status(""))
	require.NoError(t, err)

	unsubscribe()

	select {
	case _, ok := <-updates:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("updates not closed")
	}
}

func TestWatchClosesOnContextCancel(t *testing.T) {
	src := newFakeSource()
	ctx, cancel := context.WithCancel(context.Background())
	updates, _, err := NewProjector(src).Watch(ctx, "o1", status(""))
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-updates:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("updates not closed")
	}
}

func TestWatchSubscribeError(t *testing.T) {
	src := newFakeSource()
	src.err = errors.New("redis down")

	_, _, err := NewProjector(src).Watch(context.Background(), "o1", status(""))
	assert.EqualError(t, err, "redis down")
}

func TestWatchKeepsChangesPublishedWhileLoading(t *testing.T) {
	src := newFakeSource()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// the status changes after subscribing but before the caller's read returns
	updates, unsubscribe, err := NewProjector(src).Watch(ctx, "o1", func(context.Context) (string, error) {
		src.publish("o1", models.StatusCooking)
		return models.StatusPending, nil
	})
	require.NoError(t, err)
	defer unsubscribe()

	u := next(t, updates)
	assert.Equal(t, models.StatusCooking, u.Status)
	assert.Equal(t, StagePreparing, u.Stage)
}

func TestWatchBaselineError(t *testing.T) {
	src := newFakeSource()
	boom := errors.New("order not found")

	_, _, err := NewProjector(src).Watch(context.Background(), "o1", func(context.Context) (string, error) {
		return "", boom
	})
	assert.ErrorIs(t, err, boom)

	select {
	case _, ok := <-src.events:
		assert.False(t, ok, "subscription not released")
	case <-time.After(2 * time.Second):
		t.Fatal("subscription not released")
	}
}
