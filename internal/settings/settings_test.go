package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shikhr/tuskly/internal/live"
	"github.com/shikhr/tuskly/internal/storage"
)

type mapStorage struct {
	values map[string]string
}

func newMapStorage() *mapStorage {
	return &mapStorage{values: make(map[string]string)}
}

func (m *mapStorage) GetSetting(_ context.Context, key string) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return value, nil
}

func (m *mapStorage) PutSetting(_ context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func TestResetHourDefaultsToZero(t *testing.T) {
	store := NewStore(newMapStorage(), live.NewBroker())

	hour, err := store.ResetHour(context.Background())
	if err != nil {
		t.Fatalf("reset hour: %v", err)
	}
	if hour != 0 {
		t.Fatalf("expected default 0, got %d", hour)
	}
}

func TestSetResetHourPersists(t *testing.T) {
	store := NewStore(newMapStorage(), live.NewBroker())
	ctx := context.Background()

	if err := store.SetResetHour(ctx, 3); err != nil {
		t.Fatalf("set reset hour: %v", err)
	}
	hour, err := store.ResetHour(ctx)
	if err != nil {
		t.Fatalf("reset hour: %v", err)
	}
	if hour != 3 {
		t.Fatalf("expected 3, got %d", hour)
	}
}

func TestSetResetHourRejectsOutOfRange(t *testing.T) {
	store := NewStore(newMapStorage(), live.NewBroker())
	ctx := context.Background()

	for _, hour := range []int{-1, 24, 100} {
		if err := store.SetResetHour(ctx, hour); !errors.Is(err, ErrInvalidResetHour) {
			t.Fatalf("hour %d: expected ErrInvalidResetHour, got: %v", hour, err)
		}
	}
}

func TestWatchResetHourEmitsCurrentThenChanges(t *testing.T) {
	store := NewStore(newMapStorage(), live.NewBroker())
	ctx := context.Background()

	view, err := store.WatchResetHour(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer view.Close()

	if got := <-view.C(); got != 0 {
		t.Fatalf("expected initial 0, got %d", got)
	}

	if err := store.SetResetHour(ctx, 5); err != nil {
		t.Fatalf("set reset hour: %v", err)
	}
	select {
	case got := <-view.C():
		if got != 5 {
			t.Fatalf("expected 5, got %d", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for change")
	}
}

func TestWatchResetHourIsDistinctUntilChanged(t *testing.T) {
	store := NewStore(newMapStorage(), live.NewBroker())
	ctx := context.Background()

	if err := store.SetResetHour(ctx, 4); err != nil {
		t.Fatalf("set reset hour: %v", err)
	}

	view, err := store.WatchResetHour(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer view.Close()
	<-view.C()

	// Re-setting the same value must not notify.
	if err := store.SetResetHour(ctx, 4); err != nil {
		t.Fatalf("set same reset hour: %v", err)
	}
	select {
	case got := <-view.C():
		t.Fatalf("unexpected emission for unchanged value: %d", got)
	default:
	}
}
