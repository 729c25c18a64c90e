// Package settings holds the single persisted preference: the hour at
// which the logical day rolls over.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shikhr/tuskly/internal/live"
	"github.com/shikhr/tuskly/internal/storage"
)

const (
	keyResetHour     = "reset_hour"
	DefaultResetHour = 0
)

var ErrInvalidResetHour = errors.New("settings: reset hour must be between 0 and 23")

// Storage is the slice of the persistence contract the store needs.
type Storage interface {
	GetSetting(ctx context.Context, key string) (string, error)
	PutSetting(ctx context.Context, key, value string) error
}

type Store struct {
	st     Storage
	broker *live.Broker
}

func NewStore(st Storage, broker *live.Broker) *Store {
	return &Store{st: st, broker: broker}
}

// ResetHour returns the persisted reset hour, defaulting to 0 when
// nothing has been stored yet.
func (s *Store) ResetHour(ctx context.Context) (int, error) {
	raw, err := s.st.GetSetting(ctx, keyResetHour)
	if errors.Is(err, storage.ErrNotFound) {
		return DefaultResetHour, nil
	}
	if err != nil {
		return 0, err
	}
	hour, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("settings: corrupt reset hour %q: %w", raw, err)
	}
	return hour, nil
}

// SetResetHour validates, persists and, when the value actually
// changed, notifies watchers. Publishing only on change is what makes
// WatchResetHour distinct-until-changed.
func (s *Store) SetResetHour(ctx context.Context, hour int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("%w: got %d", ErrInvalidResetHour, hour)
	}
	current, err := s.ResetHour(ctx)
	if err != nil {
		return err
	}
	if err := s.st.PutSetting(ctx, keyResetHour, strconv.Itoa(hour)); err != nil {
		return err
	}
	if hour != current {
		s.broker.Publish(live.TopicSettings)
	}
	return nil
}

// WatchResetHour emits the current reset hour immediately and again on
// every change.
func (s *Store) WatchResetHour(ctx context.Context) (*live.View[int], error) {
	return live.Watch(ctx, s.broker, live.TopicSettings, s.ResetHour)
}
