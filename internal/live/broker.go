// Package live reproduces the store's query-invalidation-on-write
// behavior as an explicit publish/subscribe mechanism. Mutating calls
// publish the topics they touched; every subscription on an affected
// topic re-runs its query and has the fresh snapshot delivered before
// the publish returns.
package live

import (
	"context"
	"sync"
)

type Topic string

const (
	TopicGoals    Topic = "goals"
	TopicTasks    Topic = "tasks"
	TopicLogs     Topic = "completion_logs"
	TopicSettings Topic = "settings"
)

type subscriber interface {
	refresh()
}

// Broker fans mutation notifications out to live query subscriptions.
// Publish runs synchronously: when it returns, every subscription on the
// topic holds a snapshot at least as new as the mutation that triggered
// it.
type Broker struct {
	mu   sync.Mutex
	subs map[Topic]map[int64]subscriber
	next int64
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[Topic]map[int64]subscriber)}
}

func (b *Broker) Publish(topics ...Topic) {
	for _, topic := range topics {
		for _, sub := range b.snapshotSubs(topic) {
			sub.refresh()
		}
	}
}

func (b *Broker) snapshotSubs(topic Topic) []subscriber {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]subscriber, 0, len(b.subs[topic]))
	for _, sub := range b.subs[topic] {
		out = append(out, sub)
	}
	return out
}

func (b *Broker) add(topic Topic, sub subscriber) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int64]subscriber)
	}
	b.subs[topic][b.next] = sub
	return b.next
}

func (b *Broker) remove(topic Topic, id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs[topic], id)
}

// View is a live query result. Updates arrive on C with conflation:
// the channel buffers exactly one snapshot, and a newer snapshot
// replaces an unconsumed older one, so a slow reader always sees the
// latest state rather than a backlog.
type View[T any] struct {
	broker *Broker
	topic  Topic
	id     int64
	query  func(context.Context) (T, error)

	mu     sync.Mutex
	closed bool
	ch     chan T
}

// Watch subscribes query to topic on the broker. The current snapshot
// is queried and delivered immediately; afterwards every Publish on the
// topic re-runs the query. Close the view to stop receiving updates.
func Watch[T any](ctx context.Context, b *Broker, topic Topic, query func(context.Context) (T, error)) (*View[T], error) {
	initial, err := query(ctx)
	if err != nil {
		return nil, err
	}
	v := &View[T]{
		broker: b,
		topic:  topic,
		query:  query,
		ch:     make(chan T, 1),
	}
	v.ch <- initial
	v.id = b.add(topic, v)
	// A mutation published between the initial query and registration
	// would be invisible to this view. Re-running the query now closes
	// that window; conflation replaces the initial snapshot.
	v.refresh()
	return v, nil
}

func (v *View[T]) C() <-chan T {
	return v.ch
}

func (v *View[T]) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	v.mu.Unlock()
	v.broker.remove(v.topic, v.id)
}

func (v *View[T]) refresh() {
	// Query errors here mean the local store failed; the stale snapshot
	// stays in place and the caller of the mutating call still gets its
	// own error from storage.
	value, err := v.query(context.Background())
	if err != nil {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	select {
	case v.ch <- value:
	default:
		select {
		case <-v.ch:
		default:
		}
		v.ch <- value
	}
}
