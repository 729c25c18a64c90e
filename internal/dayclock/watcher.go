package dayclock

import (
	"sync"
	"time"
)

// Watcher emits the current logical date on C: once immediately on
// Start, again whenever the reset hour changes, and once more each time
// the wall clock crosses the next reset boundary. Consecutive duplicate
// dates are suppressed. A single timer is armed per boundary and
// re-armed after every emission; Stop cancels any pending wake-up.
type Watcher struct {
	mu         sync.Mutex
	out        chan string
	resetHours <-chan int
	resetHour  int
	last       string
	emitted    bool
	stopCh     chan struct{}
	doneCh     chan struct{}
	started    bool
	stopped    bool

	// Clock is the time source, replaceable in tests. Defaults to
	// time.Now.
	Clock func() time.Time
}

// NewWatcher builds a watcher starting from resetHour. resetHours may
// be nil when the setting can never change; otherwise each value
// received invalidates the pending wake-up and reschedules against the
// new boundary.
func NewWatcher(resetHour int, resetHours <-chan int) *Watcher {
	return &Watcher{
		out:        make(chan string, 1),
		resetHours: resetHours,
		resetHour:  resetHour,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
		Clock:      time.Now,
	}
}

func (w *Watcher) C() <-chan string {
	return w.out
}

func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return
	}
	w.started = true
	go w.loop()
}

func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.started || w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.stopCh)
	w.mu.Unlock()
	<-w.doneCh
}

func (w *Watcher) loop() {
	defer close(w.doneCh)
	defer close(w.out)

	var timer *time.Timer
	for {
		now := w.Clock()
		w.emit(LogicalDate(now, w.resetHour))

		wait := NextBoundary(now, w.resetHour).Sub(now)
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			continue
		case hour := <-w.resetHours:
			w.resetHour = hour
			continue
		case <-w.stopCh:
			stopTimer(timer)
			return
		}
	}
}

// emit delivers date with conflation: an unconsumed older value is
// replaced rather than queued behind.
func (w *Watcher) emit(date string) {
	if w.emitted && date == w.last {
		return
	}
	w.last = date
	w.emitted = true
	select {
	case w.out <- date:
	default:
		select {
		case <-w.out:
		default:
		}
		w.out <- date
	}
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
