package daemon

import (
	"sync"

	"github.com/1broseidon/stacker/internal/wm"
)

// StateSynchronizer fans state snapshots out to hooks and subscribers.
// Hooks run synchronously on the event loop goroutine; subscribers receive
// snapshots over buffered channels and only ever see the latest one.
type StateSynchronizer struct {
	mu     sync.Mutex
	hooks  []func(wm.Snapshot)
	subs   map[int]chan wm.Snapshot
	nextID int
	last   *wm.Snapshot
}

func NewStateSynchronizer() *StateSynchronizer {
	return &StateSynchronizer{subs: make(map[int]chan wm.Snapshot)}
}

// OnState registers fn to be called with every published snapshot.
func (s *StateSynchronizer) OnState(fn func(wm.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

// Subscribe returns a channel of snapshots and a function that cancels the
// subscription. The latest snapshot, if any, is delivered immediately.
func (s *StateSynchronizer) Subscribe() (<-chan wm.Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan wm.Snapshot, 1)
	if s.last != nil {
		ch <- *s.last
	}
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(ch)
			}
		})
	}
	return ch, cancel
}

// Publish delivers snap to every hook and subscriber. It never blocks on a
// slow subscriber: an undelivered older snapshot is replaced.
func (s *StateSynchronizer) Publish(snap wm.Snapshot) {
	s.mu.Lock()
	s.last = &snap
	hooks := append([]func(wm.Snapshot){}, s.hooks...)
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
	s.mu.Unlock()

	for _, fn := range hooks {
		fn(snap)
	}
}

// Subscribers returns the number of active subscriptions.
func (s *StateSynchronizer) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
