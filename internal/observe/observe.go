// Package observe provides the small subscription primitives behind the
// reactive surfaces of the address book: observers receive the current value
// immediately and again after every committed change until unsubscribed.
package observe

import "sync"

const subscriberBuffer = 16

// Value holds a current value and fans updates out to subscribers.
// The newest value wins: a slow subscriber drops stale intermediate
// values instead of blocking the publisher.
type Value[T any] struct {
	mu     sync.Mutex
	set    bool
	cur    T
	nextID int
	subs   map[int]chan T
	closed bool
}

// NewValue creates an empty Value. Subscribers registered before the first
// Set receive nothing until a value is published.
func NewValue[T any]() *Value[T] {
	return &Value[T]{subs: make(map[int]chan T)}
}

// Set publishes a new current value to all subscribers.
func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}

	v.cur = value
	v.set = true
	for _, ch := range v.subs {
		sendLatest(ch, value)
	}
}

// Get returns the current value and whether one has been published.
func (v *Value[T]) Get() (T, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.cur, v.set
}

// Subscribe registers an observer. The returned channel yields the current
// value immediately (if one exists) and every later Set. The cancel func
// must be called to release the subscription; it closes the channel.
func (v *Value[T]) Subscribe() (<-chan T, func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	ch := make(chan T, subscriberBuffer)
	if v.closed {
		close(ch)

		return ch, func() {}
	}

	id := v.nextID
	v.nextID++
	v.subs[id] = ch

	if v.set {
		sendLatest(ch, v.cur)
	}

	cancel := func() {
		v.mu.Lock()
		defer v.mu.Unlock()

		if sub, ok := v.subs[id]; ok {
			delete(v.subs, id)
			close(sub)
		}
	}

	return ch, cancel
}

// Close tears down all subscriptions. Further Sets are ignored.
func (v *Value[T]) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	v.closed = true
	for id, ch := range v.subs {
		delete(v.subs, id)
		close(ch)
	}
}

// sendLatest pushes value without blocking: when the subscriber's buffer is
// full the oldest pending value is discarded first.
func sendLatest[T any](ch chan T, value T) {
	for {
		select {
		case ch <- value:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

// Hub is a keyed invalidation signal. Mutators notify a key after a commit;
// watchers subscribed to that key re-run their query.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]chan struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]chan struct{})}
}

// Notify wakes every subscriber of key. Notifications coalesce: a
// subscriber that has not consumed the previous signal sees only one.
func (h *Hub) Notify(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs[key] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribe registers a watcher on key. The cancel func releases it.
func (h *Hub) Subscribe(key string) (<-chan struct{}, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan struct{}, 1)
	id := h.nextID
	h.nextID++

	if h.subs[key] == nil {
		h.subs[key] = make(map[int]chan struct{})
	}
	h.subs[key][id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		if keyed, ok := h.subs[key]; ok {
			if sub, ok := keyed[id]; ok {
				delete(keyed, id)
				close(sub)
			}
			if len(keyed) == 0 {
				delete(h.subs, key)
			}
		}
	}

	return ch, cancel
}
