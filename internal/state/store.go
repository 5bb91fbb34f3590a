package state

import "sync"

// Store owns the authoritative state and exposes Dispatch and Subscribe as
// the only mutation surface. It is passed explicitly to the components that
// need it; there is no package-level instance.
type Store struct {
	mu      sync.Mutex
	state   State
	nextSub int
	subs    map[int]func(old, new State)
}

// NewStore creates a store seeded with the given state.
func NewStore(initial State) *Store {
	return &Store{
		state: initial,
		subs:  make(map[int]func(old, new State)),
	}
}

// State returns the current snapshot. Snapshots are immutable; callers never
// see a partially applied transition.
func (st *Store) State() State {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state
}

// Dispatch runs the reducer and notifies subscribers synchronously, in
// subscription order. The new snapshot is returned.
func (st *Store) Dispatch(a Action) State {
	st.mu.Lock()
	old := st.state
	next := Reduce(old, a)
	st.state = next
	subs := make([]func(old, new State), 0, len(st.subs))
	for i := 0; i < st.nextSub; i++ {
		if fn, ok := st.subs[i]; ok {
			subs = append(subs, fn)
		}
	}
	st.mu.Unlock()

	for _, fn := range subs {
		fn(old, next)
	}
	return next
}

// Subscribe registers a callback invoked after every dispatch with the old
// and new snapshots. The returned function removes the subscription.
func (st *Store) Subscribe(fn func(old, new State)) (unsubscribe func()) {
	st.mu.Lock()
	id := st.nextSub
	st.nextSub++
	st.subs[id] = fn
	st.mu.Unlock()

	return func() {
		st.mu.Lock()
		delete(st.subs, id)
		st.mu.Unlock()
	}
}
