package focus

import (
	"slices"
	"sync"

	"github.com/theoremus-urban-solutions/assettrack/asset"
)

// Tracker owns the focus state for a session. It starts unfocused and has no terminal state.
type Tracker struct {
	mu          sync.RWMutex
	state       State
	subscribers []subscriber
	nextSubID   int
}

type subscriber struct {
	id int
	fn func(State)
}

// NewTracker creates an unfocused tracker
func NewTracker() *Tracker {
	return &Tracker{}
}

// SetFocus handles hover-enter on id
func (t *Tracker) SetFocus(id string) {
	t.set(Focused(id))
}

// ClearFocus handles hover-leave
func (t *Tracker) ClearFocus() {
	t.set(Unfocused())
}

func (t *Tracker) set(next State) {
	t.mu.Lock()
	if t.state == next {
		t.mu.Unlock()
		return
	}
	t.state = next
	subs := slices.Clone(t.subscribers)
	t.mu.Unlock()

	for _, sub := range subs {
		sub.fn(next)
	}
}

// State returns the current focus state
func (t *Tracker) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Resolve looks up the focused id in s, first match wins.
// It reports false when unfocused or when the id is absent from s;
// callers suppress detail display in that case.
func (t *Tracker) Resolve(s asset.Snapshot) (asset.Record, bool) {
	id, ok := t.State().ID()
	if !ok {
		return asset.Record{}, false
	}
	return s.Find(id)
}

// Subscribe registers fn to be called on every focus transition, in registration order.
// Re-entering the same id is not a transition.
func (t *Tracker) Subscribe(fn func(State)) func() {
	t.mu.Lock()
	id := t.nextSubID
	t.nextSubID++
	t.subscribers = append(t.subscribers, subscriber{id: id, fn: fn})
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		t.subscribers = slices.DeleteFunc(t.subscribers, func(sub subscriber) bool { return sub.id == id })
		t.mu.Unlock()
	}
}
