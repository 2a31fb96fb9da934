package input

import (
	"sort"
	"sync"
	"time"
)

type latchKey struct {
	key Key
	r   rune
}

// Latch synthesizes key releases for terminals that only report presses
// A key counts as held while presses keep arriving within the hold timeout (auto-repeat)
type Latch struct {
	mu      sync.Mutex
	timeout time.Duration
	held    map[latchKey]Event
}

// NewLatch creates a latch releasing keys timeout after their last press
func NewLatch(timeout time.Duration) *Latch {
	return &Latch{
		timeout: timeout,
		held:    make(map[latchKey]Event),
	}
}

// Press records a key press, returns true if the key was not already held
// Non-key events are ignored
func (l *Latch) Press(ev Event) bool {
	if ev.Kind != KeyPress {
		return false
	}
	k := latchKey{ev.Key, lower(ev.Rune)}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, wasHeld := l.held[k]
	l.held[k] = ev
	return !wasHeld
}

// Expire returns release events for keys whose last press is older than the timeout
// Releases are ordered by press time
func (l *Latch) Expire(now time.Time) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []Event
	for k, ev := range l.held {
		if now.Sub(ev.When) >= l.timeout {
			out = append(out, ev)
			delete(l.held, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].When.Before(out[j].When) })
	for i := range out {
		out[i] = out[i].Released(now)
	}
	return out
}

// ReleaseAll clears every held key, as on focus loss
func (l *Latch) ReleaseAll(now time.Time) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Event, 0, len(l.held))
	for k, ev := range l.held {
		out = append(out, ev)
		delete(l.held, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].When.Before(out[j].When) })
	for i := range out {
		out[i] = out[i].Released(now)
	}
	return out
}

// Held returns the number of keys currently latched
func (l *Latch) Held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.held)
}
