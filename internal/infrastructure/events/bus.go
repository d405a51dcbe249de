package events

import (
	"sync"

	"github.com/doeshing/termnamer/internal/ports"
)

// Bus fans session events out to subscribed handlers.
type Bus struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]ports.SessionEventHandler
	order    []int
}

// NewBus returns a bus with no subscribers.
func NewBus() *Bus {
	return &Bus{handlers: make(map[int]ports.SessionEventHandler)}
}

// Subscribe registers h. The returned function removes it and is safe to
// call more than once.
func (b *Bus) Subscribe(h ports.SessionEventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[id] = h
	b.order = append(b.order, id)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.handlers[id]; !ok {
			return
		}
		delete(b.handlers, id)
		for i, v := range b.order {
			if v == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers ev to every handler in subscription order, on the
// caller's goroutine. It reports whether ev is a session event; rename and
// reload are left to the caller.
func (b *Bus) Publish(ev Event) bool {
	switch ev.Kind {
	case KindOpen, KindClose, KindCmd:
	default:
		return false
	}

	for _, h := range b.snapshot() {
		switch ev.Kind {
		case KindOpen:
			h.OnSessionOpened(ev.SessionID)
		case KindClose:
			h.OnSessionClosed(ev.SessionID)
		case KindCmd:
			h.OnCommandObserved(ev.SessionID, ev.Text)
		}
	}
	return true
}

// Len returns the number of subscribers.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.order)
}

func (b *Bus) snapshot() []ports.SessionEventHandler {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]ports.SessionEventHandler, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.handlers[id])
	}
	return out
}

var _ ports.CommandSource = (*Bus)(nil)
