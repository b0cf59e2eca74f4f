package store

import "sync"

// Store names carried on events.
const (
	StoreOrders     = "orders"
	StoreCategories = "categories"
	StoreProducts   = "products"
	StoreMenus      = "menus"
	StoreSession    = "session"
	StoreSettings   = "settings"
)

// Action identifies what a store did to produce an event.
type Action string

const (
	ActionAdded         Action = "added"
	ActionUpdated       Action = "updated"
	ActionRemoved       Action = "removed"
	ActionRestored      Action = "restored"
	ActionReordered     Action = "reordered"
	ActionStatusChanged Action = "status_changed"
	ActionSeen          Action = "seen"
	ActionElapsed       Action = "elapsed"
	ActionSignedIn      Action = "signed_in"
	ActionSignedOut     Action = "signed_out"
	ActionSaved         Action = "saved"
	ActionCleared       Action = "cleared"
)

// Event is the notification a store publishes after a mutation. Connected
// UI clients use it to re-render the affected views.
type Event struct {
	Store  string `json:"store"`
	Action Action `json:"action"`
	ID     string `json:"id,omitempty"`
	Status string `json:"status,omitempty"`
}

// Bus fans store events out to subscribers. Publishing never blocks: a
// subscriber whose buffer is full simply misses the event, the same way the
// UI dropped renders it could not keep up with.
type Bus struct {
	mu   sync.RWMutex
	subs map[int]chan Event
	next int
}

// NewBus creates an event bus with no subscribers.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe registers a new subscriber and returns its channel together with
// a cancel function that removes the subscription and closes the channel.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan Event, buffer)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber that has buffer room.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
