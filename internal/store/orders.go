package store

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"comanda/internal/models"
)

// ErrNotFound is returned by store lookups and mutations that reference an
// id the store does not hold. Mutations treat it as a silent no-op; the HTTP
// layer turns it into a 404.
var ErrNotFound = errors.New("not found")

// Orders is the authoritative in-memory list of orders for the session.
// The list is kept most-recent-first, which is the display convention of the
// kitchen board. Orders are never physically deleted within a session.
type Orders struct {
	mu   sync.RWMutex
	bus  *Bus
	list []models.Order
	seen map[string]struct{}
	rng  *rand.Rand
}

// NewOrders creates an empty orders store publishing on bus.
func NewOrders(bus *Bus) *Orders {
	return &Orders{
		bus:  bus,
		seen: make(map[string]struct{}),
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Add builds a new order from the given draft and prepends it to the list.
// Missing fields get their defaults: a fresh 6-digit numeric id, status
// EN_PREPARACION and createdAt now. Total is always recomputed from the
// items, whatever the draft carried.
func (s *Orders) Add(draft models.Order) models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := draft.Clone()
	if order.ID == "" {
		order.ID = s.nextID()
	}
	if order.Status == "" {
		order.Status = models.OrderStatusInPreparation
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	order.Total = models.ItemsTotal(order.Items)

	s.list = append([]models.Order{order}, s.list...)

	s.bus.Publish(Event{Store: StoreOrders, Action: ActionAdded, ID: order.ID, Status: string(order.Status)})
	return order.Clone()
}

// SetDelivered marks the order ENTREGADO. The transition is unconditional:
// a cancelled order passed here becomes delivered, matching the behavior
// the board has always had.
func (s *Orders) SetDelivered(id string) error {
	return s.setStatus(id, models.OrderStatusDelivered)
}

// Cancel marks the order CANCELADO, unconditionally (see SetDelivered).
func (s *Orders) Cancel(id string) error {
	return s.setStatus(id, models.OrderStatusCancelled)
}

func (s *Orders) setStatus(id string, status models.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.list {
		if s.list[i].ID == id {
			s.list[i].Status = status
			s.bus.Publish(Event{Store: StoreOrders, Action: ActionStatusChanged, ID: id, Status: string(status)})
			return nil
		}
	}
	return fmt.Errorf("order %s: %w", id, ErrNotFound)
}

// ReplaceItems swaps the order's item list wholesale and recomputes the
// total. This is the only item-level mutation the board offers.
func (s *Orders) ReplaceItems(id string, items []models.OrderItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.list {
		if s.list[i].ID == id {
			s.list[i].Items = append([]models.OrderItem(nil), items...)
			s.list[i].Total = models.ItemsTotal(items)
			s.bus.Publish(Event{Store: StoreOrders, Action: ActionUpdated, ID: id, Status: string(s.list[i].Status)})
			return nil
		}
	}
	return fmt.Errorf("order %s: %w", id, ErrNotFound)
}

// MarkSeen records that the order card has been shown to the operator.
// Seen is process-lifetime state: once marked, an order never reverts to
// new, even if it is mutated later.
func (s *Orders) MarkSeen(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.bus.Publish(Event{Store: StoreOrders, Action: ActionSeen, ID: id})
}

// IsNew reports whether the order exists and has not been marked seen yet.
func (s *Orders) IsNew(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.seen[id]; ok {
		return false
	}
	for i := range s.list {
		if s.list[i].ID == id {
			return true
		}
	}
	return false
}

// Get returns a deep copy of the order, so callers cannot mutate store
// state through aliasing.
func (s *Orders) Get(id string) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.list {
		if s.list[i].ID == id {
			return s.list[i].Clone(), nil
		}
	}
	return models.Order{}, fmt.Errorf("order %s: %w", id, ErrNotFound)
}

// List returns deep copies of all orders, most recent first.
func (s *Orders) List() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, len(s.list))
	for i := range s.list {
		out[i] = s.list[i].Clone()
	}
	return out
}

// InPreparation returns deep copies of the orders still in EN_PREPARACION,
// most recent first. The elapsed-time tracker polls this.
func (s *Orders) InPreparation() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Order
	for i := range s.list {
		if s.list[i].Status == models.OrderStatusInPreparation {
			out = append(out, s.list[i].Clone())
		}
	}
	return out
}

// nextID draws random 6-digit numerals until one is free in the current
// list. Callers hold the write lock.
func (s *Orders) nextID() string {
	for {
		id := fmt.Sprintf("%06d", s.rng.Intn(1000000))
		if !s.holds(id) {
			return id
		}
	}
}

func (s *Orders) holds(id string) bool {
	for i := range s.list {
		if s.list[i].ID == id {
			return true
		}
	}
	return false
}
