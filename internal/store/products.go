package store

import (
	"fmt"
	"sync"

	"comanda/internal/models"
)

// Products is a keyed list of catalog products. Removal is physical:
// menus referencing a removed product keep the dangling id, resolved (or
// not) at render time.
type Products struct {
	mu    sync.RWMutex
	bus   *Bus
	items []models.Product
}

// NewProducts creates an empty products store publishing on bus.
func NewProducts(bus *Bus) *Products {
	return &Products{bus: bus}
}

// Add appends a product, assigning a fresh id when the draft has none.
func (s *Products) Add(draft models.Product) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := draft.Clone()
	if p.ID == "" {
		p.ID = newID()
	}
	s.items = append(s.items, p)

	s.bus.Publish(Event{Store: StoreProducts, Action: ActionAdded, ID: p.ID})
	return p.Clone()
}

// Update replaces the product's fields, keeping its id.
func (s *Products) Update(id string, draft models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			p := draft.Clone()
			p.ID = id
			s.items[i] = p
			s.bus.Publish(Event{Store: StoreProducts, Action: ActionUpdated, ID: id})
			return nil
		}
	}
	return fmt.Errorf("product %s: %w", id, ErrNotFound)
}

// Remove deletes the product from the list.
func (s *Products) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.bus.Publish(Event{Store: StoreProducts, Action: ActionRemoved, ID: id})
			return nil
		}
	}
	return fmt.Errorf("product %s: %w", id, ErrNotFound)
}

// Get returns a copy of the product by id.
func (s *Products) Get(id string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.items {
		if s.items[i].ID == id {
			return s.items[i].Clone(), nil
		}
	}
	return models.Product{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
}

// List returns copies of all products in insertion order.
func (s *Products) List() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, len(s.items))
	for i := range s.items {
		out[i] = s.items[i].Clone()
	}
	return out
}
