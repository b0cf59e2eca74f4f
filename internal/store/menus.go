package store

import (
	"fmt"
	"sync"

	"comanda/internal/models"
)

// Menus is a keyed list of daily menus. CategoryIDs is derived from the
// referenced products' categories when a menu is saved; if a product's
// category changes later the menu keeps the stale derived set.
type Menus struct {
	mu       sync.RWMutex
	bus      *Bus
	products *Products
	items    []models.Menu
}

// NewMenus creates an empty menus store resolving products through prods.
func NewMenus(bus *Bus, prods *Products) *Menus {
	return &Menus{bus: bus, products: prods}
}

// Add appends a menu, assigning a fresh id when the draft has none and
// deriving its category set from the selected products.
func (s *Menus) Add(draft models.Menu) models.Menu {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := draft.Clone()
	if m.ID == "" {
		m.ID = newID()
	}
	m.CategoryIDs = s.deriveCategories(m.ProductIDs)
	s.items = append(s.items, m)

	s.bus.Publish(Event{Store: StoreMenus, Action: ActionAdded, ID: m.ID})
	return m.Clone()
}

// Update replaces the menu's fields, keeping its id and re-deriving the
// category set from the new product selection.
func (s *Menus) Update(id string, draft models.Menu) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			m := draft.Clone()
			m.ID = id
			m.CategoryIDs = s.deriveCategories(m.ProductIDs)
			s.items[i] = m
			s.bus.Publish(Event{Store: StoreMenus, Action: ActionUpdated, ID: id})
			return nil
		}
	}
	return fmt.Errorf("menu %s: %w", id, ErrNotFound)
}

// Remove deletes the menu from the list.
func (s *Menus) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.bus.Publish(Event{Store: StoreMenus, Action: ActionRemoved, ID: id})
			return nil
		}
	}
	return fmt.Errorf("menu %s: %w", id, ErrNotFound)
}

// Get returns a copy of the menu by id.
func (s *Menus) Get(id string) (models.Menu, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.items {
		if s.items[i].ID == id {
			return s.items[i].Clone(), nil
		}
	}
	return models.Menu{}, fmt.Errorf("menu %s: %w", id, ErrNotFound)
}

// List returns copies of all menus in insertion order.
func (s *Menus) List() []models.Menu {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Menu, len(s.items))
	for i := range s.items {
		out[i] = s.items[i].Clone()
	}
	return out
}

// deriveCategories collects the distinct category ids of the given
// products, in first-seen order. Unknown products and products without a
// category contribute nothing.
func (s *Menus) deriveCategories(productIDs []string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, pid := range productIDs {
		p, err := s.products.Get(pid)
		if err != nil || p.CategoryID == "" {
			continue
		}
		if _, ok := seen[p.CategoryID]; ok {
			continue
		}
		seen[p.CategoryID] = struct{}{}
		out = append(out, p.CategoryID)
	}
	return out
}
