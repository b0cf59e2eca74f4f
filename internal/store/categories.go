package store

import (
	"fmt"
	"sort"
	"sync"

	"comanda/internal/models"
)

// Categories is the ordered, soft-deletable category list. Active
// categories always hold unique, contiguous ranks 1..N; deleted ones keep
// their record around for restore but are excluded from ordering.
type Categories struct {
	mu    sync.RWMutex
	bus   *Bus
	items []models.Category
}

// NewCategories creates an empty categories store publishing on bus.
func NewCategories(bus *Bus) *Categories {
	return &Categories{bus: bus}
}

// Add appends a category. A rank of zero or less means "next free rank";
// any explicit rank is normalized by the reindex that follows.
func (s *Categories) Add(name string, visible bool, rank int) models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rank <= 0 {
		rank = s.maxActiveRank() + 1
	}
	cat := models.Category{
		ID:      newID(),
		Name:    name,
		Visible: visible,
		Rank:    rank,
	}
	s.items = append(s.items, cat)
	s.items = reindex(s.items)

	s.bus.Publish(Event{Store: StoreCategories, Action: ActionAdded, ID: cat.ID})
	return s.get(cat.ID)
}

// Update renames the category and/or toggles its visibility.
func (s *Categories) Update(id, name string, visible bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Name = name
			s.items[i].Visible = visible
			s.bus.Publish(Event{Store: StoreCategories, Action: ActionUpdated, ID: id})
			return nil
		}
	}
	return fmt.Errorf("category %s: %w", id, ErrNotFound)
}

// Remove soft-deletes the category and compacts the remaining active ranks
// back to a contiguous 1..N.
func (s *Categories) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id && !s.items[i].Deleted {
			s.items[i].Deleted = true
			s.items = reindex(s.items)
			s.bus.Publish(Event{Store: StoreCategories, Action: ActionRemoved, ID: id})
			return nil
		}
	}
	return fmt.Errorf("category %s: %w", id, ErrNotFound)
}

// Restore clears the deleted flag. Restored categories go to the end of the
// active ordering.
func (s *Categories) Restore(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id && s.items[i].Deleted {
			s.items[i].Deleted = false
			s.items[i].Rank = s.maxActiveRankExcept(id) + 1
			s.items = reindex(s.items)
			s.bus.Publish(Event{Store: StoreCategories, Action: ActionRestored, ID: id})
			return nil
		}
	}
	return fmt.Errorf("category %s: %w", id, ErrNotFound)
}

// MoveUp swaps the category's rank with the active category directly above
// it. Moving the top category is a no-op.
func (s *Categories) MoveUp(id string) error {
	return s.swap(id, -1)
}

// MoveDown swaps the category's rank with the active category directly
// below it. Moving the bottom category is a no-op.
func (s *Categories) MoveDown(id string) error {
	return s.swap(id, +1)
}

func (s *Categories) swap(id string, dir int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := s.activeIndexesByRank()
	pos := -1
	for p, idx := range active {
		if s.items[idx].ID == id {
			pos = p
			break
		}
	}
	if pos == -1 {
		return fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	other := pos + dir
	if other < 0 || other >= len(active) {
		return nil
	}

	i, j := active[pos], active[other]
	s.items[i].Rank, s.items[j].Rank = s.items[j].Rank, s.items[i].Rank
	s.bus.Publish(Event{Store: StoreCategories, Action: ActionReordered, ID: id})
	return nil
}

// ApplyUIOrder bulk-reassigns ranks 1..N following a UI-provided
// permutation, last write wins. Ids that are unknown or deleted are skipped;
// active categories missing from the permutation keep their relative order
// after the listed ones.
func (s *Categories) ApplyUIOrder(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rank := 0
	placed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		for i := range s.items {
			if s.items[i].ID == id && !s.items[i].Deleted {
				rank++
				s.items[i].Rank = rank
				placed[id] = struct{}{}
				break
			}
		}
	}
	for _, idx := range s.activeIndexesByRank() {
		if _, ok := placed[s.items[idx].ID]; !ok {
			rank++
			s.items[idx].Rank = rank
		}
	}
	s.items = reindex(s.items)
	s.bus.Publish(Event{Store: StoreCategories, Action: ActionReordered})
}

// Active returns the non-deleted categories sorted by rank.
func (s *Categories) Active() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Category
	for _, idx := range s.activeIndexesByRank() {
		out = append(out, s.items[idx])
	}
	return out
}

// Deleted returns the soft-deleted categories.
func (s *Categories) Deleted() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Category
	for i := range s.items {
		if s.items[i].Deleted {
			out = append(out, s.items[i])
		}
	}
	return out
}

// Get returns the category by id.
func (s *Categories) Get(id string) (models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.items {
		if s.items[i].ID == id {
			return s.items[i], nil
		}
	}
	return models.Category{}, fmt.Errorf("category %s: %w", id, ErrNotFound)
}

func (s *Categories) get(id string) models.Category {
	for i := range s.items {
		if s.items[i].ID == id {
			return s.items[i]
		}
	}
	return models.Category{}
}

func (s *Categories) maxActiveRank() int {
	return s.maxActiveRankExcept("")
}

func (s *Categories) maxActiveRankExcept(skip string) int {
	max := 0
	for i := range s.items {
		if !s.items[i].Deleted && s.items[i].ID != skip && s.items[i].Rank > max {
			max = s.items[i].Rank
		}
	}
	return max
}

func (s *Categories) activeIndexesByRank() []int {
	var idxs []int
	for i := range s.items {
		if !s.items[i].Deleted {
			idxs = append(idxs, i)
		}
	}
	sort.SliceStable(idxs, func(a, b int) bool {
		return s.items[idxs[a]].Rank < s.items[idxs[b]].Rank
	})
	return idxs
}

// reindex rewrites active ranks to a contiguous 1..N, preserving the
// current rank order. Deleted entries are left untouched. It is pure: the
// input slice is not modified.
func reindex(items []models.Category) []models.Category {
	out := make([]models.Category, len(items))
	copy(out, items)

	var active []int
	for i := range out {
		if !out[i].Deleted {
			active = append(active, i)
		}
	}
	sort.SliceStable(active, func(a, b int) bool {
		return out[active[a]].Rank < out[active[b]].Rank
	})
	for rank, idx := range active {
		out[idx].Rank = rank + 1
	}
	return out
}
