package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comanda/internal/models"
)

func TestMenusDeriveCategoriesAtSaveTime(t *testing.T) {
	bus := NewBus()
	products := NewProducts(bus)
	menus := NewMenus(bus, products)

	bife := products.Add(models.Product{Name: "Bife", Price: decimal.NewFromInt(55), CategoryID: "principales"})
	flan := products.Add(models.Product{Name: "Flan", Price: decimal.NewFromInt(12), CategoryID: "postres"})
	agua := products.Add(models.Product{Name: "Agua", Price: decimal.NewFromInt(4), CategoryID: "principales"})

	menu := menus.Add(models.Menu{
		Name:       "Menú del día",
		Date:       "2024-06-10",
		ProductIDs: []string{bife.ID, flan.ID, agua.ID, "dangling"},
	})

	// Distinct categories in first-seen order; unknown products contribute nothing.
	assert.Equal(t, []string{"principales", "postres"}, menu.CategoryIDs)
}

func TestMenusDerivedSetGoesStale(t *testing.T) {
	bus := NewBus()
	products := NewProducts(bus)
	menus := NewMenus(bus, products)

	bife := products.Add(models.Product{Name: "Bife", Price: decimal.NewFromInt(55), CategoryID: "principales"})
	menu := menus.Add(models.Menu{Name: "Parrilla", ProductIDs: []string{bife.ID}})
	require.Equal(t, []string{"principales"}, menu.CategoryIDs)

	// Re-categorizing the product does not touch the saved menu.
	moved := bife
	moved.CategoryID = "especiales"
	require.NoError(t, products.Update(bife.ID, moved))

	got, err := menus.Get(menu.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"principales"}, got.CategoryIDs)

	// Saving the menu again re-derives.
	require.NoError(t, menus.Update(menu.ID, got))
	got, err = menus.Get(menu.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"especiales"}, got.CategoryIDs)
}

func TestProductsRemoveLeavesDanglingMenuRefs(t *testing.T) {
	bus := NewBus()
	products := NewProducts(bus)
	menus := NewMenus(bus, products)

	flan := products.Add(models.Product{Name: "Flan", Price: decimal.NewFromInt(12), CategoryID: "postres"})
	menu := menus.Add(models.Menu{Name: "Dulces", ProductIDs: []string{flan.ID}})

	require.NoError(t, products.Remove(flan.ID))

	// No referential integrity: the menu keeps the id.
	got, err := menus.Get(menu.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{flan.ID}, got.ProductIDs)
	_, err = products.Get(flan.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductsCRUD(t *testing.T) {
	products := NewProducts(NewBus())

	p := products.Add(models.Product{
		Name:      "Empanada",
		Price:     decimal.NewFromFloat(3.50),
		Photos:    []string{"data:image/png;base64,AAA"},
		Available: true,
	})
	require.NotEmpty(t, p.ID)

	updated := p
	updated.Name = "Empanada criolla"
	require.NoError(t, products.Update(p.ID, updated))

	got, err := products.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Empanada criolla", got.Name)

	// Get hands out copies, not aliases.
	got.Photos[0] = "tampered"
	fresh, err := products.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAA", fresh.Photos[0])

	assert.ErrorIs(t, products.Update("nope", updated), ErrNotFound)
	assert.ErrorIs(t, products.Remove("nope"), ErrNotFound)
}
