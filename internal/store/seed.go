package store

import (
	"github.com/shopspring/decimal"

	"comanda/internal/models"
)

// Seed loads the demo catalog the screens show on a fresh start. State is
// in-memory only, so every process start behaves like the original app's
// page reload.
func Seed(categories *Categories, products *Products, menus *Menus) {
	entradas := categories.Add("Entradas", true, 0)
	principales := categories.Add("Platos Principales", true, 0)
	postres := categories.Add("Postres", true, 0)
	bebidas := categories.Add("Bebidas", false, 0)

	empanada := products.Add(models.Product{
		Name:              "Empanada criolla",
		Price:             decimal.NewFromFloat(3.50),
		Description:       "Carne cortada a cuchillo",
		Available:         true,
		VisibleForClients: true,
		CategoryID:        entradas.ID,
	})
	bife := products.Add(models.Product{
		Name:              "Bife de chorizo",
		Price:             decimal.NewFromInt(55),
		Description:       "Con papas o ensalada",
		Available:         true,
		VisibleForClients: true,
		CategoryID:        principales.ID,
	})
	milanesa := products.Add(models.Product{
		Name:              "Milanesa napolitana",
		Price:             decimal.NewFromInt(42),
		Available:         true,
		VisibleForClients: true,
		CategoryID:        principales.ID,
	})
	flan := products.Add(models.Product{
		Name:              "Flan casero",
		Price:             decimal.NewFromInt(12),
		Available:         true,
		VisibleForClients: true,
		CategoryID:        postres.ID,
	})
	products.Add(models.Product{
		Name:       "Limonada",
		Price:      decimal.NewFromInt(8),
		Available:  true,
		CategoryID: bebidas.ID,
	})

	menus.Add(models.Menu{
		Name:        "Menú del día",
		Description: "Entrada + principal + postre",
		Date:        "2024-06-10",
		ProductIDs:  []string{empanada.ID, bife.ID, milanesa.ID, flan.ID},
	})
}
