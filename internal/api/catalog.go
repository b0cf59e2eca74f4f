package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"comanda/internal/models"
)

type categoryPayload struct {
	Name    string `json:"name" binding:"required"`
	Visible bool   `json:"visible"`
	Order   int    `json:"order" binding:"omitempty,gt=0"`
}

type reorderPayload struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

type productPayload struct {
	Name              string          `json:"name" binding:"required"`
	Price             decimal.Decimal `json:"price"`
	Description       string          `json:"description"`
	Photos            []string        `json:"photos"`
	Available         bool            `json:"available"`
	VisibleForClients bool            `json:"visibleForClients"`
	CategoryID        string          `json:"categoryId"`
}

type menuPayload struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Date        string   `json:"date" binding:"omitempty,datetime=2006-01-02"`
	ProductIDs  []string `json:"productIds"`
}

// Categories

// ListCategories returns the active list (rank order) and the deleted list.
func (s *Server) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"active":  s.deps.Categories.Active(),
		"deleted": s.deps.Categories.Deleted(),
	})
}

// CreateCategory appends a category, at the next rank unless one is given.
func (s *Server) CreateCategory(c *gin.Context) {
	var payload categoryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cat := s.deps.Categories.Add(payload.Name, payload.Visible, payload.Order)
	c.JSON(http.StatusCreated, cat)
}

// UpdateCategory renames or toggles visibility.
func (s *Server) UpdateCategory(c *gin.Context) {
	var payload categoryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	if err := s.deps.Categories.Update(id, payload.Name, payload.Visible); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	cat, _ := s.deps.Categories.Get(id)
	c.JSON(http.StatusOK, cat)
}

// RemoveCategory soft-deletes.
func (s *Server) RemoveCategory(c *gin.Context) {
	if err := s.deps.Categories.Remove(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category removed"})
}

// RestoreCategory brings a soft-deleted category back, at the end.
func (s *Server) RestoreCategory(c *gin.Context) {
	id := c.Param("id")
	if err := s.deps.Categories.Restore(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	cat, _ := s.deps.Categories.Get(id)
	c.JSON(http.StatusOK, cat)
}

// MoveCategoryUp swaps the category with its upper neighbor.
func (s *Server) MoveCategoryUp(c *gin.Context) {
	s.move(c, s.deps.Categories.MoveUp)
}

// MoveCategoryDown swaps the category with its lower neighbor.
func (s *Server) MoveCategoryDown(c *gin.Context) {
	s.move(c, s.deps.Categories.MoveDown)
}

func (s *Server) move(c *gin.Context, apply func(string) error) {
	if err := apply(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	c.JSON(http.StatusOK, s.deps.Categories.Active())
}

// ReorderCategories commits a drag-reorder permutation from the UI.
func (s *Server) ReorderCategories(c *gin.Context) {
	var payload reorderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.deps.Categories.ApplyUIOrder(payload.IDs)
	c.JSON(http.StatusOK, s.deps.Categories.Active())
}

// Products

// ListProducts returns all products.
func (s *Server) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.Products.List())
}

// CreateProduct adds a product to the catalog.
func (s *Server) CreateProduct(c *gin.Context) {
	var payload productPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := s.deps.Products.Add(payload.toModel())
	c.JSON(http.StatusCreated, p)
}

// GetProduct returns one product by id.
func (s *Server) GetProduct(c *gin.Context) {
	p, err := s.deps.Products.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProduct replaces the product's fields.
func (s *Server) UpdateProduct(c *gin.Context) {
	var payload productPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	if err := s.deps.Products.Update(id, payload.toModel()); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	p, _ := s.deps.Products.Get(id)
	c.JSON(http.StatusOK, p)
}

// RemoveProduct deletes the product. Menus referencing it keep the
// dangling id.
func (s *Server) RemoveProduct(c *gin.Context) {
	if err := s.deps.Products.Remove(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product removed"})
}

func (p productPayload) toModel() models.Product {
	return models.Product{
		Name:              p.Name,
		Price:             p.Price,
		Description:       p.Description,
		Photos:            p.Photos,
		Available:         p.Available,
		VisibleForClients: p.VisibleForClients,
		CategoryID:        p.CategoryID,
	}
}

// Menus

// ListMenus returns all menus.
func (s *Server) ListMenus(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.Menus.List())
}

// CreateMenu saves a menu, deriving its category set from the selected
// products.
func (s *Server) CreateMenu(c *gin.Context) {
	var payload menuPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m := s.deps.Menus.Add(payload.toModel())
	c.JSON(http.StatusCreated, m)
}

// GetMenu returns one menu by id.
func (s *Server) GetMenu(c *gin.Context) {
	m, err := s.deps.Menus.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
		return
	}
	c.JSON(http.StatusOK, m)
}

// UpdateMenu replaces the menu, re-deriving its category set.
func (s *Server) UpdateMenu(c *gin.Context) {
	var payload menuPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	if err := s.deps.Menus.Update(id, payload.toModel()); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
		return
	}
	m, _ := s.deps.Menus.Get(id)
	c.JSON(http.StatusOK, m)
}

// RemoveMenu deletes the menu.
func (s *Server) RemoveMenu(c *gin.Context) {
	if err := s.deps.Menus.Remove(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu removed"})
}

func (p menuPayload) toModel() models.Menu {
	return models.Menu{
		Name:        p.Name,
		Description: p.Description,
		Date:        p.Date,
		ProductIDs:  p.ProductIDs,
	}
}
