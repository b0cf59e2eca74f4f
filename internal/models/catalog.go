package models

import "github.com/shopspring/decimal"

// Category classifies products on the back-office screens. Active categories
// keep unique, contiguous ranks; removal is a soft delete so a category can
// be restored later.
type Category struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
	Rank    int    `json:"order"`
	Deleted bool   `json:"deleted"`
}

// Product is a sellable catalog item. CategoryID is an optional reference
// resolved at render time; nothing enforces it stays valid.
type Product struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Price             decimal.Decimal `json:"price"`
	Description       string          `json:"description,omitempty"`
	Photos            []string        `json:"photos,omitempty"`
	Available         bool            `json:"available"`
	VisibleForClients bool            `json:"visibleForClients"`
	CategoryID        string          `json:"categoryId,omitempty"`
}

// Clone returns a copy of the product with its own photos slice.
func (p Product) Clone() Product {
	dup := p
	dup.Photos = make([]string, len(p.Photos))
	copy(dup.Photos, p.Photos)
	return dup
}

// Menu groups products for a calendar date. CategoryIDs is derived from the
// categories of the selected products when the menu is saved and is not kept
// in sync afterwards.
type Menu struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Date        string   `json:"date,omitempty"`
	CategoryIDs []string `json:"categoryIds"`
	ProductIDs  []string `json:"productIds"`
}

// Clone returns a copy of the menu with its own id slices.
func (m Menu) Clone() Menu {
	dup := m
	dup.CategoryIDs = append([]string(nil), m.CategoryIDs...)
	dup.ProductIDs = append([]string(nil), m.ProductIDs...)
	return dup
}
