package models

// NavItem is one entry of the sidebar navigation.
type NavItem struct {
	Path  string `json:"path"`
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

// DefaultNav is the fixed navigation config consumed by the sidebar.
// It is hardcoded and never persisted.
var DefaultNav = []NavItem{
	{Path: "/orders", Icon: "receipt_long", Label: "Pedidos"},
	{Path: "/categories", Icon: "category", Label: "Categorías"},
	{Path: "/products", Icon: "restaurant_menu", Label: "Productos"},
	{Path: "/menus", Icon: "menu_book", Label: "Menús"},
	{Path: "/settings", Icon: "settings", Label: "Configuración"},
}
