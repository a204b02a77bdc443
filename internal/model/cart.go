package model

// CartItem is a single cart line. A user's cart holds at most one line
// per product; adding the same product again increments Qty.
type CartItem struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

// User holds per-user mutable state. Users are materialized lazily on
// first cart access and never deleted within the process lifetime.
type User struct {
	ID     string
	Cart   []CartItem
	Orders []*Order
}

// CartLine is a cart item joined with its catalog product for display.
// Product is nil when the product has been removed from the catalog
// since the item was added; such lines are excluded from the total.
type CartLine struct {
	ProductID string   `json:"product_id"`
	Qty       int      `json:"qty"`
	Product   *Product `json:"product"`
}

// CartView is the API response DTO for cart reads. Total covers only
// lines whose product still exists in the catalog.
type CartView struct {
	UserID string     `json:"user_id"`
	Items  []CartLine `json:"items"`
	Total  int64      `json:"total"`
}

// AddItemRequest is the DTO for adding a product to a cart.
// Qty is a pointer so an omitted field can default to 1 while an
// explicit zero is still rejected by validation.
type AddItemRequest struct {
	UserID    string `json:"user_id" validate:"required,notblank,max=255"`
	ProductID string `json:"product_id" validate:"required,notblank,max=255"`
	Qty       *int   `json:"qty" validate:"omitempty,gte=1"`
}
