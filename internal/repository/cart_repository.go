package repository

import (
	"github.com/fairyhunter13/loyalty-cart-system/internal/model"
	"github.com/fairyhunter13/loyalty-cart-system/internal/store"
)

// CartRepository provides data access for per-user carts.
type CartRepository struct {
	store *store.Store
}

// NewCartRepository creates a new CartRepository backed by the given store.
func NewCartRepository(s *store.Store) *CartRepository {
	return &CartRepository{store: s}
}

// GetOrCreateUser returns the user record for userID, materializing an
// empty one on first reference. Must run within a transaction.
func (r *CartRepository) GetOrCreateUser(tx *store.Tx, userID string) *model.User {
	st := tx.State()
	if u, ok := st.Users[userID]; ok {
		return u
	}
	u := &model.User{ID: userID, Cart: []model.CartItem{}, Orders: []*model.Order{}}
	st.Users[userID] = u
	return u
}

// AddLine merges qty into the user's existing line for productID, or
// appends a new line when none exists.
func (r *CartRepository) AddLine(tx *store.Tx, user *model.User, productID string, qty int) {
	for i := range user.Cart {
		if user.Cart[i].ProductID == productID {
			user.Cart[i].Qty += qty
			return
		}
	}
	user.Cart = append(user.Cart, model.CartItem{ProductID: productID, Qty: qty})
}

// Items returns a snapshot copy of the user's cart lines within a
// transaction. Returns an empty slice for an absent user.
func (r *CartRepository) Items(tx *store.Tx, userID string) []model.CartItem {
	return copyItems(tx.State(), userID)
}

// Clear empties the user's cart. The user record itself is kept.
func (r *CartRepository) Clear(tx *store.Tx, userID string) {
	if u, ok := tx.State().Users[userID]; ok {
		u.Cart = []model.CartItem{}
	}
}

// Lines returns the user's cart joined with catalog product data.
// Product is nil for lines whose product left the catalog.
func (r *CartRepository) Lines(userID string) []model.CartLine {
	var lines []model.CartLine
	r.store.Read(func(st *store.State) {
		lines = joinLines(st, userID)
	})
	return lines
}

// LinesInTx is the transactional variant of Lines, used to build the
// updated cart view inside the same transaction as a mutation.
func (r *CartRepository) LinesInTx(tx *store.Tx, userID string) []model.CartLine {
	return joinLines(tx.State(), userID)
}

func copyItems(st *store.State, userID string) []model.CartItem {
	u, ok := st.Users[userID]
	if !ok {
		return []model.CartItem{}
	}
	items := make([]model.CartItem, len(u.Cart))
	copy(items, u.Cart)
	return items
}

func joinLines(st *store.State, userID string) []model.CartLine {
	lines := []model.CartLine{}
	u, ok := st.Users[userID]
	if !ok {
		return lines
	}
	for _, item := range u.Cart {
		line := model.CartLine{ProductID: item.ProductID, Qty: item.Qty}
		if p, ok := st.Catalog[item.ProductID]; ok {
			product := p
			line.Product = &product
		}
		lines = append(lines, line)
	}
	return lines
}
