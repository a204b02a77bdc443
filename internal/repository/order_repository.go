package repository

import (
	"github.com/fairyhunter13/loyalty-cart-system/internal/model"
	"github.com/fairyhunter13/loyalty-cart-system/internal/store"
)

// OrderRepository provides data access for the order history and the
// global order counter.
type OrderRepository struct {
	store *store.Store
}

// NewOrderRepository creates a new OrderRepository backed by the given store.
func NewOrderRepository(s *store.Store) *OrderRepository {
	return &OrderRepository{store: s}
}

// Append records a completed order in the global history and in the
// owning user's history. Orders are immutable once appended.
func (r *OrderRepository) Append(tx *store.Tx, user *model.User, order *model.Order) {
	st := tx.State()
	st.Orders = append(st.Orders, order)
	user.Orders = append(user.Orders, order)
}

// Count returns the current global order count.
func (r *OrderRepository) Count(tx *store.Tx) int64 {
	return tx.State().OrderCount
}

// IncrementCount advances the global order counter by one and returns
// the new value.
func (r *OrderRepository) IncrementCount(tx *store.Tx) int64 {
	tx.State().OrderCount++
	return tx.State().OrderCount
}

// Aggregate folds the full order and coupon history into a Stats view
// under a single read lock, so the totals are mutually consistent.
func (r *OrderRepository) Aggregate() *model.Stats {
	stats := &model.Stats{}
	r.store.Read(func(st *store.State) {
		stats.OrderCount = st.OrderCount
		for _, o := range st.Orders {
			for _, item := range o.Items {
				stats.TotalItemsPurchased += int64(item.Qty)
			}
			stats.TotalPurchaseAmount += o.Total
			stats.TotalDiscountAmount += o.DiscountAmount
		}
		stats.Coupons = copyCoupons(st)
	})
	return stats
}
