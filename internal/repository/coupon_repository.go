package repository

import (
	"time"

	"github.com/fairyhunter13/loyalty-cart-system/internal/model"
	"github.com/fairyhunter13/loyalty-cart-system/internal/store"
)

// CouponRepository provides data access for the coupon registry.
// Coupons are append-only; the only mutation is the unused→used
// transition performed by MarkUsed.
type CouponRepository struct {
	store *store.Store
}

// NewCouponRepository creates a new CouponRepository backed by the given store.
func NewCouponRepository(s *store.Store) *CouponRepository {
	return &CouponRepository{store: s}
}

// Lookup returns the coupon with the given code, or nil when the code
// is empty or unknown. Exact match only.
func (r *CouponRepository) Lookup(tx *store.Tx, code string) *model.Coupon {
	if code == "" {
		return nil
	}
	for _, c := range tx.State().Coupons {
		if c.Code == code {
			return c
		}
	}
	return nil
}

// HasUnused reports whether any issued coupon is still unconsumed.
func (r *CouponRepository) HasUnused(tx *store.Tx) bool {
	for _, c := range tx.State().Coupons {
		if !c.Used {
			return true
		}
	}
	return false
}

// Insert appends a newly issued coupon to the registry.
func (r *CouponRepository) Insert(tx *store.Tx, coupon *model.Coupon) {
	st := tx.State()
	st.Coupons = append(st.Coupons, coupon)
}

// MarkUsed transitions a coupon to used and binds the consuming order.
func (r *CouponRepository) MarkUsed(tx *store.Tx, coupon *model.Coupon, orderID string, usedAt time.Time) {
	coupon.Used = true
	coupon.UsedByOrderID = orderID
	at := usedAt
	coupon.UsedAt = &at
}

// All returns a snapshot copy of every issued coupon in issue order.
func (r *CouponRepository) All() []*model.Coupon {
	var coupons []*model.Coupon
	r.store.Read(func(st *store.State) {
		coupons = copyCoupons(st)
	})
	return coupons
}

func copyCoupons(st *store.State) []*model.Coupon {
	coupons := make([]*model.Coupon, 0, len(st.Coupons))
	for _, c := range st.Coupons {
		cc := *c
		if c.UsedAt != nil {
			at := *c.UsedAt
			cc.UsedAt = &at
		}
		coupons = append(coupons, &cc)
	}
	return coupons
}
