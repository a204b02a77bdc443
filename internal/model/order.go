package model

import "time"

// Order is an immutable record of a completed checkout. Items is a
// snapshot of the cart lines at checkout time; all amounts are in
// minor currency units.
type Order struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Items          []CartItem `json:"items"`
	Subtotal       int64      `json:"subtotal"`
	DiscountAmount int64      `json:"discount_amount"`
	Total          int64      `json:"total"`
	CouponCode     string     `json:"coupon_code,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// CheckoutRequest is the DTO for placing an order.
type CheckoutRequest struct {
	UserID     string `json:"user_id" validate:"required,notblank,max=255"`
	CouponCode string `json:"coupon_code" validate:"omitempty,max=255"`
}

// CheckoutResponse pairs the created order with the discount rate that
// was actually applied (0 when no coupon was used).
type CheckoutResponse struct {
	Order        *Order  `json:"order"`
	DiscountRate float64 `json:"discount_rate"`
}

// Stats is the aggregate view over the full order and coupon history.
type Stats struct {
	OrderCount          int64     `json:"order_count"`
	TotalItemsPurchased int64     `json:"total_items_purchased"`
	TotalPurchaseAmount int64     `json:"total_purchase_amount"`
	TotalDiscountAmount int64     `json:"total_discount_amount"`
	Coupons             []*Coupon `json:"coupons"`
}
