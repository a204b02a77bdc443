package model

import "time"

// Coupon is a single-use discount token issued by the nth-order policy.
// It transitions exactly once from unused to used when a checkout
// consumes it, and is never deleted.
type Coupon struct {
	Code                  string     `json:"code"`
	CreatedAt             time.Time  `json:"created_at"`
	Used                  bool       `json:"used"`
	UsedByOrderID         string     `json:"used_by_order_id,omitempty"`
	UsedAt                *time.Time `json:"used_at,omitempty"`
	CreatedForOrderNumber int64      `json:"created_for_order_number"`
}
