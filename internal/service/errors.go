package service

import "errors"

var (
	// ErrInvalidRequest is returned when request data is invalid or incomplete
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidQty is returned when a cart quantity is zero or negative
	ErrInvalidQty = errors.New("invalid quantity")

	// ErrProductNotFound is returned when a product id is not in the catalog
	ErrProductNotFound = errors.New("product not found")

	// ErrCouponNotFound is returned when a coupon code does not exist
	ErrCouponNotFound = errors.New("invalid coupon")

	// ErrCouponAlreadyUsed is returned when a checkout presents a consumed coupon
	ErrCouponAlreadyUsed = errors.New("coupon already used")

	// ErrCartEmpty is returned when checking out with no cart lines
	ErrCartEmpty = errors.New("cart is empty")

	// ErrInvalidCartTotal is returned when the computed subtotal is not positive
	ErrInvalidCartTotal = errors.New("invalid cart total")

	// ErrNoOrdersYet is returned by admin issuance before any order exists
	ErrNoOrdersYet = errors.New("no orders yet")

	// ErrNotNthOrder is returned by admin issuance off the interval milestone
	ErrNotNthOrder = errors.New("order count is not at an issuance milestone")

	// ErrUnusedCouponExists is returned when issuing while a coupon is outstanding
	ErrUnusedCouponExists = errors.New("an unused coupon already exists")
)
