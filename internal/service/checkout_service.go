package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/loyalty-cart-system/internal/model"
	"github.com/fairyhunter13/loyalty-cart-system/internal/store"
)

// CouponIssuer defines the automatic issuance hook invoked after every
// successful checkout, inside the checkout's own transaction.
type CouponIssuer interface {
	IssueIfEligible(tx *store.Tx, orderCount int64) (*model.Coupon, error)
}

// CheckoutService converts a user's cart plus an optional coupon into
// an immutable order. The whole operation runs under one store
// transaction so concurrent checkouts can never double-spend a coupon
// or skip a counter increment.
type CheckoutService struct {
	store        TxBeginner
	catalogRepo  CatalogRepositoryInterface
	cartRepo     CartRepositoryInterface
	couponRepo   CouponRepositoryInterface
	orderRepo    OrderRepositoryInterface
	issuer       CouponIssuer
	discountRate float64
}

// NewCheckoutService creates a new CheckoutService. discountRate is the
// fraction applied when a coupon is consumed (validated at startup).
func NewCheckoutService(
	s TxBeginner,
	catalogRepo CatalogRepositoryInterface,
	cartRepo CartRepositoryInterface,
	couponRepo CouponRepositoryInterface,
	orderRepo OrderRepositoryInterface,
	issuer CouponIssuer,
	discountRate float64,
) *CheckoutService {
	return &CheckoutService{
		store:        s,
		catalogRepo:  catalogRepo,
		cartRepo:     cartRepo,
		couponRepo:   couponRepo,
		orderRepo:    orderRepo,
		issuer:       issuer,
		discountRate: discountRate,
	}
}

// Checkout places an order for the user's current cart. couponCode may
// be empty. All failure checks run before the first mutation, so a
// failed checkout leaves no observable state change.
// Returns:
//   - ErrCouponNotFound if couponCode is given but unknown
//   - ErrCouponAlreadyUsed if the coupon was already consumed
//   - ErrCartEmpty if the user has no cart lines
//   - ErrInvalidCartTotal if the computed subtotal is not positive
func (s *CheckoutService) Checkout(ctx context.Context, userID, couponCode string) (*model.CheckoutResponse, error) {
	tx := s.store.Begin()
	defer tx.Rollback() // Safe: no-op if committed

	// 1. Resolve the coupon before touching anything.
	var coupon *model.Coupon
	if couponCode != "" {
		coupon = s.couponRepo.Lookup(tx, couponCode)
		if coupon == nil {
			return nil, ErrCouponNotFound
		}
		if coupon.Used {
			return nil, ErrCouponAlreadyUsed
		}
	}

	// 2. Price the cart with live catalog data. Lines whose product
	// left the catalog contribute zero rather than failing the order.
	items := s.cartRepo.Items(tx, userID)
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}
	var subtotal int64
	for _, item := range items {
		product, ok := s.catalogRepo.Get(tx, item.ProductID)
		if !ok {
			continue
		}
		subtotal += product.Price * int64(item.Qty)
	}
	if subtotal <= 0 {
		// Unreachable with positive quantities and positive catalog
		// prices, but a zero-priced or fully orphaned cart lands here.
		return nil, ErrInvalidCartTotal
	}

	// 3-4. Apply the discount, clamped so total never goes negative.
	var discountAmount int64
	appliedRate := 0.0
	if coupon != nil {
		discountAmount = int64(math.Round(float64(subtotal) * s.discountRate))
		if discountAmount > subtotal {
			discountAmount = subtotal
		}
		appliedRate = s.discountRate
	}
	total := subtotal - discountAmount

	// 5. Snapshot the order. From here on every step must complete.
	now := time.Now().UTC()
	order := &model.Order{
		ID:             uuid.NewString(),
		UserID:         userID,
		Items:          items,
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		Total:          total,
		CreatedAt:      now,
	}

	// 6. Consume the coupon.
	if coupon != nil {
		order.CouponCode = coupon.Code
		s.couponRepo.MarkUsed(tx, coupon, order.ID, now)
	}

	// 7. Record the order and clear the cart (the user record stays).
	user := s.cartRepo.GetOrCreateUser(tx, userID)
	s.orderRepo.Append(tx, user, order)
	s.cartRepo.Clear(tx, userID)

	// 8-9. Advance the counter and run the issuance policy on it.
	orderCount := s.orderRepo.IncrementCount(tx)
	if _, err := s.issuer.IssueIfEligible(tx, orderCount); err != nil {
		// Issuance failure must not lose the already-built order; the
		// next milestone checkout or an admin issue can catch up.
		log.Error().Err(err).Int64("order_count", orderCount).Msg("coupon issuance failed after checkout")
	}

	tx.Commit()

	log.Info().
		Str("order_id", order.ID).
		Str("user_id", userID).
		Int64("subtotal", subtotal).
		Int64("discount_amount", discountAmount).
		Int64("total", total).
		Int64("order_count", orderCount).
		Bool("coupon_used", coupon != nil).
		Msg("checkout completed")

	return &model.CheckoutResponse{Order: order, DiscountRate: appliedRate}, nil
}
