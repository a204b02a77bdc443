package service

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/loyalty-cart-system/internal/model"
	"github.com/fairyhunter13/loyalty-cart-system/internal/store"
	"github.com/fairyhunter13/loyalty-cart-system/pkg/coupongen"
)

// CouponRepositoryInterface defines the interface for coupon data access.
type CouponRepositoryInterface interface {
	Lookup(tx *store.Tx, code string) *model.Coupon
	HasUnused(tx *store.Tx) bool
	Insert(tx *store.Tx, coupon *model.Coupon)
	MarkUsed(tx *store.Tx, coupon *model.Coupon, orderID string, usedAt time.Time)
	All() []*model.Coupon
}

// OrderRepositoryInterface defines the interface for order data access.
type OrderRepositoryInterface interface {
	Append(tx *store.Tx, user *model.User, order *model.Order)
	Count(tx *store.Tx) int64
	IncrementCount(tx *store.Tx) int64
	Aggregate() *model.Stats
}

// CouponService owns the coupon registry and the nth-order issuance
// policy: one coupon per interval of successful checkouts, never more
// than one unused coupon outstanding.
type CouponService struct {
	store      TxBeginner
	couponRepo CouponRepositoryInterface
	orderRepo  OrderRepositoryInterface
	interval   int64
}

// NewCouponService creates a new CouponService. interval is the number
// of orders between issuances (validated at startup by config).
func NewCouponService(s TxBeginner, couponRepo CouponRepositoryInterface, orderRepo OrderRepositoryInterface, interval int64) *CouponService {
	return &CouponService{
		store:      s,
		couponRepo: couponRepo,
		orderRepo:  orderRepo,
		interval:   interval,
	}
}

// IssueIfEligible runs the automatic issuance policy after a checkout
// advanced the counter to orderCount. Unmet preconditions are a silent
// no-op; a nil coupon with nil error means nothing was issued.
// Must be called within the checkout's transaction.
func (s *CouponService) IssueIfEligible(tx *store.Tx, orderCount int64) (*model.Coupon, error) {
	if orderCount <= 0 || orderCount%s.interval != 0 {
		return nil, nil
	}
	if s.couponRepo.HasUnused(tx) {
		// No pile-up: at most one unused coupon outstanding.
		return nil, nil
	}
	return s.issue(tx, orderCount)
}

// AdminIssue is the caller-triggered variant of the issuance policy.
// Each unmet precondition is surfaced as an error instead of a no-op:
//   - ErrNoOrdersYet if no order has been placed
//   - ErrNotNthOrder if the order count is off the interval milestone
//   - ErrUnusedCouponExists if a coupon is still outstanding
func (s *CouponService) AdminIssue() (*model.Coupon, error) {
	tx := s.store.Begin()
	defer tx.Rollback() // Safe: no-op if committed

	orderCount := s.orderRepo.Count(tx)
	if orderCount == 0 {
		return nil, ErrNoOrdersYet
	}
	if orderCount%s.interval != 0 {
		return nil, ErrNotNthOrder
	}
	if s.couponRepo.HasUnused(tx) {
		return nil, ErrUnusedCouponExists
	}

	coupon, err := s.issue(tx, orderCount)
	if err != nil {
		return nil, err
	}
	tx.Commit()
	return coupon, nil
}

// issue generates a fresh code and appends the coupon record. Shared by
// the automatic and admin paths so both produce identical coupons.
func (s *CouponService) issue(tx *store.Tx, orderCount int64) (*model.Coupon, error) {
	code, err := s.uniqueCode(tx)
	if err != nil {
		return nil, err
	}

	coupon := &model.Coupon{
		Code:                  code,
		CreatedAt:             time.Now().UTC(),
		CreatedForOrderNumber: orderCount,
	}
	s.couponRepo.Insert(tx, coupon)

	log.Info().
		Str("coupon_code", coupon.Code).
		Int64("order_count", orderCount).
		Msg("coupon issued")
	return coupon, nil
}

// uniqueCode draws random codes until one is unseen. Collisions are
// vanishingly rare at 36^8; the attempt cap guards against a broken
// entropy source looping forever.
func (s *CouponService) uniqueCode(tx *store.Tx) (string, error) {
	const maxAttempts = 5
	for attempt := 0; attempt < maxAttempts; attempt++ {
		code, err := coupongen.Generate(coupongen.DefaultLength)
		if err != nil {
			return "", fmt.Errorf("generate coupon code: %w", err)
		}
		if s.couponRepo.Lookup(tx, code) == nil {
			return code, nil
		}
	}
	return "", fmt.Errorf("generate coupon code: %d collisions in a row", maxAttempts)
}
