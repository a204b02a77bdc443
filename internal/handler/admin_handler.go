package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/loyalty-cart-system/internal/model"
)

// CouponServiceInterface defines the interface for coupon issuance.
type CouponServiceInterface interface {
	AdminIssue() (*model.Coupon, error)
}

// StatsServiceInterface defines the interface for aggregate reads.
type StatsServiceInterface interface {
	Stats() *model.Stats
}

// AdminHandler handles HTTP requests for the admin surface: explicit
// coupon issuance and aggregate stats.
type AdminHandler struct {
	coupons CouponServiceInterface
	stats   StatsServiceInterface
}

// NewAdminHandler creates a new AdminHandler with the given services.
func NewAdminHandler(coupons CouponServiceInterface, stats StatsServiceInterface) *AdminHandler {
	return &AdminHandler{coupons: coupons, stats: stats}
}

// IssueCoupon handles POST /api/admin/coupons. Unlike the automatic
// policy, every unmet precondition is reported to the caller.
func (h *AdminHandler) IssueCoupon(c *fiber.Ctx) error {
	coupon, err := h.coupons.AdminIssue()
	if err != nil {
		return respondServiceError(c, err)
	}

	log.Info().
		Str("coupon_code", coupon.Code).
		Int64("order_count", coupon.CreatedForOrderNumber).
		Msg("coupon issued by admin")

	return c.Status(fiber.StatusCreated).JSON(coupon)
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(h.stats.Stats())
}
