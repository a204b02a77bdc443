package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/loyalty-cart-system/internal/model"
)

// CheckoutServiceInterface defines the interface for checkout business logic.
type CheckoutServiceInterface interface {
	Checkout(ctx context.Context, userID, couponCode string) (*model.CheckoutResponse, error)
}

// CheckoutHandler handles HTTP requests for order placement.
type CheckoutHandler struct {
	service   CheckoutServiceInterface
	validator *validator.Validate
}

// NewCheckoutHandler creates a new CheckoutHandler with the given service and validator.
func NewCheckoutHandler(svc CheckoutServiceInterface, v *validator.Validate) *CheckoutHandler {
	return &CheckoutHandler{service: svc, validator: v}
}

// formatCheckoutValidationError converts validator errors into messages
// for the checkout request.
func formatCheckoutValidationError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			field := fe.Field()
			tag := fe.Tag()

			switch field {
			case "UserID":
				if tag == "required" || tag == "notblank" {
					return "invalid request: user_id is required"
				}
				return "invalid request: user_id is invalid"
			case "CouponCode":
				return "invalid request: coupon_code is invalid"
			default:
				if tag == "required" {
					return "invalid request: " + field + " is required"
				}
				return "invalid request: " + field + " is invalid"
			}
		}
	}
	return "invalid request"
}

// Checkout handles POST /api/checkout.
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	var req model.CheckoutRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(codeValidation, "invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(codeValidation, formatCheckoutValidationError(err)))
	}

	resp, err := h.service.Checkout(c.Context(), req.UserID, req.CouponCode)
	if err != nil {
		log.Warn().
			Err(err).
			Str("request_id", c.GetRespHeader("X-Request-ID")).
			Str("user_id", req.UserID).
			Bool("coupon_given", req.CouponCode != "").
			Msg("checkout rejected")
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}
