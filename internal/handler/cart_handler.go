package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fairyhunter13/loyalty-cart-system/internal/model"
)

// CartServiceInterface defines the interface for cart business logic.
type CartServiceInterface interface {
	ListProducts(ctx context.Context) []model.Product
	AddItem(ctx context.Context, userID, productID string, qty int) (*model.CartView, error)
	ViewCart(ctx context.Context, userID string) *model.CartView
}

// CartHandler handles HTTP requests for catalog and cart operations.
type CartHandler struct {
	service   CartServiceInterface
	validator *validator.Validate
}

// NewCartHandler creates a new CartHandler with the given service and validator.
func NewCartHandler(svc CartServiceInterface, v *validator.Validate) *CartHandler {
	return &CartHandler{service: svc, validator: v}
}

// formatCartValidationError converts validator errors into messages for
// the add-item request. Unknown fields get a descriptive fallback.
func formatCartValidationError(err error) string {
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
			case "ProductID":
				if tag == "required" || tag == "notblank" {
					return "invalid request: product_id is required"
				}
				return "invalid request: product_id is invalid"
			case "Qty":
				if tag == "gte" {
					return "invalid request: qty must be at least 1"
				}
				return "invalid request: qty is invalid"
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

// ListProducts handles GET /api/products.
func (h *CartHandler) ListProducts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"products": h.service.ListProducts(c.Context())})
}

// AddItem handles POST /api/cart/items. qty defaults to 1 when omitted.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req model.AddItemRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(codeValidation, "invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(codeValidation, formatCartValidationError(err)))
	}

	qty := 1
	if req.Qty != nil {
		qty = *req.Qty
	}

	cart, err := h.service.AddItem(c.Context(), req.UserID, req.ProductID, qty)
	if err != nil {
		return respondServiceError(c, err)
	}

	log.Info().
		Str("user_id", req.UserID).
		Str("product_id", req.ProductID).
		Int("qty", qty).
		Msg("item added to cart")

	return c.Status(fiber.StatusOK).JSON(cart)
}

// ViewCart handles GET /api/cart/:userID. An unknown user yields an
// empty cart, never an error.
func (h *CartHandler) ViewCart(c *fiber.Ctx) error {
	userID := c.Params("userID")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(codeValidation, "invalid request: user_id is required"))
	}
	return c.JSON(h.service.ViewCart(c.Context(), userID))
}
