package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/loyalty-cart-system/internal/model"
	"github.com/fairyhunter13/loyalty-cart-system/internal/service"
	"github.com/fairyhunter13/loyalty-cart-system/internal/validator"
)

// mockCheckoutService is a mock implementation of CheckoutServiceInterface.
type mockCheckoutService struct {
	checkoutFn func(ctx context.Context, userID, couponCode string) (*model.CheckoutResponse, error)
}

func (m *mockCheckoutService) Checkout(ctx context.Context, userID, couponCode string) (*model.CheckoutResponse, error) {
	if m.checkoutFn != nil {
		return m.checkoutFn(ctx, userID, couponCode)
	}
	return nil, nil
}

func setupCheckoutApp(mockSvc *mockCheckoutService) *fiber.App {
	app := fiber.New()
	h := NewCheckoutHandler(mockSvc, validator.New())
	app.Post("/api/checkout", h.Checkout)
	return app
}

func TestCheckout_Success(t *testing.T) {
	var gotUser, gotCoupon string
	mockSvc := &mockCheckoutService{
		checkoutFn: func(ctx context.Context, userID, couponCode string) (*model.CheckoutResponse, error) {
			gotUser, gotCoupon = userID, couponCode
			return &model.CheckoutResponse{
				Order: &model.Order{
					ID:             "order-1",
					UserID:         userID,
					Subtotal:       1000,
					DiscountAmount: 100,
					Total:          900,
					CouponCode:     couponCode,
				},
				DiscountRate: 0.10,
			}, nil
		},
	}
	app := setupCheckoutApp(mockSvc)

	resp := postJSON(t, app, "/api/checkout", `{"user_id":"u1","coupon_code":"ABCD1234"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "u1", gotUser)
	assert.Equal(t, "ABCD1234", gotCoupon)

	body := decodeBody(t, resp)
	assert.Equal(t, 0.10, body["discount_rate"])
	order, ok := body["order"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(900), order["total"])
}

func TestCheckout_NoCoupon(t *testing.T) {
	var gotCoupon string
	mockSvc := &mockCheckoutService{
		checkoutFn: func(ctx context.Context, userID, couponCode string) (*model.CheckoutResponse, error) {
			gotCoupon = couponCode
			return &model.CheckoutResponse{Order: &model.Order{ID: "order-1", Total: 1000}}, nil
		},
	}
	app := setupCheckoutApp(mockSvc)

	resp := postJSON(t, app, "/api/checkout", `{"user_id":"u1"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Empty(t, gotCoupon)
}

func TestCheckout_MissingUserID(t *testing.T) {
	app := setupCheckoutApp(&mockCheckoutService{})

	resp := postJSON(t, app, "/api/checkout", `{"coupon_code":"ABCD1234"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, codeValidation, body["code"])
}

func TestCheckout_ServiceErrorMapping(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"cart_empty", service.ErrCartEmpty, http.StatusUnprocessableEntity, codePrecondition},
		{"invalid_cart_total", service.ErrInvalidCartTotal, http.StatusUnprocessableEntity, codePrecondition},
		{"invalid_coupon", service.ErrCouponNotFound, http.StatusNotFound, codeNotFound},
		{"coupon_already_used", service.ErrCouponAlreadyUsed, http.StatusConflict, codeConflict},
		{"unexpected", assert.AnError, http.StatusInternalServerError, codeInternal},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockSvc := &mockCheckoutService{
				checkoutFn: func(ctx context.Context, userID, couponCode string) (*model.CheckoutResponse, error) {
					return nil, tc.err
				},
			}
			app := setupCheckoutApp(mockSvc)

			resp := postJSON(t, app, "/api/checkout", `{"user_id":"u1"}`)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			body := decodeBody(t, resp)
			assert.Equal(t, tc.wantCode, body["code"])
		})
	}
}
