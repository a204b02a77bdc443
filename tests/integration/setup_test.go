// Package integration contains end-to-end tests that exercise the full
// HTTP API over an in-process fiber app. With all state in process
// memory no external infrastructure is needed; each test resets the
// store to a known seed.
//
// Usage:
//
//	go test -v -race ./tests/integration/...
package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/loyalty-cart-system/internal/handler"
	"github.com/fairyhunter13/loyalty-cart-system/internal/model"
	"github.com/fairyhunter13/loyalty-cart-system/internal/repository"
	"github.com/fairyhunter13/loyalty-cart-system/internal/service"
	"github.com/fairyhunter13/loyalty-cart-system/internal/store"
	"github.com/fairyhunter13/loyalty-cart-system/internal/validator"
)

const (
	testCouponInterval = 3
	testDiscountRate   = 0.10
)

func seedCatalog() []model.Product {
	return []model.Product{
		{ID: "p1", Name: "Widget", Price: 500},
		{ID: "p2", Name: "Gadget", Price: 1500},
		{ID: "p3", Name: "Doodad", Price: 250},
	}
}

// testApp bundles the wired application with its backing store so
// tests can reset state between scenarios.
type testApp struct {
	app   *fiber.App
	store *store.Store
}

// newTestApp mirrors the wiring in cmd/api/main.go.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	st := store.New(seedCatalog())

	catalogRepo := repository.NewCatalogRepository(st)
	cartRepo := repository.NewCartRepository(st)
	couponRepo := repository.NewCouponRepository(st)
	orderRepo := repository.NewOrderRepository(st)

	cartService := service.NewCartService(st, catalogRepo, cartRepo)
	couponService := service.NewCouponService(st, couponRepo, orderRepo, testCouponInterval)
	checkoutService := service.NewCheckoutService(st, catalogRepo, cartRepo, couponRepo, orderRepo, couponService, testDiscountRate)
	statsService := service.NewStatsService(orderRepo)

	validate := validator.New()
	cartHandler := handler.NewCartHandler(cartService, validate)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, validate)
	adminHandler := handler.NewAdminHandler(couponService, statsService)
	healthHandler := handler.NewHealthHandler()

	app := fiber.New()
	app.Get("/health", healthHandler.Check)
	app.Get("/api/products", cartHandler.ListProducts)
	app.Post("/api/cart/items", cartHandler.AddItem)
	app.Get("/api/cart/:userID", cartHandler.ViewCart)
	app.Post("/api/checkout", checkoutHandler.Checkout)
	app.Post("/api/admin/coupons", adminHandler.IssueCoupon)
	app.Get("/api/admin/stats", adminHandler.Stats)

	return &testApp{app: app, store: st}
}

// reset restores the store to the seed state.
func (ta *testApp) reset() {
	ta.store.Reset(seedCatalog())
}

func (ta *testApp) get(t *testing.T, path string) (int, map[string]any) {
	t.Helper()
	resp, err := ta.app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	return resp.StatusCode, decode(t, resp)
}

func (ta *testApp) post(t *testing.T, path string, payload any) (int, map[string]any) {
	t.Helper()
	var body bytes.Buffer
	require.NoError(t, json.NewEncoder(&body).Encode(payload))

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := ta.app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode, decode(t, resp)
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

// addItem is a shorthand for a successful cart add.
func (ta *testApp) addItem(t *testing.T, userID, productID string, qty int) {
	t.Helper()
	status, body := ta.post(t, "/api/cart/items", map[string]any{
		"user_id":    userID,
		"product_id": productID,
		"qty":        qty,
	})
	require.Equal(t, http.StatusOK, status, "add item failed: %v", body)
}

// checkout is a shorthand for a successful checkout; returns the body.
func (ta *testApp) checkout(t *testing.T, userID, couponCode string) map[string]any {
	t.Helper()
	payload := map[string]any{"user_id": userID}
	if couponCode != "" {
		payload["coupon_code"] = couponCode
	}
	status, body := ta.post(t, "/api/checkout", payload)
	require.Equal(t, http.StatusCreated, status, "checkout failed: %v", body)
	return body
}

// unusedCouponCode pulls the single unused coupon code from stats.
func (ta *testApp) unusedCouponCode(t *testing.T) string {
	t.Helper()
	status, body := ta.get(t, "/api/admin/stats")
	require.Equal(t, http.StatusOK, status)

	coupons, ok := body["coupons"].([]any)
	require.True(t, ok)

	var codes []string
	for _, raw := range coupons {
		c, ok := raw.(map[string]any)
		require.True(t, ok)
		if c["used"] == false {
			codes = append(codes, c["code"].(string))
		}
	}
	require.Len(t, codes, 1, "expected exactly one unused coupon")
	return codes[0]
}
