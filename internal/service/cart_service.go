package service

import (
	"context"

	"github.com/fairyhunter13/loyalty-cart-system/internal/model"
	"github.com/fairyhunter13/loyalty-cart-system/internal/store"
)

// CatalogRepositoryInterface defines the interface for catalog data access.
type CatalogRepositoryInterface interface {
	List() []model.Product
	Get(tx *store.Tx, id string) (model.Product, bool)
}

// CartRepositoryInterface defines the interface for cart data access.
type CartRepositoryInterface interface {
	GetOrCreateUser(tx *store.Tx, userID string) *model.User
	AddLine(tx *store.Tx, user *model.User, productID string, qty int)
	Items(tx *store.Tx, userID string) []model.CartItem
	Clear(tx *store.Tx, userID string)
	Lines(userID string) []model.CartLine
	LinesInTx(tx *store.Tx, userID string) []model.CartLine
}

// TxBeginner defines the interface for beginning store transactions.
type TxBeginner interface {
	Begin() *store.Tx
}

// CartService provides business logic for cart operations.
type CartService struct {
	store       TxBeginner
	catalogRepo CatalogRepositoryInterface
	cartRepo    CartRepositoryInterface
}

// NewCartService creates a new CartService with the given store and repositories.
func NewCartService(s TxBeginner, catalogRepo CatalogRepositoryInterface, cartRepo CartRepositoryInterface) *CartService {
	return &CartService{
		store:       s,
		catalogRepo: catalogRepo,
		cartRepo:    cartRepo,
	}
}

// ListProducts returns the full catalog in seed order.
func (s *CartService) ListProducts(ctx context.Context) []model.Product {
	return s.catalogRepo.List()
}

// AddItem adds qty of a product to the user's cart, merging into an
// existing line for the same product. The user record is materialized
// on first reference. Returns the updated cart view.
// Returns:
//   - ErrInvalidQty if qty is not a positive integer
//   - ErrProductNotFound if the product is not in the catalog
func (s *CartService) AddItem(ctx context.Context, userID, productID string, qty int) (*model.CartView, error) {
	// Defense-in-depth: the handler validates, but the invariant that
	// every cart line has positive qty is enforced here too.
	if userID == "" || productID == "" {
		return nil, ErrInvalidRequest
	}
	if qty <= 0 {
		return nil, ErrInvalidQty
	}

	tx := s.store.Begin()
	defer tx.Rollback() // Safe: no-op if committed

	if _, ok := s.catalogRepo.Get(tx, productID); !ok {
		return nil, ErrProductNotFound
	}

	user := s.cartRepo.GetOrCreateUser(tx, userID)
	s.cartRepo.AddLine(tx, user, productID, qty)

	view := buildCartView(userID, s.cartRepo.LinesInTx(tx, userID))
	tx.Commit()
	return view, nil
}

// ViewCart returns the user's cart joined with catalog data plus the
// computed total. An absent user yields an empty cart; never errors.
func (s *CartService) ViewCart(ctx context.Context, userID string) *model.CartView {
	return buildCartView(userID, s.cartRepo.Lines(userID))
}

// buildCartView computes the cart total over lines whose product still
// exists in the catalog; orphaned lines are shown but contribute zero.
func buildCartView(userID string, lines []model.CartLine) *model.CartView {
	var total int64
	for _, line := range lines {
		if line.Product == nil {
			continue
		}
		total += line.Product.Price * int64(line.Qty)
	}
	return &model.CartView{UserID: userID, Items: lines, Total: total}
}
