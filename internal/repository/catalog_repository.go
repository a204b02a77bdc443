package repository

import (
	"github.com/fairyhunter13/loyalty-cart-system/internal/model"
	"github.com/fairyhunter13/loyalty-cart-system/internal/store"
)

// CatalogRepository provides read access to the seeded product catalog.
type CatalogRepository struct {
	store *store.Store
}

// NewCatalogRepository creates a new CatalogRepository backed by the given store.
func NewCatalogRepository(s *store.Store) *CatalogRepository {
	return &CatalogRepository{store: s}
}

// List returns all products in seed order.
func (r *CatalogRepository) List() []model.Product {
	var products []model.Product
	r.store.Read(func(st *store.State) {
		products = make([]model.Product, 0, len(st.CatalogIDs))
		for _, id := range st.CatalogIDs {
			products = append(products, st.Catalog[id])
		}
	})
	return products
}

// Get looks up a product by id within a transaction. The second return
// is false when the product is not (or no longer) in the catalog.
func (r *CatalogRepository) Get(tx *store.Tx, id string) (model.Product, bool) {
	p, ok := tx.State().Catalog[id]
	return p, ok
}
