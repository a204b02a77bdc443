package model

// Product is a catalog entry. Prices are integers in minor currency
// units (cents). The catalog is seeded at startup and never mutated.
type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}
