package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fairyhunter13/loyalty-cart-system/internal/model"
)

// DefaultCatalog is the built-in seed used when no catalog file is
// configured. Prices are in minor currency units.
func DefaultCatalog() []model.Product {
	return []model.Product{
		{ID: "p1", Name: "Wireless Mouse", Price: 2500},
		{ID: "p2", Name: "Mechanical Keyboard", Price: 8900},
		{ID: "p3", Name: "USB-C Cable", Price: 1200},
		{ID: "p4", Name: "Laptop Stand", Price: 4500},
		{ID: "p5", Name: "Webcam Cover", Price: 500},
	}
}

// LoadCatalog reads a JSON product list from path, or returns the
// built-in seed when path is empty. Each product must have a non-empty
// id and a non-negative price.
func LoadCatalog(path string) ([]model.Product, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("catalog file %s contains no products", path)
	}
	for _, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog file %s: product with empty id", path)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("catalog file %s: product %s has negative price %d", path, p.ID, p.Price)
		}
	}
	return products, nil
}
