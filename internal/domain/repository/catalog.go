package repository

import "context"

// CatalogRepository resolves product identifiers to unit prices.
type CatalogRepository interface {
	// UnitPrice returns the product's unit price in minor units or
	// domain ErrNotFound for unknown products.
	UnitPrice(ctx context.Context, productID string) (int64, error)
}
