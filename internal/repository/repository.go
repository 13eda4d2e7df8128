package repository

import (
	"context"

	"product-api/internal/database"
	"product-api/internal/model"
)

// ProductRepository defines the interface for product data access operations.
// Every method runs a single statement through the supplied session, and
// methods addressing one product return (nil, nil) when the ID does not exist.
type ProductRepository interface {
	// Create inserts a product and returns it with its assigned ID.
	Create(ctx context.Context, db database.Querier, in *model.ProductCreate) (*model.Product, error)

	// List retrieves all products ordered by ID.
	List(ctx context.Context, db database.Querier) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, db database.Querier, id int64) (*model.Product, error)

	// Update applies the non-nil fields of in to the product and returns the result.
	Update(ctx context.Context, db database.Querier, id int64, in *model.ProductUpdate) (*model.Product, error)

	// Delete removes a product and returns its state prior to deletion.
	Delete(ctx context.Context, db database.Querier, id int64) (*model.Product, error)

	// Count returns the number of stored products.
	Count(ctx context.Context, db database.Querier) (int64, error)
}
