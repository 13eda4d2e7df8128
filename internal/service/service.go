package service

import (
	"context"

	"product-api/internal/database"
	"product-api/internal/model"
)

// ProductService defines operations for product management.
// Each call runs against the session supplied by the caller.
type ProductService interface {
	// Create stores a new product.
	Create(ctx context.Context, db database.Querier, in *model.ProductCreate) (*model.Product, error)

	// List retrieves all products.
	List(ctx context.Context, db database.Querier) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	// Returns model.ErrProductNotFound when the ID does not resolve.
	GetByID(ctx context.Context, db database.Querier, id int64) (*model.Product, error)

	// Update modifies a product in place.
	// Returns model.ErrProductNotFound when the ID does not resolve.
	Update(ctx context.Context, db database.Querier, id int64, in *model.ProductUpdate) (*model.Product, error)

	// Delete removes a product and returns its prior state.
	// Returns model.ErrProductNotFound when the ID does not resolve.
	Delete(ctx context.Context, db database.Querier, id int64) (*model.Product, error)
}
