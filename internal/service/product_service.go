package service

import (
	"context"
	"fmt"

	"product-api/internal/database"
	"product-api/internal/metrics"
	"product-api/internal/model"
	"product-api/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	metrics     *metrics.Recorder
	logger      zerolog.Logger
}

// NewProductService creates a new product service. recorder may be nil.
func NewProductService(productRepo repository.ProductRepository, recorder *metrics.Recorder, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		metrics:     recorder,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// Create stores a new product.
func (s *productService) Create(ctx context.Context, db database.Querier, in *model.ProductCreate) (*model.Product, error) {
	product, err := s.productRepo.Create(ctx, db, in)
	if err != nil {
		s.logger.Error().Err(err).Str("name", in.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.metrics.RecordProductMutation("create")
	s.logger.Info().Int64("product_id", product.ID).Msg("product created")

	return product, nil
}

// List retrieves all products.
func (s *productService) List(ctx context.Context, db database.Querier) ([]model.Product, error) {
	products, err := s.productRepo.List(ctx, db)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, db database.Querier, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, db, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Update modifies a product in place.
func (s *productService) Update(ctx context.Context, db database.Querier, id int64, in *model.ProductUpdate) (*model.Product, error) {
	product, err := s.productRepo.Update(ctx, db, id, in)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Int64("product_id", id).Msg("product to update not found")
		return nil, model.ErrProductNotFound
	}

	s.metrics.RecordProductMutation("update")
	s.logger.Info().Int64("product_id", id).Bool("empty_update", in.IsEmpty()).Msg("product updated")

	return product, nil
}

// Delete removes a product and returns its prior state.
func (s *productService) Delete(ctx context.Context, db database.Querier, id int64) (*model.Product, error) {
	product, err := s.productRepo.Delete(ctx, db, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Int64("product_id", id).Msg("product to delete not found")
		return nil, model.ErrProductNotFound
	}

	s.metrics.RecordProductMutation("delete")
	s.logger.Info().Int64("product_id", id).Msg("product deleted")

	return product, nil
}
