package repository

import (
	"context"
	"errors"
	"fmt"

	"product-api/internal/database"
	"product-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const productColumns = `id, name, description, price, category`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(logger zerolog.Logger) ProductRepository {
	return &productRepository{
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// Create inserts a product and returns it with its assigned ID.
func (r *productRepository) Create(ctx context.Context, db database.Querier, in *model.ProductCreate) (*model.Product, error) {
	query := `
		INSERT INTO products (name, description, price, category)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + productColumns

	p, err := scanProduct(db.QueryRow(ctx, query, in.Name, in.Description, toNumeric(in.Price), in.Category))
	if err != nil {
		r.logger.Error().Err(err).Str("name", in.Name).Msg("failed to insert product")
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	return p, nil
}

// List retrieves all products ordered by ID.
func (r *productRepository) List(ctx context.Context, db database.Querier) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY id
	`

	rows, err := db.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, db database.Querier, id int64) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`

	p, err := scanProduct(db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

// Update applies the non-nil fields of in to the product and returns the result.
func (r *productRepository) Update(ctx context.Context, db database.Querier, id int64, in *model.ProductUpdate) (*model.Product, error) {
	query := `
		UPDATE products
		SET name = COALESCE($2, name),
			description = COALESCE($3, description),
			price = COALESCE($4, price),
			category = COALESCE($5, category)
		WHERE id = $1
		RETURNING ` + productColumns

	p, err := scanProduct(db.QueryRow(ctx, query, id, in.Name, in.Description, toNumeric(in.Price), in.Category))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("product_id", id).Msg("product to update not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return p, nil
}

// Delete removes a product and returns its state prior to deletion.
func (r *productRepository) Delete(ctx context.Context, db database.Querier, id int64) (*model.Product, error) {
	query := `
		DELETE FROM products
		WHERE id = $1
		RETURNING ` + productColumns

	p, err := scanProduct(db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("product_id", id).Msg("product to delete not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	return p, nil
}

// Count returns the number of stored products.
func (r *productRepository) Count(ctx context.Context, db database.Querier) (int64, error) {
	var count int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// scanProduct reads one product from a row holding productColumns.
func scanProduct(row pgx.Row) (*model.Product, error) {
	var (
		p     model.Product
		price pgtype.Numeric
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &p.Category); err != nil {
		return nil, err
	}

	d, err := fromNumeric(price)
	if err != nil {
		return nil, err
	}
	p.Price = d

	return &p, nil
}

// toNumeric converts an optional decimal into a NUMERIC parameter; nil becomes NULL.
func toNumeric(d *decimal.Decimal) pgtype.Numeric {
	if d == nil {
		return pgtype.Numeric{}
	}
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

// fromNumeric converts a scanned NUMERIC into an optional decimal.
func fromNumeric(n pgtype.Numeric) (*decimal.Decimal, error) {
	if !n.Valid {
		return nil, nil
	}
	if n.NaN || n.InfinityModifier != pgtype.Finite {
		return nil, fmt.Errorf("unsupported numeric value")
	}
	if n.Int == nil {
		d := decimal.Zero
		return &d, nil
	}
	d := decimal.NewFromBigInt(n.Int, n.Exp)
	return &d, nil
}
