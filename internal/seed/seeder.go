package seed

import (
	"context"
	"errors"
	"fmt"

	"product-api/internal/database"
	"product-api/internal/repository"
	"product-api/internal/validation"

	"github.com/rs/zerolog"
)

// ErrInvalidRecord is returned when a catalogue record fails validation.
var ErrInvalidRecord = errors.New("invalid catalogue record")

// Seeder imports a catalogue into an empty products table.
type Seeder struct {
	loader    Loader
	path      string
	sessions  database.SessionProvider
	repo      repository.ProductRepository
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewSeeder creates a Seeder that reads path through loader.
func NewSeeder(
	loader Loader,
	path string,
	sessions database.SessionProvider,
	repo repository.ProductRepository,
	validator *validation.Validator,
	logger zerolog.Logger,
) *Seeder {
	return &Seeder{
		loader:    loader,
		path:      path,
		sessions:  sessions,
		repo:      repo,
		validator: validator,
		logger:    logger.With().Str("component", "seeder").Logger(),
	}
}

// Run inserts every catalogue record in one transaction and returns how many
// were inserted. Nothing is inserted when the table already holds products,
// when any record is invalid or when any insert fails.
func (s *Seeder) Run(ctx context.Context) (inserted int, err error) {
	sess, err := s.sessions.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer sess.Release()

	existing, err := s.repo.Count(ctx, sess)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	if existing > 0 {
		s.logger.Info().Int64("existing", existing).Msg("products table not empty, skipping seed")
		return 0, nil
	}

	products, err := s.loader.Load(ctx, s.path)
	if err != nil {
		return 0, fmt.Errorf("failed to load catalogue: %w", err)
	}

	for i := range products {
		if err := s.validator.Struct(&products[i]); err != nil {
			return 0, fmt.Errorf("%w %d: %w", ErrInvalidRecord, i+1, err)
		}
	}

	tx, err := sess.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	for i := range products {
		if _, err = s.repo.Create(ctx, tx, &products[i]); err != nil {
			return 0, fmt.Errorf("failed to insert catalogue record %d: %w", i+1, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to commit transaction")
		return 0, fmt.Errorf("failed to commit catalogue: %w", err)
	}

	s.logger.Info().Int("inserted", len(products)).Str("path", s.path).Msg("catalogue seeded")

	return len(products), nil
}
