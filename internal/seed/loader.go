// Package seed imports a starter product catalogue from gzipped JSON lines,
// read from the local file system or from S3.
package seed

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"product-api/internal/model"

	"github.com/rs/zerolog"
)

// ctxCheckInterval is how many lines are read between context checks.
const ctxCheckInterval = 10_000

// Loader defines the interface for loading catalogue files.
type Loader interface {
	// Load reads a gzipped catalogue file with one JSON product per line.
	Load(ctx context.Context, path string) ([]model.ProductCreate, error)
}

// fileLoader implements Loader for reading gzipped catalogue files from disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalogue loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "catalogue-loader").Logger(),
	}
}

// Load reads a gzipped catalogue file from the local file system.
func (l *fileLoader) Load(ctx context.Context, path string) ([]model.ProductCreate, error) {
	l.logger.Info().Str("file", path).Msg("loading catalogue file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open catalogue file")
		return nil, fmt.Errorf("failed to open catalogue file %s: %w", path, err)
	}
	defer file.Close()

	products, err := decodeGzipLines(ctx, file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read catalogue file")
		return nil, fmt.Errorf("failed to read catalogue file %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("products_loaded", len(products)).
		Msg("catalogue file loaded successfully")

	return products, nil
}

// decodeGzipLines decodes one ProductCreate per non-blank line of a gzip stream.
func decodeGzipLines(ctx context.Context, r io.Reader) ([]model.ProductCreate, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var products []model.ProductCreate
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var p model.ProductCreate
		if err := json.Unmarshal([]byte(line), &p); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		products = append(products, p)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
