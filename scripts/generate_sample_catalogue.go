package main

import (
	"compress/gzip"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"product-api/internal/model"

	"github.com/shopspring/decimal"
)

// generateSampleCatalogue writes a gzipped JSON-lines catalogue that the
// seeder can import (SEED_ENABLED=true SEED_FILE=<path>).
func main() {
	out := flag.String("out", "data/catalogue.jsonl.gz", "output file")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	products := []model.ProductCreate{
		{Name: "Widget"},
		{Name: "Desk Lamp", Description: strPtr("Adjustable LED desk lamp"), Price: decPtr("34.90"), Category: strPtr("Lighting")},
		{Name: "USB-C Cable", Description: strPtr("1m braided cable"), Price: decPtr("9.99"), Category: strPtr("Electronics")},
		{Name: "Notebook", Price: decPtr("4.50"), Category: strPtr("Stationery")},
		{Name: "Office Chair", Description: strPtr("Ergonomic mesh chair"), Price: decPtr("189.00"), Category: strPtr("Furniture")},
		{Name: "Gift Card", Description: strPtr("Price set at checkout")},
	}

	if err := createCatalogueFile(*out, products); err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}

	fmt.Printf("Created %s with %d products\n", *out, len(products))
}

func createCatalogueFile(filePath string, products []model.ProductCreate) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	encoder := json.NewEncoder(gzipWriter)
	for _, p := range products {
		if err := encoder.Encode(p); err != nil {
			return fmt.Errorf("failed to write product %q: %w", p.Name, err)
		}
	}

	return nil
}

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
