// Package file loads the product catalog from a JSON file once at startup.
// Record order in the file defines catalog positions, which the vector index
// mirrors; the store is read-only afterwards.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/shopgrid/catalog-assistant/internal/core/domain"
)

type Store struct {
	products []domain.Product
}

// Load reads the catalog file. A missing or malformed file is a startup
// error; an empty array is allowed and surfaces later as an empty-catalog
// retrieval failure.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return &Store{products: products}, nil
}

// NewStore wraps an already-loaded record slice; used by tests and the
// indexer after it has read the catalog itself.
func NewStore(products []domain.Product) *Store {
	return &Store{products: products}
}

func (s *Store) All() []domain.Product { return s.products }

func (s *Store) Len() int { return len(s.products) }

func (s *Store) Get(position int) (domain.Product, bool) {
	if position < 0 || position >= len(s.products) {
		return domain.Product{}, false
	}
	return s.products[position], true
}

// FindByName returns the first record, in catalog order, whose name contains
// the fragment case-insensitively.
func (s *Store) FindByName(fragment string) (domain.Product, error) {
	needle := strings.ToLower(fragment)
	for _, product := range s.products {
		if strings.Contains(strings.ToLower(product.Name), needle) {
			return product, nil
		}
	}
	return domain.Product{}, domain.WrapError(domain.ErrProductNotFound, "find product", fmt.Errorf("no name matches %q", fragment))
}
