package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopgrid/catalog-assistant/internal/core/domain"
	"github.com/shopgrid/catalog-assistant/internal/core/schema"
)

type fakeEmbedder struct {
	vector    []float32
	err       error
	lastQuery string
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = f.vector
	}
	return vectors, nil
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	f.lastQuery = text
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

type fakeIndex struct {
	matches  []domain.IndexMatch
	err      error
	lastTopK int
}

func (f *fakeIndex) Search(ctx context.Context, queryVector []float32, topK int) ([]domain.IndexMatch, error) {
	f.lastTopK = topK
	if f.err != nil {
		return nil, f.err
	}
	matches := f.matches
	if topK < len(matches) {
		matches = matches[:topK]
	}
	return matches, nil
}

func (f *fakeIndex) Len() int       { return len(f.matches) }
func (f *fakeIndex) Dimension() int { return len(f.matches) }

type fakeCatalog struct {
	products []domain.Product
}

func (f *fakeCatalog) All() []domain.Product { return f.products }
func (f *fakeCatalog) Len() int              { return len(f.products) }

func (f *fakeCatalog) Get(position int) (domain.Product, bool) {
	if position < 0 || position >= len(f.products) {
		return domain.Product{}, false
	}
	return f.products[position], true
}

func (f *fakeCatalog) FindByName(fragment string) (domain.Product, error) {
	needle := strings.ToLower(fragment)
	for _, product := range f.products {
		if strings.Contains(strings.ToLower(product.Name), needle) {
			return product, nil
		}
	}
	return domain.Product{}, domain.WrapError(domain.ErrProductNotFound, "find product", errors.New(fragment))
}

type fakeCompleter struct {
	completion string
	err        error
	lastTask   schema.Task
	lastInputs map[string]string
}

func (f *fakeCompleter) Complete(ctx context.Context, task schema.Task, inputs map[string]string) (map[string]string, error) {
	f.lastTask = task
	f.lastInputs = inputs
	if f.err != nil {
		return nil, f.err
	}
	return map[string]string{task.Output.Name: f.completion}, nil
}

func testSchemas(t *testing.T) *schema.Registry {
	t.Helper()
	registry, err := schema.LoadFile("")
	if err != nil {
		t.Fatalf("load embedded schemas: %v", err)
	}
	return registry
}

func testProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "p1",
			Name:        "Wireless Mouse",
			Description: "Ergonomic wireless mouse with long battery life",
			Category:    "Electronics",
			Content:     "Ergonomic wireless mouse, 2.4GHz, 18-month battery, silent clicks",
		},
		{
			ID:          "p2",
			Name:        "USB Keyboard",
			Description: "Full-size keyboard with quiet keys",
			Category:    "Electronics",
			Content:     "Full-size USB keyboard, spill resistant, quiet membrane keys",
		},
		{
			ID:          "p3",
			Name:        "Desk Lamp",
			Description: "LED desk lamp with adjustable brightness",
			Category:    "Home",
			Content:     "LED desk lamp, 3 color temperatures, USB charging port",
		},
	}
}
