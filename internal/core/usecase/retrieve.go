package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopgrid/catalog-assistant/internal/core/domain"
	"github.com/shopgrid/catalog-assistant/internal/core/ports"
)

// DefaultTopK is the retrieval depth used when the caller does not specify one.
const DefaultTopK = 3

// Retriever embeds a query and resolves the nearest catalog records.
type Retriever struct {
	embedder ports.Embedder
	index    ports.VectorIndex
	catalog  ports.Catalog
}

func NewRetriever(embedder ports.Embedder, index ports.VectorIndex, catalog ports.Catalog) *Retriever {
	return &Retriever{
		embedder: embedder,
		index:    index,
		catalog:  catalog,
	}
}

// Retrieve returns up to topK catalog records in ascending distance order.
// Retrieval never mutates the index; topK larger than the catalog degrades to
// returning every record.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) ([]domain.RetrievedProduct, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if r.catalog.Len() == 0 {
		return nil, domain.WrapError(domain.ErrEmptyCatalog, "retrieve", errors.New("catalog has no records"))
	}

	queryVector, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	matches, err := r.index.Search(ctx, queryVector, topK)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	results := make([]domain.RetrievedProduct, 0, len(matches))
	for _, match := range matches {
		product, ok := r.catalog.Get(match.Position)
		if !ok {
			return nil, fmt.Errorf("index position %d has no catalog record", match.Position)
		}
		results = append(results, domain.RetrievedProduct{
			Product:  product,
			Distance: match.Distance,
		})
	}
	return results, nil
}
