package ports

import (
	"context"

	"github.com/shopgrid/catalog-assistant/internal/core/domain"
	"github.com/shopgrid/catalog-assistant/internal/core/schema"
)

// Embedder builds vectors for catalog texts and query text.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// VectorIndex performs exact nearest-neighbor search over the precomputed
// catalog vectors. Implementations are loaded once and never mutated on read.
type VectorIndex interface {
	Search(ctx context.Context, queryVector []float32, topK int) ([]domain.IndexMatch, error)
	Len() int
	Dimension() int
}

// Catalog exposes the read-only product catalog. Position i in the vector
// index always resolves to the i-th record here.
type Catalog interface {
	All() []domain.Product
	Get(position int) (domain.Product, bool)
	Len() int
	FindByName(fragment string) (domain.Product, error)
}

// Completer sends a task schema with bound inputs to the configured LLM
// provider and returns the filled output fields.
type Completer interface {
	Complete(ctx context.Context, task schema.Task, inputs map[string]string) (map[string]string, error)
}
