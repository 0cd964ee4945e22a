package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopgrid/catalog-assistant/internal/core/domain"
	"github.com/shopgrid/catalog-assistant/internal/core/ports"
	"github.com/shopgrid/catalog-assistant/internal/core/schema"
)

// SearchUseCase is the smart-search pipeline: retrieve grounding products,
// assemble the grounded prompt, complete, and parse the free-form answer
// into structured records.
type SearchUseCase struct {
	retriever *Retriever
	completer ports.Completer
	schemas   *schema.Registry
	topK      int

	// Observe, when set, receives the retrieval size and whether the
	// completion parsed into structured records.
	Observe func(retrieved int, structured bool)
}

func NewSearchUseCase(retriever *Retriever, completer ports.Completer, schemas *schema.Registry, topK int) *SearchUseCase {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &SearchUseCase{
		retriever: retriever,
		completer: completer,
		schemas:   schemas,
		topK:      topK,
	}
}

func (uc *SearchUseCase) Search(ctx context.Context, query string) (*domain.SearchResult, error) {
	retrieved, err := uc.retriever.Retrieve(ctx, query, uc.topK)
	if err != nil {
		return nil, err
	}

	task, err := uc.schemas.Task(schema.TaskSmartSearch)
	if err != nil {
		return nil, err
	}

	outputs, err := uc.completer.Complete(ctx, task, map[string]string{
		"context": ProductContext(retrieved),
		"query":   query,
	})
	if err != nil {
		return nil, fmt.Errorf("smart search completion: %w", err)
	}

	answers, structured := ParseAnswers(outputs[task.Output.Name])
	if uc.Observe != nil {
		uc.Observe(len(retrieved), structured)
	}

	return &domain.SearchResult{
		Query:   query,
		Results: answers,
	}, nil
}

// ProductContext formats retrieved records into grounding lines, one per
// product: "Name (Category): content".
func ProductContext(products []domain.RetrievedProduct) string {
	lines := make([]string, 0, len(products))
	for _, item := range products {
		p := item.Product
		lines = append(lines, fmt.Sprintf("%s (%s): %s", p.Name, p.Category, p.Content))
	}
	return strings.Join(lines, "\n")
}
