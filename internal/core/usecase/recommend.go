package usecase

import (
	"context"
	"fmt"

	"github.com/shopgrid/catalog-assistant/internal/core/ports"
	"github.com/shopgrid/catalog-assistant/internal/core/schema"
)

// RecommendUseCase generates product summaries and context-driven
// recommendations.
type RecommendUseCase struct {
	retriever *Retriever
	completer ports.Completer
	schemas   *schema.Registry
	topK      int
}

func NewRecommendUseCase(retriever *Retriever, completer ports.Completer, schemas *schema.Registry, topK int) *RecommendUseCase {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &RecommendUseCase{
		retriever: retriever,
		completer: completer,
		schemas:   schemas,
		topK:      topK,
	}
}

// Summarize produces a free-form product summary for the given text. No
// retrieval happens here: the caller supplies the product info directly.
func (uc *RecommendUseCase) Summarize(ctx context.Context, query string) (string, error) {
	task, err := uc.schemas.Task(schema.TaskSummary)
	if err != nil {
		return "", err
	}

	outputs, err := uc.completer.Complete(ctx, task, map[string]string{
		"product_info": query,
	})
	if err != nil {
		return "", fmt.Errorf("summary completion: %w", err)
	}
	return outputs[task.Output.Name], nil
}

// RecommendFromContext retrieves candidate products for the user context and
// asks the model to rank them with reasons.
func (uc *RecommendUseCase) RecommendFromContext(ctx context.Context, userContext string) (string, error) {
	candidates, err := uc.retriever.Retrieve(ctx, userContext, uc.topK)
	if err != nil {
		return "", err
	}

	task, err := uc.schemas.Task(schema.TaskRecommendation)
	if err != nil {
		return "", err
	}

	outputs, err := uc.completer.Complete(ctx, task, map[string]string{
		"user_context": userContext,
		"candidates":   ProductContext(candidates),
	})
	if err != nil {
		return "", fmt.Errorf("recommendation completion: %w", err)
	}
	return outputs[task.Output.Name], nil
}
