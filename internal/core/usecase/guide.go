package usecase

import (
	"context"
	"fmt"

	"github.com/shopgrid/catalog-assistant/internal/core/ports"
	"github.com/shopgrid/catalog-assistant/internal/core/schema"
)

// GuideUseCase builds a short shopping guide grounded on retrieved catalog
// picks for the user context.
type GuideUseCase struct {
	retriever *Retriever
	completer ports.Completer
	schemas   *schema.Registry
	topK      int
}

func NewGuideUseCase(retriever *Retriever, completer ports.Completer, schemas *schema.Registry, topK int) *GuideUseCase {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &GuideUseCase{
		retriever: retriever,
		completer: completer,
		schemas:   schemas,
		topK:      topK,
	}
}

func (uc *GuideUseCase) Guide(ctx context.Context, userContext string) (string, error) {
	picks, err := uc.retriever.Retrieve(ctx, userContext, uc.topK)
	if err != nil {
		return "", err
	}

	task, err := uc.schemas.Task(schema.TaskShoppingGuide)
	if err != nil {
		return "", err
	}

	outputs, err := uc.completer.Complete(ctx, task, map[string]string{
		"user_context": userContext,
		"picks":        ProductContext(picks),
	})
	if err != nil {
		return "", fmt.Errorf("shopping guide completion: %w", err)
	}
	return outputs[task.Output.Name], nil
}
