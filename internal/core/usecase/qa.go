package usecase

import (
	"context"
	"fmt"

	"github.com/shopgrid/catalog-assistant/internal/core/domain"
	"github.com/shopgrid/catalog-assistant/internal/core/ports"
	"github.com/shopgrid/catalog-assistant/internal/core/schema"
)

// QAUseCase answers a user question about a named catalog product.
type QAUseCase struct {
	catalog   ports.Catalog
	completer ports.Completer
	schemas   *schema.Registry
}

func NewQAUseCase(catalog ports.Catalog, completer ports.Completer, schemas *schema.Registry) *QAUseCase {
	return &QAUseCase{
		catalog:   catalog,
		completer: completer,
		schemas:   schemas,
	}
}

// Answer grounds the question on the product matched by name fragment.
// A lookup miss is an answer, not a failure.
func (uc *QAUseCase) Answer(ctx context.Context, question, productName string) (string, error) {
	product, err := uc.catalog.FindByName(productName)
	if err != nil {
		if domain.IsKind(err, domain.ErrProductNotFound) {
			return "Product not found in database.", nil
		}
		return "", err
	}

	task, err := uc.schemas.Task(schema.TaskQA)
	if err != nil {
		return "", err
	}

	outputs, err := uc.completer.Complete(ctx, task, map[string]string{
		"question":     question,
		"product_info": product.Content,
	})
	if err != nil {
		return "", fmt.Errorf("qa completion: %w", err)
	}

	answer := outputs[task.Output.Name]
	if answer == "" {
		answer = "No answer found."
	}
	return answer, nil
}
