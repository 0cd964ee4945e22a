package usecase

import (
	"context"
	"fmt"

	"github.com/shopgrid/catalog-assistant/internal/core/ports"
	"github.com/shopgrid/catalog-assistant/internal/core/schema"
)

// CompareUseCase produces a comparison between two products. Inputs may be
// catalog names or free text; names that resolve in the catalog are enriched
// with the stored product content.
type CompareUseCase struct {
	catalog   ports.Catalog
	completer ports.Completer
	schemas   *schema.Registry
}

func NewCompareUseCase(catalog ports.Catalog, completer ports.Completer, schemas *schema.Registry) *CompareUseCase {
	return &CompareUseCase{
		catalog:   catalog,
		completer: completer,
		schemas:   schemas,
	}
}

func (uc *CompareUseCase) Compare(ctx context.Context, productA, productB string) (string, error) {
	task, err := uc.schemas.Task(schema.TaskComparison)
	if err != nil {
		return "", err
	}

	outputs, err := uc.completer.Complete(ctx, task, map[string]string{
		"product_a": uc.describe(productA),
		"product_b": uc.describe(productB),
	})
	if err != nil {
		return "", fmt.Errorf("comparison completion: %w", err)
	}
	return outputs[task.Output.Name], nil
}

func (uc *CompareUseCase) describe(nameOrText string) string {
	product, err := uc.catalog.FindByName(nameOrText)
	if err != nil {
		return nameOrText
	}
	return fmt.Sprintf("%s: %s", product.Name, product.Content)
}
