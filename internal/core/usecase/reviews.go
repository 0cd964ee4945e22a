package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopgrid/catalog-assistant/internal/core/domain"
	"github.com/shopgrid/catalog-assistant/internal/core/ports"
	"github.com/shopgrid/catalog-assistant/internal/core/schema"
)

// maxSummarizedReviews bounds the prompt size; the reported review count
// still reflects everything the caller submitted.
const maxSummarizedReviews = 10

// ReviewsUseCase condenses customer reviews into a short summary.
type ReviewsUseCase struct {
	completer ports.Completer
	schemas   *schema.Registry
}

func NewReviewsUseCase(completer ports.Completer, schemas *schema.Registry) *ReviewsUseCase {
	return &ReviewsUseCase{
		completer: completer,
		schemas:   schemas,
	}
}

func (uc *ReviewsUseCase) SummarizeReviews(ctx context.Context, productName string, reviews []domain.Review) (*domain.ReviewSummary, error) {
	selected := reviews
	if len(selected) > maxSummarizedReviews {
		selected = selected[:maxSummarizedReviews]
	}

	lines := make([]string, 0, len(selected))
	for _, review := range selected {
		rating := strconv.FormatFloat(review.Rating, 'f', -1, 64)
		lines = append(lines, fmt.Sprintf("%s/5 stars: %s", rating, review.Comment))
	}

	prompt := fmt.Sprintf(
		"Summarize these customer reviews for %s in 2-3 sentences, highlighting key pros and cons:\n\n%s",
		productName,
		strings.Join(lines, "\n"),
	)

	task, err := uc.schemas.Task(schema.TaskSummary)
	if err != nil {
		return nil, err
	}

	outputs, err := uc.completer.Complete(ctx, task, map[string]string{
		"product_info": prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("review summary completion: %w", err)
	}

	return &domain.ReviewSummary{
		Summary:     outputs[task.Output.Name],
		ReviewCount: len(reviews),
	}, nil
}
