package ports

import (
	"context"

	"github.com/shopgrid/catalog-assistant/internal/core/domain"
)

// ProductSearcher runs the grounded smart-search pipeline.
type ProductSearcher interface {
	Search(ctx context.Context, query string) (*domain.SearchResult, error)
}

// ProductRecommender generates a free-form product summary for a query.
type ProductRecommender interface {
	Summarize(ctx context.Context, query string) (string, error)
	RecommendFromContext(ctx context.Context, userContext string) (string, error)
}

// ProductAnswerer answers a question about a named catalog product.
type ProductAnswerer interface {
	Answer(ctx context.Context, question, productName string) (string, error)
}

// ReviewSummarizer condenses customer reviews for a product.
type ReviewSummarizer interface {
	SummarizeReviews(ctx context.Context, productName string, reviews []domain.Review) (*domain.ReviewSummary, error)
}

// ProductComparer produces a comparison between two products.
type ProductComparer interface {
	Compare(ctx context.Context, productA, productB string) (string, error)
}

// ShoppingGuide builds a short shopping guide for a user context.
type ShoppingGuide interface {
	Guide(ctx context.Context, userContext string) (string, error)
}
