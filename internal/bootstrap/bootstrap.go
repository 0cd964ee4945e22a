// Package bootstrap wires configuration, infrastructure, and use cases
// into a ready-to-serve application.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/shopgrid/catalog-assistant/internal/config"
	"github.com/shopgrid/catalog-assistant/internal/core/schema"
	"github.com/shopgrid/catalog-assistant/internal/core/usecase"
	"github.com/shopgrid/catalog-assistant/internal/infrastructure/catalog/file"
	"github.com/shopgrid/catalog-assistant/internal/infrastructure/llm/openai"
	"github.com/shopgrid/catalog-assistant/internal/infrastructure/resilience"
	vectorsqlite "github.com/shopgrid/catalog-assistant/internal/infrastructure/vector/sqlite"
	"github.com/shopgrid/catalog-assistant/internal/observability/metrics"
)

// App holds the assembled inbound services and the resources that need
// closing on shutdown.
type App struct {
	Searcher    *usecase.SearchUseCase
	Recommender *usecase.RecommendUseCase
	Answerer    *usecase.QAUseCase
	Reviews     *usecase.ReviewsUseCase
	Comparer    *usecase.CompareUseCase
	Guide       *usecase.GuideUseCase
	Metrics     *metrics.ServerMetrics
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if cfg.LLMProvider != "openai" {
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.LLMProvider)
	}
	if !cfg.APIKeyConfigured() {
		logger.Warn("openai api key is missing or a placeholder, provider calls will fail",
			"api_key", cfg.MaskedAPIKey())
	}

	catalog, err := file.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	index, err := vectorsqlite.Open(cfg.IndexPath)
	if err != nil {
		return nil, fmt.Errorf("open vector index: %w", err)
	}
	if index.Len() != catalog.Len() {
		return nil, fmt.Errorf("vector index has %d entries but catalog has %d products, rebuild the index",
			index.Len(), catalog.Len())
	}
	if index.Model() != "" && index.Model() != cfg.EmbeddingModel {
		logger.Warn("vector index was built with a different embedding model",
			"index_model", index.Model(), "configured_model", cfg.EmbeddingModel)
	}

	schemas, err := schema.LoadFile(cfg.SchemasPath)
	if err != nil {
		return nil, fmt.Errorf("load task schemas: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())
	client := openai.New(cfg.OpenAIBaseURL, cfg.EffectiveAPIKey(), cfg.OpenAIModel, cfg.EmbeddingModel, executor)
	embedder := openai.NewEmbedder(client)
	completer := openai.NewCompleter(client)

	retriever := usecase.NewRetriever(embedder, index, catalog)
	serverMetrics := metrics.NewServerMetrics("catalog-assistant")

	searcher := usecase.NewSearchUseCase(retriever, completer, schemas, cfg.RAGTopK)
	searcher.Observe = func(retrieved int, structured bool) {
		serverMetrics.RecordRetrievedProducts("catalog-assistant", "search", retrieved)
		if !structured {
			serverMetrics.RecordParseFallback("catalog-assistant")
		}
	}

	logger.Info("application assembled",
		"products", catalog.Len(),
		"index_dimension", index.Dimension(),
		"top_k", cfg.RAGTopK,
	)

	return &App{
		Searcher:    searcher,
		Recommender: usecase.NewRecommendUseCase(retriever, completer, schemas, cfg.RAGTopK),
		Answerer:    usecase.NewQAUseCase(catalog, completer, schemas),
		Reviews:     usecase.NewReviewsUseCase(completer, schemas),
		Comparer:    usecase.NewCompareUseCase(catalog, completer, schemas),
		Guide:       usecase.NewGuideUseCase(retriever, completer, schemas, cfg.RAGTopK),
		Metrics:     serverMetrics,
	}, nil
}
