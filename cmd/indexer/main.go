// Command indexer embeds every catalog product and writes the vector index
// file the API server loads at startup. Run it whenever the catalog or the
// embedding model changes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/shopgrid/catalog-assistant/internal/config"
	"github.com/shopgrid/catalog-assistant/internal/infrastructure/catalog/file"
	"github.com/shopgrid/catalog-assistant/internal/infrastructure/llm/openai"
	"github.com/shopgrid/catalog-assistant/internal/infrastructure/resilience"
	vectorsqlite "github.com/shopgrid/catalog-assistant/internal/infrastructure/vector/sqlite"
	"github.com/shopgrid/catalog-assistant/internal/observability/logging"
)

// embedBatchSize keeps request payloads small enough for the provider's
// input limits.
const embedBatchSize = 64

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.Setup("catalog-indexer", cfg.LogLevel)

	if !cfg.APIKeyConfigured() {
		return fmt.Errorf("OPENAI_API_KEY is missing or a placeholder, cannot embed the catalog")
	}

	catalog, err := file.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if catalog.Len() == 0 {
		return fmt.Errorf("catalog %s has no products", cfg.CatalogPath)
	}

	texts := make([]string, 0, catalog.Len())
	for _, product := range catalog.All() {
		texts = append(texts, fmt.Sprintf("%s - %s", product.Name, product.Description))
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())
	client := openai.New(cfg.OpenAIBaseURL, cfg.EffectiveAPIKey(), cfg.OpenAIModel, cfg.EmbeddingModel, executor)
	embedder := openai.NewEmbedder(client)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	vectors := make([][]float32, 0, len(texts))
	for offset := 0; offset < len(texts); offset += embedBatchSize {
		end := offset + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := embedder.Embed(ctx, texts[offset:end])
		if err != nil {
			return fmt.Errorf("embed products %d-%d: %w", offset, end-1, err)
		}
		vectors = append(vectors, batch...)
		logger.Info("embedded batch", "from", offset, "to", end-1)
	}

	if err := vectorsqlite.Write(cfg.IndexPath, cfg.EmbeddingModel, vectors); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	logger.Info("index built",
		"path", cfg.IndexPath,
		"products", len(vectors),
		"model", cfg.EmbeddingModel,
		"took", time.Since(start).String(),
	)
	return nil
}
