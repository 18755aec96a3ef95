package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/custodia-labs/workmirror/internal/adapters/driven/config/file"
	"github.com/custodia-labs/workmirror/internal/adapters/driven/embedding/ollama"
	"github.com/custodia-labs/workmirror/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/workmirror/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/workmirror/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/workmirror/internal/adapters/driven/vector/qdrant"
	"github.com/custodia-labs/workmirror/internal/connectors/asana"
	"github.com/custodia-labs/workmirror/internal/core/ports/driven"
	"github.com/custodia-labs/workmirror/internal/core/ports/driving"
	"github.com/custodia-labs/workmirror/internal/core/services"
	"github.com/custodia-labs/workmirror/internal/renderers"
)

// crawlerService is the composed application. Tests replace it with a mock;
// production fills it via buildServices on first use.
var crawlerService driving.Crawler

// serviceCloser tears down connections opened during composition.
var serviceCloser io.Closer

// ensureServices lazily composes the application from configuration.
// dryRun swaps in the in-memory store and skips the vector index, so a
// crawl touches nothing durable.
func ensureServices(ctx context.Context, dryRun bool) error {
	if crawlerService != nil {
		return nil
	}

	cfg, err := file.Load(flagConfigDir)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	return buildServices(ctx, cfg, dryRun)
}

func buildServices(ctx context.Context, cfg *file.Config, dryRun bool) error {
	if cfg.Asana.AccessToken == "" {
		return errors.New("no access token configured: set asana.access_token or ASANA_ACCESS_TOKEN")
	}
	if cfg.Asana.WorkspaceID == "" {
		return errors.New("no workspace configured: set asana.workspace_id")
	}

	api := asana.NewClient(asana.Config{
		BaseURL:           cfg.Asana.BaseURL,
		AccessToken:       cfg.Asana.AccessToken,
		RequestsPerSecond: cfg.Asana.RequestsPerSecond,
	})

	var store driven.RecordStore
	var closers multiCloser
	if dryRun {
		store = memory.NewRecordStore()
	} else {
		sqliteStore, err := sqlite.NewStore(cfg.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("open document store: %w", err)
		}
		store = sqliteStore
		closers = append(closers, sqliteStore)
	}

	var embedder driven.EmbeddingService
	var vector driven.VectorIndex
	if cfg.Qdrant.Enabled && !dryRun {
		var err error
		embedder, err = buildEmbedder(cfg.Embedding)
		if err != nil {
			closers.Close()
			return err
		}
		closers = append(closers, embedder)

		vector, err = qdrant.NewIndex(ctx, qdrant.Config{
			Host:       cfg.Qdrant.Host,
			Port:       cfg.Qdrant.Port,
			Collection: cfg.Qdrant.Collection,
			Dimensions: embedder.Dimensions(),
		})
		if err != nil {
			closers.Close()
			return fmt.Errorf("open vector index: %w", err)
		}
		closers = append(closers, vector)
	}

	var webhook driven.WebhookService
	if cfg.Webhook.BaseURL != "" {
		webhook = asana.NewWebhookClient(cfg.Webhook.BaseURL, 0)
	}

	upserter := services.NewUpserter(store, vector, embedder, renderers.New())
	expander := services.NewExpander(api, upserter, webhook)
	crawlerService = services.NewCrawler(api, store, expander, upserter,
		cfg.Asana.WorkspaceID, cfg.Crawl.Workers)
	serviceCloser = closers
	return nil
}

func buildEmbedder(cfg file.EmbeddingConfig) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		}), nil
	case "openai", "":
		svc, err := openai.NewEmbeddingService(openai.Config{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		})
		if err != nil {
			return nil, fmt.Errorf("configure embeddings: %w", err)
		}
		return svc, nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}

// closeServices releases connections opened by ensureServices.
func closeServices() {
	if serviceCloser != nil {
		_ = serviceCloser.Close()
		serviceCloser = nil
	}
}

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var firstErr error
	for i := len(m) - 1; i >= 0; i-- {
		if err := m[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
