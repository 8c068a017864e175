package bootstrap

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/contextcart/ragsearch/internal/config"
	"github.com/contextcart/ragsearch/internal/core/ports"
	"github.com/contextcart/ragsearch/internal/core/usecase"
	"github.com/contextcart/ragsearch/internal/infrastructure/llm/asi"
	"github.com/contextcart/ragsearch/internal/infrastructure/llm/gemini"
	"github.com/contextcart/ragsearch/internal/infrastructure/resilience"
	"github.com/contextcart/ragsearch/internal/infrastructure/search/serpapi"
)

type App struct {
	Config config.Config

	CleanUC  ports.RecordCleaner
	SearchUC ports.ProductFinder
	EmbedUC  ports.TextEmbedder
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	exec := resilience.NewExecutor(resilience.Config{
		BreakerEnabled:      cfg.BreakerEnabled,
		BreakerMinRequests:  uint32(cfg.BreakerMinRequests),
		BreakerFailureRatio: cfg.BreakerFailureRatio,
	})

	generationClient := asi.New(cfg.ASIBaseURL, cfg.ASIAPIKey, exec)
	normalizer := asi.NewNormalizer(generationClient, cfg.ASIModel)
	ranker := asi.NewRanker(generationClient, cfg.ASIModel)

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.GeminiAPIKey})
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	embedder := gemini.New(genaiClient, cfg.GeminiEmbedModel)

	searchOpts := serpapi.DefaultOptions()
	searchOpts.AmazonDomain = cfg.SerpAPIAmazonDomain
	searchOpts.Language = cfg.SerpAPILanguage
	searchOpts.ShippingLocation = cfg.SerpAPIShippingLocation
	searcher := serpapi.New(cfg.SerpAPIBaseURL, cfg.SerpAPIKey, searchOpts, exec)

	return &App{
		Config:   cfg,
		CleanUC:  usecase.NewCleanRecordUseCase(normalizer, embedder),
		SearchUC: usecase.NewSearchProductsUseCase(searcher, ranker, cfg.SearchProjectTopK, cfg.SearchRankTopM),
		EmbedUC:  usecase.NewEmbedTextUseCase(embedder),
	}, nil
}
