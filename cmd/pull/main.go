package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/MichalMitros/game-price-puller/cmd/puller/config"
	"github.com/MichalMitros/game-price-puller/internal/aggregator"
	"github.com/MichalMitros/game-price-puller/internal/extractor"
	"github.com/MichalMitros/game-price-puller/internal/fetcher"
	"github.com/MichalMitros/game-price-puller/internal/fx"
	"github.com/MichalMitros/game-price-puller/internal/handler"
	"github.com/MichalMitros/game-price-puller/internal/locale"
	"github.com/MichalMitros/game-price-puller/internal/platform/models"
	"github.com/MichalMitros/game-price-puller/internal/resolver"
	"github.com/MichalMitros/game-price-puller/internal/storefront"
	"github.com/MichalMitros/game-price-puller/pkg/v1/commander"
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	basketPath := flag.String("basket", "basket.yaml", "Path to YAML basket file")
	verbose := flag.Bool("v", false, "Log every missed price")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// local runs keep settings in .env
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("no .env file found, using environment variables")
	}

	var cfg config.Config
	if err := env.Parse(&cfg); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't parse env variables")
	}

	cmd, err := commander.LoadBasket(*basketPath)
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("path", *basketPath).
			Msg("can't load basket")
	}

	markets, err := locale.Load(cfg.MarketsFile)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't load market table")
	}

	fet := fetcher.NewFetcher(&http.Client{Timeout: cfg.HTTP.Timeout}, fetcher.Options{
		UserAgent:    cfg.HTTP.UserAgent,
		Retries:      cfg.HTTP.Retries,
		Backoff:      cfg.HTTP.Backoff,
		MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
		RateLimit: fetcher.RateLimit{
			Requests: cfg.HTTP.RateLimitCount,
			Window:   cfg.HTTP.RateLimitWindow,
		},
	})

	agg := aggregator.NewAggregator(
		[]aggregator.Source{
			storefront.NewSteam(fet, markets),
			storefront.NewXbox(fet, markets),
			storefront.NewPlayStation(
				fet,
				resolver.NewPlayStation(fet),
				extractor.DefaultChain(),
				markets,
				storefront.WithGraphQL(cfg.PlayStationGraphQL, ""),
			),
		},
		markets,
		&logger,
		aggregator.WithWorkers(cfg.Workers),
	)

	results, err := agg.Collect(ctx, handler.PullRequest(cmd))
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't collect prices")
	}

	report := &models.Report{
		Results:         results,
		Recommendations: agg.Recommend(results, fx.NewCache(fet, &logger).Rates(ctx)),
	}

	summary := handler.Summary(cmd.Basket, report, nil)
	logger.Info().
		Int32("observed", summary.Observed).
		Int32("missed", summary.Missed).
		Msg("pull finished")

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't write run summary")
	}
}
