package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MichalMitros/game-price-puller/cmd/puller/config"
	"github.com/MichalMitros/game-price-puller/internal/aggregator"
	"github.com/MichalMitros/game-price-puller/internal/extractor"
	"github.com/MichalMitros/game-price-puller/internal/fetcher"
	"github.com/MichalMitros/game-price-puller/internal/fx"
	"github.com/MichalMitros/game-price-puller/internal/handler"
	"github.com/MichalMitros/game-price-puller/internal/locale"
	"github.com/MichalMitros/game-price-puller/internal/platform/rabbitmq"
	"github.com/MichalMitros/game-price-puller/internal/platform/storage"
	"github.com/MichalMitros/game-price-puller/internal/puller"
	"github.com/MichalMitros/game-price-puller/internal/resolver"
	"github.com/MichalMitros/game-price-puller/internal/storefront"
	"github.com/caarlos0/env/v6"
	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	var cfg config.Config
	if err := env.Parse(&cfg); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't parse env variables")
	}

	markets, err := locale.Load(cfg.MarketsFile)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't load market table")
	}

	amqpConnection, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ connection")
	}

	conn, err := rabbitmq.NewRabbitMQ(amqpConnection, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.Prefetch)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ channel")
	}

	if err := conn.Declare(cfg.RabbitMQ.Queue, cfg.RabbitMQ.CommandKey); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't declare RabbitMQ topology")
	}

	pgDB, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open Postgres connection")
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

	pul := puller.NewPuller(
		agg,
		fx.NewCache(fet, &logger, fx.WithTTL(cfg.FXTTL)),
		storage.NewPostgres(pgDB),
		&logger,
	)

	han := handler.NewHandler(conn, pul, cfg.RabbitMQ.SummaryKey, &logger)

	// start consuming and handling messages
	err = han.Start(ctx, cfg.RabbitMQ.Queue)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't start consuming")
	}

	logger.Info().
		Int("markets", len(markets.Countries())).
		Int("workers", cfg.Workers).
		Msg("game price puller up and running")

	// handle graceful shutdown and context cancellation
	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-termChan:
		cancel()
	case <-ctx.Done():
	}

	logger.Info().Msg("graceful shutdown start")

	// wait for consumer to finish
	<-conn.Done()

	// close connections
	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := pgDB.Close(); err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't close Postgres connection")
		}
	}()

	go func() {
		defer wg.Done()
		if err := amqpConnection.Close(); err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't close RabbitMQ connection")
		}
	}()

	wg.Wait()

	logger.Info().Msg("graceful shutdown successful")
}
