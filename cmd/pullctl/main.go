package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/MichalMitros/game-price-puller/cmd/puller/config"
	"github.com/MichalMitros/game-price-puller/internal/platform/rabbitmq"
	"github.com/MichalMitros/game-price-puller/pkg/v1/commander"
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

func main() {
	basketPath := flag.String("basket", "basket.yaml", "Path to YAML basket file")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// local runs keep settings in .env
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("no .env file found, using environment variables")
	}

	var cfg config.RabbitMQ
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

	amqpConnection, err := amqp.Dial(cfg.URL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ connection")
	}
	defer amqpConnection.Close()

	conn, err := rabbitmq.NewRabbitMQ(amqpConnection, cfg.Exchange, 0)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ channel")
	}

	pullCommander := commander.NewPullCommander(commander.NewRabbitMQSender(conn, cfg.CommandKey))
	if err := pullCommander.SendPullCommand(ctx, cmd); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't send pull command")
	}

	logger.Info().
		Str("basket", cmd.Basket).
		Int("items", len(cmd.Items)).
		Msg("pull command sent")
}
