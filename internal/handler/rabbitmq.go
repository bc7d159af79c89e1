package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MichalMitros/game-price-puller/internal/platform/models"
	"github.com/MichalMitros/game-price-puller/internal/platform/rabbitmq"
	"github.com/MichalMitros/game-price-puller/pkg/v1/commander"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

//go:generate mockery --name Puller --filename puller.go
//go:generate mockery --name Broker --filename broker.go

// Puller pulls prices of basket.
type Puller interface {
	Pull(ctx context.Context, req models.PullRequest) (*models.Report, error)
}

// Broker consumes commands and publishes summaries.
type Broker interface {
	Consume(ctx context.Context, queue string, handler rabbitmq.HandlerFunc) (<-chan error, error)
	Publish(ctx context.Context, routingKey string, message []byte) error
}

// RMQHandler handles RMQ pull commands.
type RMQHandler struct {
	broker     Broker
	puller     Puller
	summaryKey string
	logger     *zerolog.Logger
}

// NewHandler returns new RMQHandler publishing run summaries to summaryKey.
func NewHandler(broker Broker, puller Puller, summaryKey string, logger *zerolog.Logger) *RMQHandler {
	return &RMQHandler{
		broker:     broker,
		puller:     puller,
		summaryKey: summaryKey,
		logger:     logger,
	}
}

// Start starts consuming and handling pull commands from RMQ.
func (h *RMQHandler) Start(ctx context.Context, queue string) error {
	errorsChan, err := h.broker.Consume(ctx, queue, h.Handle)
	if err != nil {
		return err
	}

	go func() {
		for err := range errorsChan {
			h.logger.Error().
				Err(err).
				Msg("can't handle message")
		}
	}()

	return nil
}

// Handle decodes pull command, runs it and publishes run summary.
// Returned error means message should be rejected.
func (h *RMQHandler) Handle(ctx context.Context, message []byte) error {
	cmd, err := decodeMessage(message)
	if err != nil {
		return err
	}

	h.logger.Debug().
		Str("basket", cmd.Basket).
		Int("items", len(cmd.Items)).
		Msg("pull command received")

	report, pullErr := h.puller.Pull(ctx, PullRequest(*cmd))

	summary := Summary(cmd.Basket, report, pullErr)
	if err := h.publishSummary(ctx, summary); err != nil {
		if pullErr != nil {
			return fmt.Errorf("pull failed: %w (%w)", pullErr, err)
		}
		return err
	}

	if pullErr != nil {
		return fmt.Errorf("pull failed: %w", pullErr)
	}

	h.logger.Debug().
		Str("basket", cmd.Basket).
		Int("run_id", summary.RunID).
		Msg("run summary published")

	return nil
}

func (h *RMQHandler) publishSummary(ctx context.Context, summary commander.RunSummary) error {
	msg, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("can't marshal run summary: %w", err)
	}

	if err := h.broker.Publish(ctx, h.summaryKey, msg); err != nil {
		return fmt.Errorf("can't publish run summary: %w", err)
	}

	return nil
}

func decodeMessage(msg []byte) (*commander.PullCommand, error) {
	var cmd commander.PullCommand
	if err := json.Unmarshal(msg, &cmd); err != nil {
		return nil, fmt.Errorf("can't decode pull command: %w", err)
	}

	if err := commander.Validate(cmd); err != nil {
		return nil, fmt.Errorf("can't accept pull command: %w", err)
	}

	return &cmd, nil
}

// PullRequest converts pull command into pull request.
func PullRequest(cmd commander.PullCommand) models.PullRequest {
	return models.PullRequest{
		Basket: cmd.Basket,
		Items: lo.Map(cmd.Items, func(item commander.Item, _ int) models.BasketItem {
			return models.BasketItem{
				Platform:  models.Platform(item.Platform),
				Title:     item.Title,
				Reference: item.Reference,
				Scale:     item.Scale,
				Weight:    item.Weight,
			}
		}),
		Countries:    cmd.Countries,
		PreferMSRP:   cmd.PreferMSRP,
		MaxCountries: cmd.MaxCountries,
	}
}

// Summary converts pull report and its error into run summary of basket.
func Summary(basket string, report *models.Report, err error) commander.RunSummary {
	summary := commander.RunSummary{
		Basket:  basket,
		Success: err == nil,
	}
	if err != nil {
		summary.Error = err.Error()
	}
	if report == nil {
		return summary
	}

	summary.RunID = report.RunID
	summary.Observed, summary.Missed = report.Observations()
	summary.Recommendations = lo.Map(report.Recommendations, func(rec models.Recommendation, _ int) commander.Recommendation {
		return commander.Recommendation{
			Platform:    string(rec.Platform),
			Country:     rec.Country,
			CountryName: rec.CountryName,
			Currency:    rec.Currency,
			Price:       rec.Price,
			USDPrice:    rec.USDPrice,
			DiffUSD:     rec.DiffUSD,
		}
	})

	return summary
}
