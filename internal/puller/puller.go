package puller

import (
	"context"
	"fmt"
	"time"

	"github.com/MichalMitros/game-price-puller/internal/fx"
	"github.com/MichalMitros/game-price-puller/internal/platform/models"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

//go:generate mockery --name Collector --filename collector.go
//go:generate mockery --name RatesProvider --filename rates_provider.go
//go:generate mockery --name Storage --filename storage.go

// Collector fetches prices of a pull request and turns them into recommendations.
type Collector interface {
	Collect(ctx context.Context, req models.PullRequest) ([]models.UnitResult, error)
	Recommend(results []models.UnitResult, rates fx.Rates) []models.Recommendation
}

// RatesProvider provides exchange rates.
type RatesProvider interface {
	Rates(ctx context.Context) fx.Rates
}

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() *time.Time
}

// Storage is runs and their results storage.
type Storage interface {
	// StartRun creates new run if there is no run for provided basket running.
	StartRun(ctx context.Context, basket string, preferMSRP bool) (run *models.Run, err error)
	// FinishRun finishes provided run and updates its statistics.
	FinishRun(ctx context.Context, run *models.Run) error
	// SaveResults stores observations and misses of run.
	SaveResults(ctx context.Context, runID int, results []models.UnitResult) error
	// SaveRecommendations stores recommendations of run.
	SaveRecommendations(ctx context.Context, runID int, recommendations []models.Recommendation) error
}

// Option is custom configuration of Puller.
type Option func(p *Puller)

// Puller runs pull requests and stores their results.
type Puller struct {
	collector Collector
	rates     RatesProvider
	storage   Storage
	logger    *zerolog.Logger
	clock     Clock
}

// NewPuller returns new Puller.
func NewPuller(collector Collector, rates RatesProvider, storage Storage, logger *zerolog.Logger, ops ...Option) *Puller {
	p := &Puller{
		collector: collector,
		rates:     rates,
		storage:   storage,
		logger:    logger,
		clock:     systemClock{},
	}

	for _, op := range ops {
		op(p)
	}

	return p
}

// Pull fetches prices of req basket, computes recommendations and stores them as a new run.
func (p Puller) Pull(ctx context.Context, req models.PullRequest) (*models.Report, error) {
	// insert new run in storage.
	run, err := p.storage.StartRun(ctx, req.Basket, req.PreferMSRP)
	if err != nil {
		return nil, fmt.Errorf("can't start pull: %w", err)
	}

	logger := p.logger.With().Int("run_id", run.ID).Str("basket", req.Basket).Logger()
	logger.Info().Int("items", len(req.Items)).Msg("pull started")

	// fetch prices.
	results, err := p.collector.Collect(ctx, req)
	if err != nil {
		return nil, p.finishPull(ctx, run, fmt.Errorf("can't collect prices: %w", err))
	}

	report := &models.Report{RunID: run.ID, Results: results}
	observed, missed := report.Observations()
	run.Observed = &observed
	run.Missed = &missed

	// recommend prices.
	report.Recommendations = p.collector.Recommend(results, p.rates.Rates(ctx))

	if err := p.storage.SaveResults(ctx, run.ID, results); err != nil {
		return nil, p.finishPull(ctx, run, fmt.Errorf("can't save results: %w", err))
	}

	if err := p.storage.SaveRecommendations(ctx, run.ID, report.Recommendations); err != nil {
		return nil, p.finishPull(ctx, run, fmt.Errorf("can't save recommendations: %w", err))
	}

	if err := p.finishPull(ctx, run, nil); err != nil {
		return nil, err
	}

	logger.Info().
		Int32("observed", observed).
		Int32("missed", missed).
		Int("recommendations", len(report.Recommendations)).
		Msg("pull finished")

	return report, nil
}

func (p Puller) finishPull(ctx context.Context, run *models.Run, status error) error {
	if status != nil {
		run.StatusMessage = lo.ToPtr(status.Error())
	}
	run.IsSuccess = lo.ToPtr(status == nil)
	run.FinishedAt = p.clock.Now()

	err := p.storage.FinishRun(ctx, run)
	if err != nil && status == nil {
		return fmt.Errorf("can't finish pull: %w", err)
	}

	if err != nil && status != nil {
		return fmt.Errorf("can't finish failed pull: %w (fail reason: %w)", err, status)
	}

	return status
}

// WithClock sets Puller's custom Clock.
func WithClock(c Clock) Option {
	return func(p *Puller) {
		p.clock = c
	}
}
