package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/MichalMitros/game-price-puller/internal/handler"
	"github.com/MichalMitros/game-price-puller/internal/handler/mocks"
	"github.com/MichalMitros/game-price-puller/internal/platform/models"
	"github.com/MichalMitros/game-price-puller/internal/platform/models/modelstesting"
	"github.com/MichalMitros/game-price-puller/pkg/v1/commander"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const summaryKey = "puller.summaries"

func pullCommand() commander.PullCommand {
	return commander.PullCommand{
		Basket: "shooters",
		Items: []commander.Item{
			{Platform: "Steam", Title: "Helldivers 2", Reference: "553850", Scale: 2, Weight: 0.5},
		},
		Countries:    []string{"US", "DE"},
		PreferMSRP:   true,
		MaxCountries: 10,
	}
}

func pullRequest() models.PullRequest {
	return models.PullRequest{
		Basket: "shooters",
		Items: []models.BasketItem{
			{Platform: models.PlatformSteam, Title: "Helldivers 2", Reference: "553850", Scale: 2, Weight: 0.5},
		},
		Countries:    []string{"US", "DE"},
		PreferMSRP:   true,
		MaxCountries: 10,
	}
}

func TestUnitHandle(t *testing.T) {
	logger := zerolog.Nop()
	item := modelstesting.FakeBasketItem()
	report := &models.Report{
		RunID: 7,
		Results: []models.UnitResult{
			modelstesting.FakeUnitResult(item, "US", true),
			modelstesting.FakeUnitResult(item, "DE", false),
		},
		Recommendations: []models.Recommendation{
			{
				Platform:    models.PlatformSteam,
				Country:     "US",
				CountryName: "United States",
				Currency:    "USD",
				Price:       39.99,
				USDPrice:    lo.ToPtr(39.99),
				DiffUSD:     lo.ToPtr(0.0),
			},
		},
	}

	msg, err := json.Marshal(pullCommand())
	require.NoError(t, err)

	puller := mocks.NewPuller(t)
	puller.On("Pull", mock.Anything, pullRequest()).Return(report, nil).Once()

	var published commander.RunSummary
	broker := mocks.NewBroker(t)
	broker.On("Publish", mock.Anything, summaryKey, mock.Anything).
		Run(func(args mock.Arguments) {
			require.NoError(t, json.Unmarshal(args.Get(2).([]byte), &published))
		}).
		Return(nil).
		Once()

	err = handler.NewHandler(broker, puller, summaryKey, &logger).Handle(context.TODO(), msg)

	assert.NoError(t, err)
	assert.Equal(t, commander.RunSummary{
		RunID:    7,
		Basket:   "shooters",
		Success:  true,
		Observed: 1,
		Missed:   1,
		Recommendations: []commander.Recommendation{
			{
				Platform:    "Steam",
				Country:     "US",
				CountryName: "United States",
				Currency:    "USD",
				Price:       39.99,
				USDPrice:    lo.ToPtr(39.99),
				DiffUSD:     lo.ToPtr(0.0),
			},
		},
	}, published, "should publish run summary")
}

func TestUnitHandlePullError(t *testing.T) {
	logger := zerolog.Nop()
	pullErr := errors.New("database is down")

	msg, err := json.Marshal(pullCommand())
	require.NoError(t, err)

	puller := mocks.NewPuller(t)
	puller.On("Pull", mock.Anything, pullRequest()).Return(&models.Report{RunID: 3}, pullErr).Once()

	var published commander.RunSummary
	broker := mocks.NewBroker(t)
	broker.On("Publish", mock.Anything, summaryKey, mock.Anything).
		Run(func(args mock.Arguments) {
			require.NoError(t, json.Unmarshal(args.Get(2).([]byte), &published))
		}).
		Return(nil).
		Once()

	err = handler.NewHandler(broker, puller, summaryKey, &logger).Handle(context.TODO(), msg)

	assert.ErrorIs(t, err, pullErr, "should return pull error")
	assert.Equal(t, commander.RunSummary{
		RunID:   3,
		Basket:  "shooters",
		Success: false,
		Error:   pullErr.Error(),
	}, published, "should publish failed run summary")
}

func TestUnitHandleInvalidMessage(t *testing.T) {
	logger := zerolog.Nop()

	tests := map[string][]byte{
		"not json":             []byte(`{"basket":`),
		"no basket":            []byte(`{"items":[{"platform":"Steam","reference":"553850"}]}`),
		"no items":             []byte(`{"basket":"shooters"}`),
		"no reference":         []byte(`{"basket":"shooters","items":[{"platform":"Steam"}]}`),
		"unsupported platform": []byte(`{"basket":"shooters","items":[{"platform":"Switch","reference":"70010000000025"}]}`),
	}

	for name, msg := range tests {
		t.Run(name, func(t *testing.T) {
			puller := mocks.NewPuller(t)
			broker := mocks.NewBroker(t)

			err := handler.NewHandler(broker, puller, summaryKey, &logger).Handle(context.TODO(), msg)

			assert.Error(t, err, "should reject message")
			puller.AssertNotCalled(t, "Pull", mock.Anything, mock.Anything)
			broker.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUnitHandlePublishError(t *testing.T) {
	logger := zerolog.Nop()
	publishErr := errors.New("channel closed")
	pullErr := errors.New("database is down")

	tests := map[string]struct {
		pullErr error
		wantErr []error
	}{
		"after successful pull": {
			wantErr: []error{publishErr},
		},
		"after failed pull": {
			pullErr: pullErr,
			wantErr: []error{publishErr, pullErr},
		},
	}

	msg, err := json.Marshal(pullCommand())
	require.NoError(t, err)

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			puller := mocks.NewPuller(t)
			puller.On("Pull", mock.Anything, pullRequest()).Return(&models.Report{RunID: 1}, tt.pullErr).Once()

			broker := mocks.NewBroker(t)
			broker.On("Publish", mock.Anything, summaryKey, mock.Anything).Return(publishErr).Once()

			err := handler.NewHandler(broker, puller, summaryKey, &logger).Handle(context.TODO(), msg)

			for _, wantErr := range tt.wantErr {
				assert.ErrorIs(t, err, wantErr)
			}
		})
	}
}

func TestUnitStart(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("consumes queue", func(t *testing.T) {
		errorsChan := make(chan error)
		close(errorsChan)

		broker := mocks.NewBroker(t)
		broker.On("Consume", mock.Anything, "puller.commands", mock.AnythingOfType("rabbitmq.HandlerFunc")).
			Return((<-chan error)(errorsChan), nil).
			Once()

		err := handler.NewHandler(broker, mocks.NewPuller(t), summaryKey, &logger).Start(context.TODO(), "puller.commands")

		assert.NoError(t, err)
	})

	t.Run("consume error", func(t *testing.T) {
		consumeErr := errors.New("no such queue")

		broker := mocks.NewBroker(t)
		broker.On("Consume", mock.Anything, "puller.commands", mock.Anything).
			Return(nil, consumeErr).
			Once()

		err := handler.NewHandler(broker, mocks.NewPuller(t), summaryKey, &logger).Start(context.TODO(), "puller.commands")

		assert.ErrorIs(t, err, consumeErr)
	})
}
