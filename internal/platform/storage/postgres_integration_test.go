package storage_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/MichalMitros/game-price-puller/internal/platform"
	"github.com/MichalMitros/game-price-puller/internal/platform/models"
	"github.com/MichalMitros/game-price-puller/internal/platform/models/modelstesting"
	"github.com/MichalMitros/game-price-puller/internal/platform/storage"
	pgmodels "github.com/MichalMitros/game-price-puller/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/game-price-puller/internal/platform/storage/storagetesting"
	"github.com/go-faker/faker/v4"
	_ "github.com/lib/pq"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestPostgresIntegration(t *testing.T) {
	suite.Run(t, new(PostgresTestSuite))
}

type PostgresTestSuite struct {
	suite.Suite
	DB *sql.DB
}

func (s *PostgresTestSuite) SetupSuite() {
	s.DB = storagetesting.Open(s.T())
	storagetesting.CleanupData(s.T(), s.DB)
}

func (s *PostgresTestSuite) TearDownSuite() {
	storagetesting.CleanupData(s.T(), s.DB)
	if err := s.DB.Close(); err != nil {
		s.FailNow("close DB", err)
	}
}

func (s *PostgresTestSuite) TestIntegrationStartRun() {
	storagetesting.CleanupData(s.T(), s.DB)
	basket := faker.Word()

	tests := map[string]struct {
		storedBasket *pgmodels.Basket
		storedRuns   []pgmodels.Run
		preferMSRP   bool
		wantRun      *models.Run
		wantErr      error
	}{
		"new basket": {
			preferMSRP: true,
			wantRun:    &models.Run{PreferMSRP: true},
		},
		"first run": {
			storedBasket: &pgmodels.Basket{ID: 123, Name: basket},
			wantRun:      &models.Run{BasketID: 123},
		},
		"after successful run": {
			storedBasket: &pgmodels.Basket{ID: 123, Name: basket},
			storedRuns: []pgmodels.Run{
				{ID: 1001, BasketID: 123, Success: lo.ToPtr(true), FinishedAt: lo.ToPtr(time.Now())},
			},
			wantRun: &models.Run{BasketID: 123},
		},
		"after failed run": {
			storedBasket: &pgmodels.Basket{ID: 123, Name: basket},
			storedRuns: []pgmodels.Run{
				{ID: 1001, BasketID: 123, Success: lo.ToPtr(false), FinishedAt: lo.ToPtr(time.Now())},
			},
			wantRun: &models.Run{BasketID: 123},
		},
		"already running error": {
			storedBasket: &pgmodels.Basket{ID: 123, Name: basket},
			storedRuns: []pgmodels.Run{
				{ID: 1001, BasketID: 123, CreatedAt: time.Now()},
			},
			wantErr: platform.ErrAlreadyRunning,
		},
	}

	for name, tt := range tests {
		s.Run(name, func() {
			defer storagetesting.CleanupData(s.T(), s.DB)

			if tt.storedBasket != nil {
				storagetesting.InsertBaskets(s.T(), s.DB, *tt.storedBasket)
			}
			storagetesting.InsertRuns(s.T(), s.DB, tt.storedRuns...)

			run, err := storage.NewPostgres(s.DB).StartRun(context.TODO(), basket, tt.preferMSRP)

			if tt.wantErr != nil {
				s.Require().ErrorIs(err, tt.wantErr, "should return correct error")
				return
			}
			s.Require().NoError(err, "shouldn't return any error")
			assertRun(s.T(), tt.wantRun, run)
		})
	}
}

func (s *PostgresTestSuite) TestIntegrationFinishRun() {
	storagetesting.CleanupData(s.T(), s.DB)
	defer storagetesting.CleanupData(s.T(), s.DB)

	finishedAt := time.Date(2024, time.April, 1, 2, 1, 1, 0, time.UTC)
	storagetesting.InsertBaskets(s.T(), s.DB, pgmodels.Basket{ID: 1001, Name: faker.Word()})
	storagetesting.InsertRuns(s.T(), s.DB,
		pgmodels.Run{ID: 1001, BasketID: 1001, CreatedAt: finishedAt.Add(-time.Hour)},
		pgmodels.Run{ID: 1002, BasketID: 1001, CreatedAt: finishedAt.Add(-2 * time.Hour), Success: lo.ToPtr(true)},
	)

	post := storage.NewPostgres(s.DB)

	err := post.FinishRun(context.TODO(), &models.Run{
		ID:            1001,
		BasketID:      1001,
		FinishedAt:    &finishedAt,
		IsSuccess:     lo.ToPtr(false),
		StatusMessage: lo.ToPtr("can't collect prices"),
		Observed:      lo.ToPtr(int32(3)),
		Missed:        lo.ToPtr(int32(2)),
	})
	s.Require().NoError(err, "shouldn't return any error")

	runs := storagetesting.GetRuns(s.T(), s.DB)
	s.Require().Len(runs, 2)

	s.Equal(int32(1001), runs[0].BasketID)
	s.Require().NotNil(runs[0].FinishedAt)
	s.WithinDuration(finishedAt, *runs[0].FinishedAt, time.Millisecond)
	s.Equal(lo.ToPtr(false), runs[0].Success)
	s.Equal(lo.ToPtr("can't collect prices"), runs[0].StatusMessage)
	s.Equal(lo.ToPtr(int32(3)), runs[0].Observed)
	s.Equal(lo.ToPtr(int32(2)), runs[0].Missed)
	s.Nil(runs[1].FinishedAt, "shouldn't update other runs")

	err = post.FinishRun(context.TODO(), &models.Run{ID: 404, FinishedAt: &finishedAt})
	s.Error(err, "should fail for not existing run")
}

func (s *PostgresTestSuite) TestIntegrationSaveResults() {
	storagetesting.CleanupData(s.T(), s.DB)
	defer storagetesting.CleanupData(s.T(), s.DB)

	post := storage.NewPostgres(s.DB)
	run, err := post.StartRun(context.TODO(), faker.Word(), false)
	s.Require().NoError(err)

	item := modelstesting.FakeBasketItem()
	results := []models.UnitResult{
		modelstesting.FakeUnitResult(item, "DE", true),
		modelstesting.FakeUnitResult(item, "US", false),
	}

	s.Require().NoError(post.SaveResults(context.TODO(), run.ID, results))

	rows := storagetesting.GetObservations(s.T(), s.DB, run.ID)
	s.Require().Len(rows, 2)

	observation, _ := results[0].Outcome.Observation()
	s.Equal("DE", rows[0].Country)
	s.Equal(lo.ToPtr(observation.Currency), rows[0].Currency)
	s.Require().NotNil(rows[0].Amount)
	s.InDelta(observation.Amount, *rows[0].Amount, 0.001)
	s.Nil(rows[0].MissReason, "observed unit shouldn't have miss reason")

	miss, _ := results[1].Outcome.Miss()
	s.Equal("US", rows[1].Country)
	s.Nil(rows[1].Amount, "missed unit shouldn't have amount")
	s.Equal(lo.ToPtr(string(miss.Reason)), rows[1].MissReason)
}

func (s *PostgresTestSuite) TestIntegrationSaveRecommendations() {
	storagetesting.CleanupData(s.T(), s.DB)
	defer storagetesting.CleanupData(s.T(), s.DB)

	post := storage.NewPostgres(s.DB)
	run, err := post.StartRun(context.TODO(), faker.Word(), false)
	s.Require().NoError(err)

	recommendations := []models.Recommendation{
		{
			Platform: models.PlatformSteam, Country: "DE", CountryName: "Germany", Currency: "EUR",
			Price: 57.99, USDPrice: lo.ToPtr(64.43), DiffUSD: lo.ToPtr(-3.56),
		},
		{
			Platform: models.PlatformSteam, Country: "JP", CountryName: "Japan", Currency: "JPY",
			Price: 10500,
		},
	}

	s.Require().NoError(post.SaveRecommendations(context.TODO(), run.ID, recommendations))

	stored, err := post.Recommendations(context.TODO(), run.ID)
	s.Require().NoError(err)
	s.Equal(recommendations, stored, "should read saved recommendations back")
}

// assertRun is a helper test function to assert run.
func assertRun(t *testing.T, expected, actual *models.Run) {
	t.Helper()

	require.NotNil(t, actual, "run should not be nil")

	require.NotZero(t, actual.BasketID, "run should have basket id")
	require.NotZero(t, actual.ID, "run should have id")
	require.NotZero(t, actual.CreatedAt.UnixMilli(), "run should have \"created at\" set")

	actual.CreatedAt = time.Time{}
	actual.ID = 0
	if expected.BasketID == 0 {
		actual.BasketID = 0
	}

	assert.Equal(t, *expected, *actual, "run has incorrect values")
}
