package storage

import (
	"github.com/MichalMitros/game-price-puller/internal/platform/models"
	"github.com/samber/lo"

	pgmodels "github.com/MichalMitros/game-price-puller/internal/platform/storage/gen/postgres/public/model"
)

//go:generate make -C ../../../ generate-db

func toDBRun(run *models.Run) *pgmodels.Run {
	return &pgmodels.Run{
		ID:            int32(run.ID),
		BasketID:      int32(run.BasketID),
		CreatedAt:     run.CreatedAt,
		FinishedAt:    run.FinishedAt,
		Success:       run.IsSuccess,
		StatusMessage: run.StatusMessage,
		PreferMsrp:    run.PreferMSRP,
		Observed:      run.Observed,
		Missed:        run.Missed,
	}
}

// FromDBRun converts postgres run model into models.Run.
func FromDBRun(run *pgmodels.Run) *models.Run {
	return &models.Run{
		ID:            int(run.ID),
		BasketID:      int(run.BasketID),
		CreatedAt:     run.CreatedAt,
		FinishedAt:    run.FinishedAt,
		IsSuccess:     run.Success,
		StatusMessage: run.StatusMessage,
		PreferMSRP:    run.PreferMsrp,
		Observed:      run.Observed,
		Missed:        run.Missed,
	}
}

// ToDBObservation converts unit result into postgres observation row.
// Observed units carry price columns, missed units carry miss columns.
func ToDBObservation(runID int, result *models.UnitResult) pgmodels.Observation {
	row := pgmodels.Observation{
		RunID:     int32(runID),
		Platform:  string(result.Query.Platform),
		Title:     result.Query.Title,
		Reference: result.Query.Reference,
		Country:   result.Query.Country,
	}

	if observation, ok := result.Outcome.Observation(); ok {
		row.Currency = lo.EmptyableToPtr(observation.Currency)
		row.Amount = lo.ToPtr(observation.Amount)
		row.BasePrice = observation.BasePrice
		row.DiscountedPrice = observation.DiscountedPrice
		row.SourceURL = lo.EmptyableToPtr(observation.SourceURL)
		row.EditionLabel = observation.EditionLabel
		row.ParseSource = lo.EmptyableToPtr(string(observation.ParseSource))
		return row
	}

	miss, ok := result.Outcome.Miss()
	if !ok {
		miss = models.MissObservation{Reason: models.MissException, Detail: "empty outcome"}
	}
	row.MissReason = lo.ToPtr(string(miss.Reason))
	row.MissDetail = lo.EmptyableToPtr(miss.Detail)

	return row
}

// ToDBRecommendation converts recommendation into postgres recommendation row.
func ToDBRecommendation(runID int, rec *models.Recommendation) pgmodels.Recommendation {
	return pgmodels.Recommendation{
		RunID:       int32(runID),
		Platform:    string(rec.Platform),
		Country:     rec.Country,
		CountryName: rec.CountryName,
		Currency:    rec.Currency,
		Price:       rec.Price,
		UsdPrice:    rec.USDPrice,
		DiffUsd:     rec.DiffUSD,
	}
}
