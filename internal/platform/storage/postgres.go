package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MichalMitros/game-price-puller/internal/platform"
	"github.com/MichalMitros/game-price-puller/internal/platform/models"
	"github.com/MichalMitros/game-price-puller/internal/platform/storage/gen/postgres/public/table"
	"github.com/samber/lo"

	pgmodels "github.com/MichalMitros/game-price-puller/internal/platform/storage/gen/postgres/public/model"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

const defaultBatchSize = 500

// Postgres is storage for baskets, runs, observations and recommendations.
type Postgres struct {
	db        *sql.DB
	batchSize int
}

// NewPostgres returns new Postgres.
func NewPostgres(db *sql.DB) Postgres {
	return Postgres{
		db:        db,
		batchSize: defaultBatchSize,
	}
}

// StartRun creates new unfinished run of basket in database and returns it.
// It returns ErrAlreadyRunning if previous run of basket is not finished yet.
func (p Postgres) StartRun(ctx context.Context, basket string, preferMSRP bool) (*models.Run, error) {
	run := &models.Run{
		PreferMSRP: preferMSRP,
	}

	err := runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		dbBasket, err := getBasket(ctx, tx, basket)
		if err != nil {
			return fmt.Errorf("can't get basket from database: %w", err)
		}

		run.BasketID = int(dbBasket.ID)

		lastRun, err := getLastRun(ctx, tx, dbBasket.ID)
		if err != nil && !errors.Is(err, qrm.ErrNoRows) {
			return fmt.Errorf("can't get last run from database: %w", err)
		}

		if lastRun != nil && lastRun.FinishedAt == nil && lastRun.Success == nil {
			return platform.ErrAlreadyRunning
		}

		newRun := toDBRun(run)
		err = table.Run.INSERT(
			table.Run.BasketID,
			table.Run.PreferMsrp,
		).
			MODEL(newRun).
			RETURNING(table.Run.ID, table.Run.CreatedAt).
			QueryContext(ctx, tx, newRun)
		if err != nil {
			return fmt.Errorf("can't insert run into database: %w", err)
		}

		run.ID = int(newRun.ID)
		run.CreatedAt = newRun.CreatedAt

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("can't add run: %w", err)
	}

	return run, nil
}

// FinishRun sets run as finished and updates run's statistics.
func (p Postgres) FinishRun(ctx context.Context, run *models.Run) error {
	columnList := table.Run.AllColumns.Except(
		table.Run.ID,
		table.Run.BasketID,
		table.Run.CreatedAt,
		table.Run.PreferMsrp,
	)

	result, err := table.Run.UPDATE(columnList).
		MODEL(toDBRun(run)).
		WHERE(table.Run.ID.EQ(pg.Int32(int32(run.ID)))).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't update run: %w", err)
	}

	if rowsAffected, err := result.RowsAffected(); rowsAffected == 0 || err != nil {
		return fmt.Errorf("can't update run: %w", errors.Join(err, sql.ErrNoRows))
	}

	return nil
}

// SaveResults inserts observation row for every unit result of run.
func (p Postgres) SaveResults(ctx context.Context, runID int, results []models.UnitResult) error {
	if len(results) == 0 {
		return nil
	}

	rows := lo.Map(results, func(_ models.UnitResult, ix int) pgmodels.Observation {
		return ToDBObservation(runID, &results[ix])
	})

	return runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		for _, batch := range lo.Chunk(rows, p.batchSize) {
			_, err := table.Observation.INSERT(table.Observation.MutableColumns).
				MODELS(batch).
				ExecContext(ctx, tx)
			if err != nil {
				return fmt.Errorf("can't insert observations into database: %w", err)
			}
		}
		return nil
	})
}

// SaveRecommendations inserts recommendations of run.
func (p Postgres) SaveRecommendations(ctx context.Context, runID int, recommendations []models.Recommendation) error {
	if len(recommendations) == 0 {
		return nil
	}

	rows := lo.Map(recommendations, func(_ models.Recommendation, ix int) pgmodels.Recommendation {
		return ToDBRecommendation(runID, &recommendations[ix])
	})

	_, err := table.Recommendation.INSERT(table.Recommendation.MutableColumns).
		MODELS(rows).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't insert recommendations into database: %w", err)
	}

	return nil
}

// Recommendations returns recommendations of run ordered as they were saved.
func (p Postgres) Recommendations(ctx context.Context, runID int) ([]models.Recommendation, error) {
	rows := make([]pgmodels.Recommendation, 0)
	err := table.Recommendation.SELECT(table.Recommendation.AllColumns).
		WHERE(table.Recommendation.RunID.EQ(pg.Int32(int32(runID)))).
		ORDER_BY(table.Recommendation.ID.ASC()).
		QueryContext(ctx, p.db, &rows)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("can't get recommendations: %w", err)
	}

	return lo.Map(rows, func(row pgmodels.Recommendation, _ int) models.Recommendation {
		return models.Recommendation{
			Platform:    models.Platform(row.Platform),
			Country:     row.Country,
			CountryName: row.CountryName,
			Currency:    row.Currency,
			Price:       row.Price,
			USDPrice:    row.UsdPrice,
			DiffUSD:     row.DiffUsd,
		}
	}), nil
}

func getBasket(ctx context.Context, db qrm.DB, name string) (*pgmodels.Basket, error) {
	var basket pgmodels.Basket
	err := table.Basket.SELECT(table.Basket.AllColumns).
		WHERE(table.Basket.Name.EQ(pg.String(name))).
		QueryContext(ctx, db, &basket)

	if errors.Is(err, qrm.ErrNoRows) {
		return insertBasket(ctx, db, name)
	}

	if err != nil {
		return nil, err
	}

	return &basket, nil
}

func insertBasket(ctx context.Context, db qrm.DB, name string) (*pgmodels.Basket, error) {
	basket := pgmodels.Basket{
		Name: name,
	}
	err := table.Basket.INSERT(table.Basket.Name).
		MODEL(basket).
		RETURNING(table.Basket.AllColumns).
		QueryContext(ctx, db, &basket)
	if err != nil {
		return nil, fmt.Errorf("can't add basket: %w", err)
	}

	return &basket, nil
}

func getLastRun(ctx context.Context, db qrm.DB, basketID int32) (*pgmodels.Run, error) {
	var run pgmodels.Run
	err := table.Run.SELECT(
		table.Run.ID,
		table.Run.CreatedAt,
		table.Run.FinishedAt,
		table.Run.Success,
		table.Run.StatusMessage,
	).
		WHERE(table.Run.BasketID.EQ(pg.Int32(basketID))).
		ORDER_BY(table.Run.CreatedAt.DESC(), table.Run.ID.DESC()).
		LIMIT(1).
		QueryContext(ctx, db, &run)
	if err != nil {
		return nil, err
	}

	return &run, nil
}

func runInTransaction(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	var (
		tx  *sql.Tx
		err error
	)

	if tx, err = db.BeginTx(ctx, nil); err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("can't rollback transaction: %w (rollback reason: %w)", rbErr, err)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit transaction: %w", err)
	}

	return nil
}
