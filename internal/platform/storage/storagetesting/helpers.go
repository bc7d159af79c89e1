package storagetesting

import (
	"database/sql"
	"os"
	"testing"

	pgmodels "github.com/MichalMitros/game-price-puller/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/game-price-puller/internal/platform/storage/gen/postgres/public/table"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"

	_ "github.com/lib/pq"
)

// Open opens connection to DB. Skips the test when DATABASE_URL is not set.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("please provide database URL via DATABASE_URL environment variable")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("can't open connection to %q: %s", dbURL, err)
	}

	return db
}

// InsertBaskets is a helper test function to insert baskets.
func InsertBaskets(t *testing.T, exc qrm.Executable, baskets ...pgmodels.Basket) {
	t.Helper()

	if len(baskets) == 0 {
		return
	}

	_, err := table.Basket.INSERT(table.Basket.AllColumns).MODELS(baskets).Exec(exc)
	if err != nil {
		t.Fatal("can't insert baskets", err)
	}
}

// InsertRuns is a helper test function to insert runs.
func InsertRuns(t *testing.T, exc qrm.Executable, runs ...pgmodels.Run) {
	t.Helper()

	if len(runs) == 0 {
		return
	}

	_, err := table.Run.INSERT(table.Run.AllColumns).MODELS(runs).Exec(exc)
	if err != nil {
		t.Fatal("can't insert runs", err)
	}
}

// GetRuns is a helper test function to get all runs ordered by id.
func GetRuns(t *testing.T, queryable qrm.Queryable) []pgmodels.Run {
	t.Helper()

	runs := []pgmodels.Run{}
	err := table.Run.SELECT(table.Run.AllColumns).
		WHERE(table.Run.ID.IS_NOT_NULL()).
		ORDER_BY(table.Run.ID.ASC()).
		Query(queryable, &runs)
	if err != nil {
		t.Fatal("can't get runs", err)
	}

	return runs
}

// GetBasketID is a helper test function to get id of basket, 0 if it doesn't exist.
func GetBasketID(t *testing.T, queryable qrm.Queryable, name string) int {
	t.Helper()

	baskets := []pgmodels.Basket{}
	err := table.Basket.SELECT(table.Basket.ID).
		WHERE(table.Basket.Name.EQ(pg.String(name))).
		Query(queryable, &baskets)
	if err != nil {
		t.Fatal("can't get basket", err)
	}

	if len(baskets) == 0 {
		return 0
	}
	return int(baskets[0].ID)
}

// GetLatestRun is a helper test function to get latest run of basket, nil if there is none.
func GetLatestRun(t *testing.T, queryable qrm.Queryable, basketID int) *pgmodels.Run {
	t.Helper()

	runs := []pgmodels.Run{}
	err := table.Run.SELECT(table.Run.AllColumns).
		WHERE(table.Run.BasketID.EQ(pg.Int32(int32(basketID)))).
		ORDER_BY(table.Run.ID.DESC()).
		LIMIT(1).
		Query(queryable, &runs)
	if err != nil {
		t.Fatal("can't get latest run", err)
	}

	if len(runs) == 0 {
		return nil
	}
	return &runs[0]
}

// GetObservations is a helper test function to get observations of run ordered by id.
func GetObservations(t *testing.T, queryable qrm.Queryable, runID int) []pgmodels.Observation {
	t.Helper()

	observations := []pgmodels.Observation{}
	err := table.Observation.SELECT(table.Observation.AllColumns).
		WHERE(table.Observation.RunID.EQ(pg.Int32(int32(runID)))).
		ORDER_BY(table.Observation.ID.ASC()).
		Query(queryable, &observations)
	if err != nil {
		t.Fatal("can't get observations", err)
	}

	return observations
}

// CleanupData deletes all data from tables.
func CleanupData(t *testing.T, exc qrm.Executable) {
	t.Helper()

	_, err := table.Recommendation.DELETE().WHERE(table.Recommendation.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete recommendations data", err)
	}

	_, err = table.Observation.DELETE().WHERE(table.Observation.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete observations data", err)
	}

	_, err = table.Run.DELETE().WHERE(table.Run.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete runs data", err)
	}

	_, err = table.Basket.DELETE().WHERE(table.Basket.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete baskets data", err)
	}
}
