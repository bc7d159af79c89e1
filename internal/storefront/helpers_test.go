package storefront_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MichalMitros/game-price-puller/internal/fetcher"
	"github.com/MichalMitros/game-price-puller/internal/locale"
	"github.com/MichalMitros/game-price-puller/internal/platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, routes map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
		handler, ok := routes[req.URL.Path]
		if !ok {
			wrt.WriteHeader(http.StatusNotFound)
			return
		}
		handler(wrt, req)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func writeJSON(wrt http.ResponseWriter, status int, body string) {
	wrt.Header().Set("Content-Type", "application/json")
	wrt.WriteHeader(status)
	wrt.Write([]byte(body))
}

func writeHTML(wrt http.ResponseWriter, body string) {
	wrt.Header().Set("Content-Type", "text/html; charset=utf-8")
	wrt.Write([]byte(body))
}

func newFetcher(srv *httptest.Server) *fetcher.Fetcher {
	return fetcher.NewFetcher(srv.Client(), fetcher.Options{})
}

func markets(t *testing.T) *locale.Table {
	t.Helper()

	table, err := locale.Default()
	require.NoError(t, err)
	return table
}

// assertOutcome checks that outcome holds want, or a miss with wantReason when want is nil.
func assertOutcome(t *testing.T, outcome models.Outcome, want *models.PriceObservation, wantReason models.MissReason) {
	t.Helper()

	observation, observed := outcome.Observation()
	miss, missed := outcome.Miss()
	require.NotEqual(t, observed, missed, "should hold exactly one of observation and miss")

	if want != nil {
		require.True(t, observed, "should observe price, got miss %+v", miss)
		assert.Equal(t, *want, observation, "should return correct observation")
		return
	}

	require.True(t, missed, "should miss, got observation %+v", observation)
	assert.Equal(t, wantReason, miss.Reason, "should return correct reason: %s", miss.Detail)
}

// panickingFetcher panics on every call.
type panickingFetcher struct{}

func (panickingFetcher) Get(context.Context, fetcher.Request) (*fetcher.Response, error) {
	panic("boom")
}

func (panickingFetcher) GetJSON(context.Context, fetcher.Request, any) error {
	panic("boom")
}
