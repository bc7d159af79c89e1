package helpers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MichalMitros/game-price-puller/internal/aggregator"
	"github.com/MichalMitros/game-price-puller/internal/extractor"
	"github.com/MichalMitros/game-price-puller/internal/fetcher"
	"github.com/MichalMitros/game-price-puller/internal/locale"
	"github.com/MichalMitros/game-price-puller/internal/resolver"
	"github.com/MichalMitros/game-price-puller/internal/storefront"
	pgmodels "github.com/MichalMitros/game-price-puller/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/game-price-puller/internal/platform/storage/storagetesting"
	"github.com/MichalMitros/game-price-puller/pkg/v1/commander"
	"github.com/go-jet/jet/v2/qrm"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
)

const (
	contentType = "Content-Type"

	// SteamAppID is the only app known to fake Steam store.
	SteamAppID = "553850"
	// XboxStoreID is the only product known to fake Xbox store.
	XboxStoreID = "9NBLGGH4R315"
	// PlayStationProductID is the only product known to fake PlayStation store.
	PlayStationProductID = "UP0001-PPSA01234_00-GAMESTANDARD0000"

	// FXPath serves exchange rates of fake storefronts.
	FXPath = "/fx/latest/USD"

	waitTimeout = 30 * time.Second
)

// fakePrices maps country to currency, base and discounted price in minor units.
var fakePrices = map[string]struct {
	currency   string
	base       int
	discounted int
}{
	"US": {currency: "USD", base: 3999, discounted: 2999},
	"DE": {currency: "EUR", base: 3999, discounted: 3999},
	"JP": {currency: "JPY", base: 4500, discounted: 4500},
}

// FakeRates are exchange rates served at FXPath.
var FakeRates = map[string]float64{"USD": 1, "EUR": 0.9, "JPY": 150}

// NewStorefronts starts fake Steam, Xbox and PlayStation storefronts serving
// single product priced in US, DE and JP, and exchange rates at FXPath.
func NewStorefronts(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/api/appdetails", func(wrt http.ResponseWriter, req *http.Request) {
		appID := req.URL.Query().Get("appids")
		price, ok := fakePrices[strings.ToUpper(req.URL.Query().Get("cc"))]
		if appID != SteamAppID || !ok {
			writeJSON(t, wrt, map[string]any{appID: map[string]any{"success": false}})
			return
		}

		writeJSON(t, wrt, map[string]any{appID: map[string]any{
			"success": true,
			"data": map[string]any{
				"name": "HELLDIVERS 2",
				"price_overview": map[string]any{
					"currency": price.currency,
					"initial":  price.base,
					"final":    price.discounted,
				},
			},
		}})
	})

	mux.HandleFunc("/v9.0/sdk/products", func(wrt http.ResponseWriter, req *http.Request) {
		price, ok := fakePrices[req.URL.Query().Get("market")]
		if req.URL.Query().Get("bigIds") != XboxStoreID || !ok {
			writeJSON(t, wrt, map[string]any{"Products": []any{}})
			return
		}

		writeJSON(t, wrt, map[string]any{"Products": []any{map[string]any{
			"LocalizedProperties": []any{map[string]any{"ProductTitle": "HELLDIVERS 2 Standard Edition"}},
			"DisplaySkuAvailabilities": []any{map[string]any{"Availabilities": []any{map[string]any{
				"OrderManagementData": map[string]any{"Price": map[string]any{
					"MSRP":         float64(price.base) / 100,
					"ListPrice":    float64(price.discounted) / 100,
					"CurrencyCode": price.currency,
				}},
			}}}},
		}}})
	})

	mux.HandleFunc("/v7.0/products", func(wrt http.ResponseWriter, _ *http.Request) {
		wrt.WriteHeader(http.StatusNotFound)
	})

	mux.HandleFunc("/{locale}/product/{id}", func(wrt http.ResponseWriter, req *http.Request) {
		country := strings.ToUpper(req.PathValue("locale")[strings.Index(req.PathValue("locale"), "-")+1:])
		price, ok := fakePrices[country]
		if req.PathValue("id") != PlayStationProductID || !ok {
			wrt.WriteHeader(http.StatusNotFound)
			return
		}

		wrt.Header().Set(contentType, "text/html; charset=utf-8")
		fmt.Fprintf(wrt, `<html><head><script id="__NEXT_DATA__" type="application/json">
{"props":{"pageProps":{"product":{"name":"HELLDIVERS 2","edition":{"name":"Standard Edition"},"price":{"basePrice":"%.2f","discountedPrice":"%.2f","currencyCode":%q}}}}}
</script></head><body></body></html>`, float64(price.base)/100, float64(price.discounted)/100, price.currency)
	})

	mux.HandleFunc(FXPath, func(wrt http.ResponseWriter, _ *http.Request) {
		writeJSON(t, wrt, map[string]any{"result": "success", "rates": FakeRates})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

// Sources returns storefront sources talking to fake storefronts.
func Sources(t *testing.T, srv *httptest.Server, markets *locale.Table) []aggregator.Source {
	t.Helper()

	fet := Fetcher(srv)

	return []aggregator.Source{
		storefront.NewSteam(fet, markets, storefront.WithSteamURL(srv.URL)),
		storefront.NewXbox(fet, markets, storefront.WithXboxURLs(srv.URL, srv.URL)),
		storefront.NewPlayStation(
			fet,
			resolver.NewPlayStation(fet, resolver.WithStoreURL(srv.URL)),
			extractor.DefaultChain(),
			markets,
			storefront.WithGraphQL(false, ""),
		),
	}
}

// Fetcher returns fetcher using fake storefronts client.
func Fetcher(srv *httptest.Server) *fetcher.Fetcher {
	return fetcher.NewFetcher(srv.Client(), fetcher.Options{UserAgent: "gpp-e2e-test/0.0.1"})
}

// WaitForRunToBeFinished is blocking helper function, returns latest run of basket after it is finished.
func WaitForRunToBeFinished(t *testing.T, queryable qrm.Queryable, basket string) *pgmodels.Run {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			require.FailNow(t, "run wasn't finished in time", basket)
		case <-ticker.C:
		}

		basketID := storagetesting.GetBasketID(t, queryable, basket)
		if basketID == 0 {
			continue
		}

		if run := storagetesting.GetLatestRun(t, queryable, basketID); run != nil && run.FinishedAt != nil {
			return run
		}
	}
}

// WaitForSummary is blocking helper function, returns first run summary delivered to queue.
func WaitForSummary(t *testing.T, channel *amqp.Channel, queue string) commander.RunSummary {
	t.Helper()

	deliveries, err := channel.Consume(queue, "", true, false, false, false, nil)
	require.NoError(t, err, "can't consume summaries")

	select {
	case delivery := <-deliveries:
		var summary commander.RunSummary
		require.NoError(t, json.Unmarshal(delivery.Body, &summary), "can't decode run summary")
		return summary
	case <-time.After(waitTimeout):
		require.FailNow(t, "no run summary received", queue)
	}

	return commander.RunSummary{}
}

// DeclareRMQExchange is helper function for declaring RMQ exchange.
func DeclareRMQExchange(t *testing.T, ch *amqp.Channel, exchange string) {
	t.Helper()

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		require.FailNow(t, "can't declare exchange", exchange, err)
	}
}

// DeclareRMQQueue is helper function for declaring RMQ queue and binding and cleaning them after test is finished.
func DeclareRMQQueue(t *testing.T, channel *amqp.Channel, queueName, exchange, routingKey string) {
	t.Helper()

	_, err := channel.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		require.FailNow(t, "can't declare queue", queueName, err)
	}

	err = channel.QueueBind(queueName, routingKey, exchange, false, nil)
	if err != nil {
		require.FailNow(t, "can't bind queue", queueName, routingKey, err)
	}

	t.Cleanup(func() {
		_, err := channel.QueueDelete(queueName, false, false, false)
		if err != nil {
			require.FailNow(t, "can't delete queue", queueName, err)
		}
	})
}

func writeJSON(t *testing.T, wrt http.ResponseWriter, body any) {
	wrt.Header().Set(contentType, "application/json")
	require.NoError(t, json.NewEncoder(wrt).Encode(body))
}
