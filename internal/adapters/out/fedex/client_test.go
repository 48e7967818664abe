package fedex_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warehouse/internal/adapters/out/fedex"
	"warehouse/internal/core/domain/model/address"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/ports"
)

// fixedRates is an exchange source pinned to one conversion rate.
type fixedRates struct {
	rate decimal.Decimal
}

func (f fixedRates) YenPer(_ context.Context, _ string) (decimal.Decimal, error) {
	return f.rate, nil
}

// tierReply describes how the fake carrier answers one service tier.
type tierReply struct {
	status      int
	errMessage  string
	charge      string
	currency    string
	commitDay   string
	commitTime  string
	transitTime string
}

// carrierServer fakes the OAuth and rate endpoints. It records every rate
// request body for assertions.
type carrierServer struct {
	t        *testing.T
	authFail bool
	replies  map[string]tierReply

	mu       sync.Mutex
	requests []map[string]any
}

func (c *carrierServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		if c.authFail {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(c.t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(c.t, r.ParseForm())
		assert.Equal(c.t, "client_credentials", r.FormValue("grant_type"))
		fmt.Fprint(w, `{"access_token":"test-token"}`)
	})
	mux.HandleFunc("/rate/v1/rates/quotes", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(c.t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(c.t, "en_US", r.Header.Get("X-locale"))

		raw, err := io.ReadAll(r.Body)
		require.NoError(c.t, err)

		var body map[string]any
		require.NoError(c.t, json.Unmarshal(raw, &body))
		c.mu.Lock()
		c.requests = append(c.requests, body)
		c.mu.Unlock()

		shipment := body["requestedShipment"].(map[string]any)
		serviceType := shipment["serviceType"].(string)

		reply, ok := c.replies[serviceType]
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"errors":[{"message":"Service not available."}]}`)
			return
		}
		if reply.status != 0 && reply.status != http.StatusOK {
			w.WriteHeader(reply.status)
			fmt.Fprintf(w, `{"errors":[{"message":%q}]}`, reply.errMessage)
			return
		}

		commit := ""
		if reply.commitDay != "" {
			commit = fmt.Sprintf(`,"commit":{"dateDetail":{"dayFormat":%q},"timeDetail":{"timeFormat":%q}}`,
				reply.commitDay, reply.commitTime)
		}
		operational := ""
		if reply.transitTime != "" {
			operational = fmt.Sprintf(`,"operationalDetail":{"transitTime":%q}`, reply.transitTime)
		}

		fmt.Fprintf(w, `{"output":{"rateReplyDetails":[{
			"serviceType":%q,
			"serviceName":"%s (retail)",
			"ratedShipmentDetails":[
				{"rateType":"ACCOUNT","totalNetCharge":1,"currency":"JPY"},
				{"rateType":"LIST","totalNetCharge":%s,"currency":%q}
			]%s%s
		}]}}`, serviceType, serviceType, reply.charge, reply.currency, commit, operational)
	})
	return mux
}

func (c *carrierServer) capturedRequests() []map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]map[string]any(nil), c.requests...)
}

func newTestClient(t *testing.T, server *carrierServer) (*fedex.Client, *httptest.Server) {
	ts := httptest.NewServer(server.handler())
	t.Cleanup(ts.Close)

	client, err := fedex.NewClient(fedex.Config{
		APIKey:        "key",
		SecretKey:     "secret",
		AccountNumber: "740561073",
		BaseURL:       ts.URL,
	}, fixedRates{rate: decimal.NewFromInt(150)}, discardLogger())
	require.NoError(t, err)
	return client, ts
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func usDestination(t *testing.T) *address.Address {
	dest, err := address.NewAddress(
		kernel.NewUUID(), kernel.NewUUID(),
		"Jordan Smith", "15550100",
		"United States", "98101 ", "Washington", "Seattle",
		[]string{"123 Pine St"},
	)
	require.NoError(t, err)
	return dest
}

func quoteRequest(t *testing.T) ports.QuoteRequest {
	return ports.QuoteRequest{
		WeightKg:        1.2,
		Destination:     usDestination(t),
		CustomsValueYen: 15000,
		ShipDate:        time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}
}

func allTiersJPY(charges map[string]string) map[string]tierReply {
	replies := make(map[string]tierReply, len(charges))
	for tier, charge := range charges {
		replies[tier] = tierReply{charge: charge, currency: "JPY", transitTime: "5 days"}
	}
	return replies
}

func TestGetQuotes_RanksTiersByYenRate(t *testing.T) {
	server := &carrierServer{t: t, replies: allTiersJPY(map[string]string{
		"FEDEX_INTERNATIONAL_CONNECT_PLUS":     "9800",
		"INTERNATIONAL_ECONOMY":                "7200",
		"FEDEX_INTERNATIONAL_PRIORITY":         "14100",
		"FEDEX_INTERNATIONAL_PRIORITY_EXPRESS": "16800",
		"INTERNATIONAL_FIRST":                  "21500",
	})}
	client, _ := newTestClient(t, server)

	result, err := client.GetQuotes(context.Background(), quoteRequest(t))
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Len(t, result.Quotes, 5)

	assert.Equal(t, "INTERNATIONAL_ECONOMY", result.Quotes[0].ServiceType)
	assert.Equal(t, int64(7200), result.Quotes[0].AmountYen)
	assert.Equal(t, "JPY", result.Quotes[0].BillingCurrency)
	assert.Equal(t, "INTERNATIONAL_ECONOMY (retail)", result.Quotes[0].ServiceName)
	for i := 1; i < len(result.Quotes); i++ {
		assert.LessOrEqual(t, result.Quotes[i-1].AmountYen, result.Quotes[i].AmountYen)
	}
}

func TestGetQuotes_ConvertsUsdTiersToYen(t *testing.T) {
	replies := allTiersJPY(map[string]string{
		"INTERNATIONAL_ECONOMY": "7200",
	})
	replies["FEDEX_INTERNATIONAL_PRIORITY"] = tierReply{charge: "102.50", currency: "USD", transitTime: "3 days"}
	server := &carrierServer{t: t, replies: replies}
	client, _ := newTestClient(t, server)

	result, err := client.GetQuotes(context.Background(), quoteRequest(t))
	require.NoError(t, err)
	require.True(t, result.Success)

	var priority *ports.Quote
	for i := range result.Quotes {
		if result.Quotes[i].ServiceType == "FEDEX_INTERNATIONAL_PRIORITY" {
			priority = &result.Quotes[i]
		}
	}
	require.NotNil(t, priority)
	assert.Equal(t, "USD", priority.BillingCurrency)
	assert.True(t, priority.BillingAmount.Equal(decimal.RequireFromString("102.50")))
	assert.Equal(t, int64(15375), priority.AmountYen)
}

func TestGetQuotes_SkipsFailingTiers(t *testing.T) {
	replies := allTiersJPY(map[string]string{
		"INTERNATIONAL_ECONOMY":        "7200",
		"FEDEX_INTERNATIONAL_PRIORITY": "14100",
	})
	replies["INTERNATIONAL_FIRST"] = tierReply{status: http.StatusServiceUnavailable, errMessage: "Service temporarily unavailable."}
	server := &carrierServer{t: t, replies: replies}
	client, _ := newTestClient(t, server)

	result, err := client.GetQuotes(context.Background(), quoteRequest(t))
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Len(t, result.Quotes, 2)
}

func TestGetQuotes_AllTiersFailed_AddressHint(t *testing.T) {
	server := &carrierServer{t: t, replies: map[string]tierReply{}}
	for _, tier := range []string{
		"FEDEX_INTERNATIONAL_CONNECT_PLUS", "INTERNATIONAL_ECONOMY",
		"FEDEX_INTERNATIONAL_PRIORITY", "FEDEX_INTERNATIONAL_PRIORITY_EXPRESS",
		"INTERNATIONAL_FIRST",
	} {
		server.replies[tier] = tierReply{status: http.StatusBadRequest, errMessage: "The postal code was not found."}
	}
	client, _ := newTestClient(t, server)

	result, err := client.GetQuotes(context.Background(), quoteRequest(t))
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "postal/ZIP code is correct")
	assert.Empty(t, result.Quotes)
}

func TestGetQuotes_AllTiersFailed_GenericMessage(t *testing.T) {
	server := &carrierServer{t: t, replies: map[string]tierReply{}}
	client, _ := newTestClient(t, server)

	request := quoteRequest(t)
	request.Destination = remoteDestination(t)

	result, err := client.GetQuotes(context.Background(), request)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "No FedEx services available for this route")
}

func TestGetQuotes_AuthFailure_SoftResult(t *testing.T) {
	server := &carrierServer{t: t, authFail: true}
	client, _ := newTestClient(t, server)

	result, err := client.GetQuotes(context.Background(), quoteRequest(t))
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Failed to authenticate with FedEx API", result.Message)
}

func TestGetQuotes_UsDestinationWithoutState_SoftResult(t *testing.T) {
	server := &carrierServer{t: t}
	client, _ := newTestClient(t, server)

	dest, err := address.NewAddress(
		kernel.NewUUID(), kernel.NewUUID(),
		"Jordan Smith", "15550100",
		"US", "98101", "Nowhere", "Seattle",
		[]string{"123 Pine St"},
	)
	require.NoError(t, err)

	request := quoteRequest(t)
	request.Destination = dest

	result, err := client.GetQuotes(context.Background(), request)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "state code is required for US addresses")
	assert.Empty(t, server.capturedRequests())
}

func TestGetQuotes_InvalidRequest(t *testing.T) {
	server := &carrierServer{t: t}
	client, _ := newTestClient(t, server)

	request := quoteRequest(t)
	request.Destination = nil
	_, err := client.GetQuotes(context.Background(), request)
	require.Error(t, err)

	request = quoteRequest(t)
	request.WeightKg = 0
	_, err = client.GetQuotes(context.Background(), request)
	require.Error(t, err)
}

func TestGetQuotes_DeliveryEstimateFromCommit(t *testing.T) {
	replies := map[string]tierReply{
		"FEDEX_INTERNATIONAL_PRIORITY": {
			charge: "14100", currency: "JPY",
			commitDay: "2026-09-04", commitTime: "13:30:00",
		},
	}
	server := &carrierServer{t: t, replies: replies}
	client, _ := newTestClient(t, server)

	result, err := client.GetQuotes(context.Background(), quoteRequest(t))
	require.NoError(t, err)
	require.True(t, result.Success)

	quote := quoteFor(t, result, "FEDEX_INTERNATIONAL_PRIORITY")
	assert.Equal(t, time.Date(2026, 9, 4, 13, 30, 0, 0, time.UTC), quote.EstimatedDelivery)
}

func TestGetQuotes_DeliveryEstimateFromTransitTime(t *testing.T) {
	replies := map[string]tierReply{
		"INTERNATIONAL_ECONOMY": {charge: "7200", currency: "JPY", transitTime: "5 days"},
	}
	server := &carrierServer{t: t, replies: replies}
	client, _ := newTestClient(t, server)

	result, err := client.GetQuotes(context.Background(), quoteRequest(t))
	require.NoError(t, err)
	require.True(t, result.Success)

	quote := quoteFor(t, result, "INTERNATIONAL_ECONOMY")
	assert.Equal(t, time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC), quote.EstimatedDelivery)
}

func TestGetQuotes_DeliveryEstimateStaticFallback(t *testing.T) {
	replies := map[string]tierReply{
		"INTERNATIONAL_ECONOMY": {charge: "7200", currency: "JPY"},
	}
	server := &carrierServer{t: t, replies: replies}
	client, _ := newTestClient(t, server)

	result, err := client.GetQuotes(context.Background(), quoteRequest(t))
	require.NoError(t, err)
	require.True(t, result.Success)

	quote := quoteFor(t, result, "INTERNATIONAL_ECONOMY")
	assert.Equal(t, time.Date(2026, 9, 7, 20, 0, 0, 0, time.UTC), quote.EstimatedDelivery)
}

func TestGetQuotes_RateRequestPayload(t *testing.T) {
	server := &carrierServer{t: t, replies: allTiersJPY(map[string]string{
		"INTERNATIONAL_ECONOMY": "7200",
	})}
	client, _ := newTestClient(t, server)

	_, err := client.GetQuotes(context.Background(), quoteRequest(t))
	require.NoError(t, err)

	requests := server.capturedRequests()
	require.NotEmpty(t, requests)

	shipment := requests[0]["requestedShipment"].(map[string]any)
	assert.Equal(t, "JPY", shipment["preferredCurrency"])
	assert.Equal(t, "YOUR_PACKAGING", shipment["packagingType"])
	assert.Equal(t, "2026-09-01", shipment["shipDateStamp"])
	assert.Equal(t, true, shipment["returnTransitAndCommit"])

	shipper := shipment["shipper"].(map[string]any)["address"].(map[string]any)
	assert.Equal(t, "105-0011", shipper["postalCode"])
	assert.Equal(t, "JP", shipper["countryCode"])

	recipient := shipment["recipient"].(map[string]any)["address"].(map[string]any)
	assert.Equal(t, "98101", recipient["postalCode"], "postal code is stripped of spaces")
	assert.Equal(t, "US", recipient["countryCode"], "country name resolves to its ISO code")
	assert.Equal(t, "WA", recipient["stateOrProvinceCode"], "state name resolves to its USPS code")

	customs := shipment["customsClearanceDetail"].(map[string]any)
	commodities := customs["commodities"].([]any)
	require.Len(t, commodities, 1)
	value := commodities[0].(map[string]any)["customsValue"].(map[string]any)
	assert.Equal(t, "USD", value["currency"])
	assert.Equal(t, float64(100), value["amount"], "15000 yen at 150 yen per dollar")

	items := shipment["requestedPackageLineItems"].([]any)
	require.Len(t, items, 1)
	weight := items[0].(map[string]any)["weight"].(map[string]any)
	assert.Equal(t, "LB", weight["units"])
	assert.InDelta(t, 1.2*2.20462, weight["value"].(float64), 0.001)
	dims := items[0].(map[string]any)["dimensions"].(map[string]any)
	assert.Equal(t, "IN", dims["units"])
	assert.Equal(t, float64(12), dims["length"], "30 cm medium box in whole inches")
}

func quoteFor(t *testing.T, result ports.QuoteResult, serviceType string) ports.Quote {
	t.Helper()
	for _, quote := range result.Quotes {
		if quote.ServiceType == serviceType {
			return quote
		}
	}
	t.Fatalf("no quote for %s", serviceType)
	return ports.Quote{}
}

func remoteDestination(t *testing.T) *address.Address {
	dest, err := address.NewAddress(
		kernel.NewUUID(), kernel.NewUUID(),
		"Alex Mercer", "15550111",
		"Australia", "2000", "", "Sydney",
		[]string{"1 Harbour St"},
	)
	require.NoError(t, err)
	return dest
}
