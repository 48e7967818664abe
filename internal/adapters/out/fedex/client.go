// Package fedex implements carrier rate shopping against the FedEx Rate
// API v1. The client quotes every international service tier concurrently,
// skips the tiers the carrier rejects and reports a soft failure only when
// none of them produced a rate.
package fedex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

const (
	defaultBaseURL     = "https://apis.fedex.com"
	defaultTierTimeout = 15 * time.Second

	shipperPostalCode = "105-0011"
	shipperCity       = "Tokyo"
	shipperCountry    = "JP"

	// FedEx caps commodity descriptions at 35 characters.
	maxCommodityDescription = 35

	authFailedMessage  = "Failed to authenticate with FedEx API"
	addressHintMessage = "Unable to calculate shipping rates. Please verify that your postal/ZIP code is correct and matches your city and state. If the issue persists, contact support."
	noServicesMessage  = "No FedEx services available for this route. Please verify your shipping address or contact support."
	usStateMessage     = "A valid two-letter state code is required for US addresses."

	defaultCommodityDescription = "General Merchandise"
)

// serviceTiers lists the international service types quoted on every call.
var serviceTiers = []string{
	"FEDEX_INTERNATIONAL_CONNECT_PLUS",
	"INTERNATIONAL_ECONOMY",
	"FEDEX_INTERNATIONAL_PRIORITY",
	"FEDEX_INTERNATIONAL_PRIORITY_EXPRESS",
	"INTERNATIONAL_FIRST",
}

// staticEstimate is the fallback delivery estimate used when the carrier
// returns neither a commit date nor a transit time for a tier.
type staticEstimate struct {
	days   int
	cutoff string
}

var staticEstimates = map[string]staticEstimate{
	"INTERNATIONAL_FIRST":                  {days: 1, cutoff: "09:30:00"},
	"FEDEX_INTERNATIONAL_PRIORITY_EXPRESS": {days: 1, cutoff: "13:30:00"},
	"FEDEX_INTERNATIONAL_PRIORITY":         {days: 1, cutoff: "20:00:00"},
	"FEDEX_INTERNATIONAL_CONNECT_PLUS":     {days: 2, cutoff: "22:00:00"},
	"INTERNATIONAL_ECONOMY":                {days: 6, cutoff: "20:00:00"},
}

// Config carries the carrier API credentials.
type Config struct {
	// APIKey is the OAuth client id
	APIKey string

	// SecretKey is the OAuth client secret
	SecretKey string

	// AccountNumber is the shipping account billed for the shipments
	AccountNumber string

	// BaseURL overrides the production API host, used by tests
	BaseURL string

	// TierTimeout bounds each per-tier rate request
	TierTimeout time.Duration
}

// Client quotes shipments through the FedEx Rate API. It implements
// ports.RateQuoter.
type Client struct {
	config     Config
	httpClient *http.Client
	rates      ports.ExchangeRates
	logger     *slog.Logger
}

// NewClient creates a configured carrier client.
func NewClient(config Config, rates ports.ExchangeRates, logger *slog.Logger) (*Client, error) {
	if config.APIKey == "" {
		return nil, errs.NewValueIsRequiredError("config.APIKey")
	}
	if config.SecretKey == "" {
		return nil, errs.NewValueIsRequiredError("config.SecretKey")
	}
	if config.AccountNumber == "" {
		return nil, errs.NewValueIsRequiredError("config.AccountNumber")
	}
	if rates == nil {
		return nil, errs.NewValueIsRequiredError("rates")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.TierTimeout <= 0 {
		config.TierTimeout = defaultTierTimeout
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{},
		rates:      rates,
		logger:     logger,
	}, nil
}

// GetQuotes obtains one quote per available service tier, sorted ascending
// by the yen rate. Carrier and network failures come back as a soft result;
// the error return covers invalid requests only.
func (c *Client) GetQuotes(ctx context.Context, request ports.QuoteRequest) (ports.QuoteResult, error) {
	if request.Destination == nil {
		return ports.QuoteResult{}, errs.NewValueIsRequiredError("request.Destination")
	}
	if request.WeightKg <= 0 {
		return ports.QuoteResult{}, errs.NewValueIsInvalidError("request.WeightKg")
	}

	countryCode := isoCountryCode(request.Destination.CountryCode())
	stateCode, ok := recipientStateCode(countryCode, request.Destination.StateOrProvince())
	if !ok {
		return ports.QuoteResult{Success: false, Message: usStateMessage}, nil
	}

	token, err := c.fetchToken(ctx)
	if err != nil {
		c.logger.Error("carrier authentication failed", "error", err)
		return ports.QuoteResult{Success: false, Message: authFailedMessage}, nil
	}

	yenPerUSD := c.yenPerUSD(ctx)
	body := c.buildRateRequest(request, countryCode, stateCode, yenPerUSD)

	type tierOutcome struct {
		quote  ports.Quote
		ok     bool
		errMsg string
	}

	outcomes := make([]tierOutcome, len(serviceTiers))
	var wg sync.WaitGroup
	for i, tier := range serviceTiers {
		wg.Add(1)
		go func(i int, tier string) {
			defer wg.Done()

			tierCtx, cancel := context.WithTimeout(ctx, c.config.TierTimeout)
			defer cancel()

			quote, errMsg, err := c.quoteTier(tierCtx, token, body, tier, request.ShipDate, yenPerUSD)
			if err != nil {
				c.logger.Warn("carrier tier unavailable", "service", tier, "error", err)
				outcomes[i] = tierOutcome{errMsg: errMsg}
				return
			}
			outcomes[i] = tierOutcome{quote: quote, ok: true}
		}(i, tier)
	}
	wg.Wait()

	var quotes []ports.Quote
	var tierErrors []string
	for _, outcome := range outcomes {
		if outcome.ok {
			quotes = append(quotes, outcome.quote)
		} else if outcome.errMsg != "" {
			tierErrors = append(tierErrors, outcome.errMsg)
		}
	}

	if len(quotes) == 0 {
		return ports.QuoteResult{Success: false, Message: failureMessage(tierErrors)}, nil
	}

	sort.Slice(quotes, func(i, j int) bool {
		return quotes[i].AmountYen < quotes[j].AmountYen
	})

	return ports.QuoteResult{Success: true, Quotes: quotes}, nil
}

// fetchToken obtains a fresh OAuth access token. Tokens are requested per
// call and never persisted.
func (c *Client) fetchToken(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.config.APIKey},
		"client_secret": {c.config.SecretKey},
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.config.BaseURL+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", err
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token response contained no access token")
	}
	return token.AccessToken, nil
}

// yenPerUSD looks up the conversion rate used for customs values and for
// normalizing USD-denominated tiers. The exchange source already falls back
// internally, so an error here is unexpected and handled with the same
// fallback rate.
func (c *Client) yenPerUSD(ctx context.Context) decimal.Decimal {
	rate, err := c.rates.YenPer(ctx, "USD")
	if err != nil || rate.IsZero() {
		c.logger.Warn("exchange rate lookup failed, using fallback", "error", err)
		return decimal.NewFromInt(150)
	}
	return rate
}

// buildRateRequest assembles the shipment payload shared by all tiers. The
// per-tier serviceType is filled in by quoteTier.
func (c *Client) buildRateRequest(
	request ports.QuoteRequest,
	countryCode string,
	stateCode string,
	yenPerUSD decimal.Decimal,
) rateRequest {
	weightLbs := kgToLbs(request.WeightKg)
	dims := estimateDimensions(request.WeightKg)
	postalCode := strings.ToUpper(strings.ReplaceAll(request.Destination.PostalCode(), " ", ""))

	customsValueUSD := decimal.NewFromInt(request.CustomsValueYen).
		Div(yenPerUSD).
		Round(0).
		IntPart()

	description := truncate(defaultCommodityDescription, maxCommodityDescription)

	account := accountNumber{Value: c.config.AccountNumber}
	billing := payment{PaymentType: "SENDER"}
	billing.Payor.ResponsibleParty.AccountNumber = account
	billing.Payor.ResponsibleParty.Address.CountryCode = shipperCountry

	duties := payment{PaymentType: "SENDER"}
	duties.Payor.ResponsibleParty.AccountNumber = account
	duties.Payor.ResponsibleParty.Address.CountryCode = shipperCountry

	weight := wireWeight{Units: "LB", Value: weightLbs}

	return rateRequest{
		AccountNumber: account,
		RequestedShipment: requestedShipment{
			Shipper: wireParty{
				Contact: wireContact{
					PersonName:  "Warehouse",
					PhoneNumber: "0312345678",
					CompanyName: "Japrix Warehouse",
				},
				Address: wireAddress{
					PostalCode:          shipperPostalCode,
					CountryCode:         shipperCountry,
					City:                shipperCity,
					StateOrProvinceCode: "",
					Residential:         false,
				},
			},
			Recipient: wireParty{
				Contact: wireContact{
					PersonName:  request.Destination.RecipientName(),
					PhoneNumber: request.Destination.Phone(),
				},
				Address: wireAddress{
					PostalCode:          postalCode,
					CountryCode:         countryCode,
					City:                request.Destination.City(),
					StateOrProvinceCode: stateCode,
					Residential:         true,
				},
			},
			PickupType:             "USE_SCHEDULED_PICKUP",
			RateRequestType:        []string{"LIST", "ACCOUNT"},
			ReturnTransitAndCommit: true,
			ShippingChargesPayment: billing,
			CustomsClearanceDetail: customsClearanceDetail{
				DutiesPayment: duties,
				Commodities: []commodity{{
					Description:   description,
					Quantity:      1,
					QuantityUnits: "PCS",
					Weight:        weight,
					CustomsValue:  wireMoney{Amount: customsValueUSD, Currency: "USD"},
				}},
			},
			RequestedPackageLineItems: []packageLineItem{{
				Weight: weight,
				Dimensions: wireDimensions{
					Length: cmToInches(dims.LengthCm),
					Width:  cmToInches(dims.WidthCm),
					Height: cmToInches(dims.HeightCm),
					Units:  "IN",
				},
			}},
			ShipDateStamp:     request.ShipDate.Format("2006-01-02"),
			PackagingType:     "YOUR_PACKAGING",
			PreferredCurrency: "JPY",
		},
	}
}

// quoteTier requests a rate for one service tier. The errMsg return carries
// the carrier's own error message when it sent one, for failure analysis.
func (c *Client) quoteTier(
	ctx context.Context,
	token string,
	base rateRequest,
	serviceType string,
	shipDate time.Time,
	yenPerUSD decimal.Decimal,
) (ports.Quote, string, error) {
	body := base
	body.RequestedShipment.ServiceType = serviceType

	payload, err := json.Marshal(body)
	if err != nil {
		return ports.Quote{}, "", err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.config.BaseURL+"/rate/v1/rates/quotes", bytes.NewReader(payload))
	if err != nil {
		return ports.Quote{}, "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-locale", "en_US")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.Quote{}, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		errMsg := carrierErrorMessage(raw)
		return ports.Quote{}, errMsg, fmt.Errorf("rate request failed with status %d", resp.StatusCode)
	}

	var reply rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return ports.Quote{}, "", err
	}
	if len(reply.Output.RateReplyDetails) == 0 {
		return ports.Quote{}, "", fmt.Errorf("no rate reply details in response")
	}

	detail := reply.Output.RateReplyDetails[0]
	listRate := findListRate(detail.RatedShipmentDetails)
	if listRate == nil {
		return ports.Quote{}, "", fmt.Errorf("no LIST rate in response")
	}

	amount, err := decimal.NewFromString(listRate.TotalNetCharge.String())
	if err != nil {
		return ports.Quote{}, "", fmt.Errorf("parse totalNetCharge: %w", err)
	}

	currency := listRate.Currency
	if currency == "" {
		currency = "USD"
	}

	var amountYen int64
	if currency == "JPY" {
		amountYen = amount.Round(0).IntPart()
	} else {
		amountYen = amount.Mul(yenPerUSD).Round(0).IntPart()
	}

	quote := ports.Quote{
		ServiceType:       serviceType,
		ServiceName:       strings.ReplaceAll(serviceType, "_", " "),
		BillingAmount:     amount,
		BillingCurrency:   currency,
		AmountYen:         amountYen,
		EstimatedDelivery: estimateDelivery(detail, serviceType, shipDate),
	}
	if detail.ServiceType != "" {
		quote.ServiceType = detail.ServiceType
	}
	if detail.ServiceName != "" {
		quote.ServiceName = detail.ServiceName
	}

	return quote, "", nil
}

func findListRate(details []ratedShipmentDetail) *ratedShipmentDetail {
	for i := range details {
		if details[i].RateType == "LIST" {
			return &details[i]
		}
	}
	return nil
}

// estimateDelivery derives the expected delivery time for a tier. The
// carrier's commit date wins; an operational transit time comes next; the
// static per-tier estimate covers routes the carrier returns neither for.
func estimateDelivery(detail rateReplyDetail, serviceType string, shipDate time.Time) time.Time {
	if detail.Commit != nil && detail.Commit.DateDetail.DayFormat != "" {
		if day, err := time.Parse("2006-01-02", detail.Commit.DateDetail.DayFormat); err == nil {
			if cutoff, err := time.Parse("15:04:05", detail.Commit.TimeDetail.TimeFormat); err == nil {
				return day.Add(time.Duration(cutoff.Hour())*time.Hour + time.Duration(cutoff.Minute())*time.Minute)
			}
			return day
		}
	}

	if detail.OperationalDetail != nil && detail.OperationalDetail.TransitTime != "" {
		if days := transitDays(detail.OperationalDetail.TransitTime); days > 0 {
			return shipDate.AddDate(0, 0, days)
		}
	}

	estimate, ok := staticEstimates[serviceType]
	if !ok {
		return shipDate
	}
	delivery := shipDate.AddDate(0, 0, estimate.days)
	if cutoff, err := time.Parse("15:04:05", estimate.cutoff); err == nil {
		day := time.Date(delivery.Year(), delivery.Month(), delivery.Day(), 0, 0, 0, 0, delivery.Location())
		return day.Add(time.Duration(cutoff.Hour())*time.Hour + time.Duration(cutoff.Minute())*time.Minute)
	}
	return delivery
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// transitDays extracts the day count from transit time strings such as
// "5" or "5 days"; anything without digits yields zero.
func transitDays(transitTime string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, transitTime)
	if digits == "" {
		return 0
	}

	days := 0
	for _, r := range digits {
		days = days*10 + int(r-'0')
	}
	return days
}

// carrierErrorMessage pulls the first error message out of a failed rate
// response body.
func carrierErrorMessage(raw []byte) string {
	var parsed errorResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return ""
	}
	if len(parsed.Errors) == 0 {
		return ""
	}
	return parsed.Errors[0].Message
}

// failureMessage classifies the collected tier errors: address-related
// failures get a remediation hint, everything else the generic message.
func failureMessage(tierErrors []string) string {
	keywords := []string{"postal", "zip", "address", "invalid destination", "recipient"}
	for _, errMsg := range tierErrors {
		lower := strings.ToLower(errMsg)
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				return addressHintMessage
			}
		}
	}
	return noServicesMessage
}
