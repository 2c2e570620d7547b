// Package finance holds the exchange-rate commands.
package finance

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const (
	googleFinanceURL = "https://www.google.com/finance"
	coinGeckoURL     = "https://api.coingecko.com/api/v3"

	// rateSelector matches the price element on a Google Finance quote page.
	rateSelector = ".YMlKec.fxKbKc"
)

// Quotes fetches exchange rates from the web.
type Quotes struct {
	finance *resty.Client
	crypto  *resty.Client
}

// NewQuotes returns a Quotes reading from the given base URLs.
func NewQuotes(financeURL, cryptoURL string) *Quotes {
	newClient := func(base string) *resty.Client {
		return resty.New().
			SetBaseURL(base).
			SetTimeout(10*time.Second).
			SetHeaders(map[string]string{
				"Accept-Language": "en-US,en;q=0.9",
				"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			})
	}
	return &Quotes{finance: newClient(financeURL), crypto: newClient(cryptoURL)}
}

var defaultQuotes = NewQuotes(googleFinanceURL, coinGeckoURL)

// USDEGP scrapes the USD to EGP rate.
func (q *Quotes) USDEGP(ctx context.Context) (float64, error) {
	resp, err := q.finance.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get("/quote/USD-EGP")
	if err != nil {
		return 0, fmt.Errorf("failed to fetch quote page: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		return 0, fmt.Errorf("failed to fetch quote page: status code %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return 0, fmt.Errorf("failed to parse HTML: %w", err)
	}

	rateText := strings.TrimSpace(doc.Find(rateSelector).First().Text())
	if rateText == "" {
		return 0, fmt.Errorf("failed to find exchange rate element")
	}

	rate, err := strconv.ParseFloat(strings.ReplaceAll(rateText, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse exchange rate %q: %w", rateText, err)
	}
	return rate, nil
}

type btcResponse struct {
	Bitcoin struct {
		USD float64 `json:"usd"`
	} `json:"bitcoin"`
}

// BTCUSD returns the bitcoin price in US dollars.
func (q *Quotes) BTCUSD(ctx context.Context) (float64, error) {
	var result btcResponse
	resp, err := q.crypto.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ids":           "bitcoin",
			"vs_currencies": "usd",
		}).
		SetResult(&result).
		Get("/simple/price")
	if err != nil {
		return 0, fmt.Errorf("failed to fetch BTC price: %w", err)
	}
	if resp.IsError() {
		return 0, fmt.Errorf("failed to fetch BTC price: status code %d", resp.StatusCode())
	}
	if result.Bitcoin.USD <= 0 {
		return 0, fmt.Errorf("BTC price missing from response")
	}
	return result.Bitcoin.USD, nil
}
