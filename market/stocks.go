package market

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"econoshorts/types"
)

const chartEndpoint = "https://query1.finance.yahoo.com/v8/finance/chart/%s"

var httpClient = &http.Client{Timeout: 15 * time.Second}

// DefaultSymbols are the indicators every script gets as context.
var DefaultSymbols = []struct {
	Symbol string
	Name   string
}{
	{"^KS11", "KOSPI"},
	{"^KQ11", "KOSDAQ"},
	{"KRW=X", "원/달러 환율"},
	{"BTC-USD", "비트코인"},
}

// FetchQuote reads one symbol from the Yahoo Finance chart endpoint.
func FetchQuote(ctx context.Context, symbol, name string) (*types.Quote, error) {
	url := fmt.Sprintf(chartEndpoint, symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quote %s: %w", symbol, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote %s: status %d", symbol, resp.StatusCode)
	}

	var parsed struct {
		Chart struct {
			Result []struct {
				Meta struct {
					RegularMarketPrice float64 `json:"regularMarketPrice"`
					PreviousClose      float64 `json:"chartPreviousClose"`
					Currency           string  `json:"currency"`
				} `json:"meta"`
			} `json:"result"`
			Error *struct {
				Description string `json:"description"`
			} `json:"error"`
		} `json:"chart"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("quote %s: %w", symbol, err)
	}
	if parsed.Chart.Error != nil {
		return nil, fmt.Errorf("quote %s: %s", symbol, parsed.Chart.Error.Description)
	}
	if len(parsed.Chart.Result) == 0 {
		return nil, fmt.Errorf("quote %s: empty result", symbol)
	}

	meta := parsed.Chart.Result[0].Meta
	q := &types.Quote{
		Symbol:        symbol,
		Name:          name,
		Price:         meta.RegularMarketPrice,
		PreviousClose: meta.PreviousClose,
		Currency:      meta.Currency,
	}
	if meta.PreviousClose != 0 {
		q.ChangePercent = (meta.RegularMarketPrice - meta.PreviousClose) / meta.PreviousClose * 100
	}
	return q, nil
}

// FetchDefaultQuotes reads every default indicator. Failed symbols are
// logged and omitted so script generation still runs without market data.
func FetchDefaultQuotes(ctx context.Context) []types.Quote {
	var quotes []types.Quote
	for _, s := range DefaultSymbols {
		q, err := FetchQuote(ctx, s.Symbol, s.Name)
		if err != nil {
			log.Printf("[market] %v", err)
			continue
		}
		quotes = append(quotes, *q)
	}
	return quotes
}
