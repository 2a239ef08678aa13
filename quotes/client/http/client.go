package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"go.uber.org/zap"

	"github.com/glbter/portfolio-dashboard/entities"
	"github.com/glbter/portfolio-dashboard/quotes"
)

const (
	resultPath   = "$.quoteResponse.result"
	errorPath    = "$.quoteResponse.error"
	symbolPath   = "$.symbol"
	pricePath    = "$.regularMarketPrice"
	pePath       = "$.trailingPE"
	earningsPath = "$.epsTrailingTwelveMonths"
)

// QuoteClient reads quotes from a Yahoo Finance compatible quote endpoint.
type QuoteClient struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

func NewClient(c *http.Client, url string, logger *zap.Logger) QuoteClient {
	return QuoteClient{
		url:    url,
		client: c,
		logger: logger.With(zap.String("caller", "QuoteClient")),
	}
}

var _ quotes.Source = QuoteClient{}

func (qc QuoteClient) Quotes(ctx context.Context, symbols []string) ([]entities.StockData, error) {
	if len(symbols) == 0 {
		return nil, quotes.ErrNoSymbols
	}

	logger := qc.logger.With(zap.String("method", "Quotes"))

	addr, err := url.JoinPath(qc.url, "/v7/finance/quote")
	if err != nil {
		return nil, fmt.Errorf("build request url: %w", err)
	}
	addr += "?symbols=" + url.QueryEscape(strings.Join(symbols, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := qc.client.Do(req)
	logger.Debug("finish quote lookup", zap.Duration("duration", time.Since(start)), zap.Int("symbols", len(symbols)))
	if err != nil {
		return nil, fmt.Errorf("send GET request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("responded with %v http code", resp.StatusCode)
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return parseQuotes(payload)
}

func parseQuotes(payload any) ([]entities.StockData, error) {
	if upstream, err := jsonpath.Get(errorPath, payload); err == nil && upstream != nil {
		return nil, fmt.Errorf("upstream error: %s", describe(upstream))
	}

	result, err := jsonpath.Get(resultPath, payload)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", resultPath, err)
	}

	var items []any
	switch r := result.(type) {
	case []any:
		items = r
	case map[string]any:
		items = []any{r}
	case nil:
	default:
		return nil, fmt.Errorf("read %s: unexpected %T", resultPath, result)
	}

	data := make([]entities.StockData, 0, len(items))
	for _, item := range items {
		symbol, ok := lookup(symbolPath, item).(string)
		if !ok || symbol == "" {
			continue
		}
		data = append(data, entities.StockData{
			Symbol:   symbol,
			CMP:      number(lookup(pricePath, item)),
			PERatio:  number(lookup(pePath, item)),
			Earnings: number(lookup(earningsPath, item)),
		})
	}
	return data, nil
}

// lookup returns nil when the path does not resolve.
func lookup(path string, item any) any {
	v, err := jsonpath.Get(path, item)
	if err != nil {
		return nil
	}
	return v
}

// number reads a JSON number, anything else counts as zero.
func number(v any) float64 {
	f, ok := v.(float64)
	if !ok {
		return 0
	}
	return f
}

func describe(upstream any) string {
	if m, ok := upstream.(map[string]any); ok {
		if d, ok := m["description"].(string); ok && d != "" {
			return d
		}
	}
	return fmt.Sprint(upstream)
}
