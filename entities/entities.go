package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockData is a quote as returned by the upstream provider.
type StockData struct {
	Symbol   string  `json:"symbol"`
	CMP      float64 `json:"cmp"`
	PERatio  float64 `json:"peRatio"`
	Earnings float64 `json:"earnings"`
}

type StocksResponse struct {
	Success bool        `json:"success"`
	Data    []StockData `json:"data"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Holding is what the user owns of a ticker: it never changes at runtime.
type Holding struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Exchange      string          `json:"exchange"`
	Sector        string          `json:"sector"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	Quantity      int64           `json:"quantity"`
}

// Position is a holding merged with its latest quote.
type Position struct {
	Holding
	Quote  StockData `json:"quote"`
	Quoted bool      `json:"quoted"`

	Investment       decimal.Decimal `json:"investment"`
	PresentValue     decimal.Decimal `json:"presentValue"`
	GainLoss         decimal.Decimal `json:"gainLoss"`
	PortfolioPercent decimal.Decimal `json:"portfolioPercent"`
}

func (p Position) IsGain() bool {
	return !p.GainLoss.IsNegative()
}

type Summary struct {
	Invested      decimal.Decimal `json:"invested"`
	Current       decimal.Decimal `json:"current"`
	GainLoss      decimal.Decimal `json:"gainLoss"`
	ProfitPercent decimal.Decimal `json:"profitPercent"`
}

func (s Summary) IsGain() bool {
	return !s.GainLoss.IsNegative()
}

type SectorValue struct {
	Sector   string          `json:"sector"`
	Invested decimal.Decimal `json:"invested"`
	Current  decimal.Decimal `json:"current"`
}

func (s SectorValue) GainLoss() decimal.Decimal {
	return s.Current.Sub(s.Invested)
}

type Slice struct {
	Name    string          `json:"name"`
	Value   decimal.Decimal `json:"value"`
	Percent decimal.Decimal `json:"percent"`
}

// Snapshot is everything the dashboard shows for one successful fetch.
type Snapshot struct {
	ID         uuid.UUID     `json:"id"`
	FetchedAt  time.Time     `json:"fetchedAt"`
	Currency   string        `json:"currency"`
	Quotes     []StockData   `json:"quotes"`
	Positions  []Position    `json:"positions"`
	Summary    Summary       `json:"summary"`
	Sectors    []SectorValue `json:"sectors"`
	Allocation []Slice       `json:"allocation"`
}
