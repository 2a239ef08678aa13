package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/glbter/portfolio-dashboard/entities"
	"github.com/glbter/portfolio-dashboard/refresher"
)

const (
	refreshedMessage     = "Data is up to date!"
	refreshFailedMessage = "Failed to fetch data."
)

type Refresher interface {
	Refresh(ctx context.Context) (entities.Snapshot, error)
	Snapshot() (entities.Snapshot, refresher.Status, error)
	Interval() time.Duration
}

type PortfolioHandler struct {
	Logger    *zap.Logger
	Refresher Refresher
}

func (h PortfolioHandler) Register(r chi.Router) {
	r.Get("/", h.Dashboard)
	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/stocks", h.GetStocks)
		r.Get("/route", h.GetStocks)
		r.Get("/portfolio", h.GetPortfolio)
		r.Post("/refresh", h.Refresh)
	})
}

// GetStocks looks the quotes up again, sharing any fetch already running,
// and returns them as the provider sent them.
func (h PortfolioHandler) GetStocks(w http.ResponseWriter, r *http.Request) {
	logger := h.Logger.With(zap.String("method", "GetStocks"))

	snap, err := h.Refresher.Refresh(r.Context())
	if err != nil {
		logger.Error(fmt.Errorf("refresh quotes: %w", err).Error())
		writeJSON(logger, w, http.StatusInternalServerError, entities.ErrorResponse{Error: err.Error()})
		return
	}

	data := snap.Quotes
	if data == nil {
		data = []entities.StockData{}
	}
	writeJSON(logger, w, http.StatusOK, entities.StocksResponse{Success: true, Data: data})
}

// GetPortfolio returns the last good snapshot without contacting the provider.
func (h PortfolioHandler) GetPortfolio(w http.ResponseWriter, _ *http.Request) {
	logger := h.Logger.With(zap.String("method", "GetPortfolio"))

	snap, status, err := h.Refresher.Snapshot()
	if err != nil {
		msg := err.Error()
		if errors.Is(err, refresher.ErrNoSnapshot) && status.LastError != nil {
			msg = fmt.Sprintf("%s: %s", msg, status.LastError)
		}
		writeJSON(logger, w, http.StatusServiceUnavailable, PortfolioResponse{Error: msg})
		return
	}

	resp := PortfolioResponse{
		Success: true,
		Data:    newPortfolioView(snap),
		Stale:   status.Stale(),
	}
	if status.LastError != nil {
		resp.LastError = status.LastError.Error()
	}
	writeJSON(logger, w, http.StatusOK, resp)
}

// Refresh is the dashboard's refresh button.
func (h PortfolioHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	logger := h.Logger.With(zap.String("method", "Refresh"))

	if _, err := h.Refresher.Refresh(r.Context()); err != nil {
		logger.Error(fmt.Errorf("refresh quotes: %w", err).Error())
		writeJSON(logger, w, http.StatusInternalServerError, RefreshResponse{Error: refreshFailedMessage})
		return
	}

	writeJSON(logger, w, http.StatusOK, RefreshResponse{Success: true, Message: refreshedMessage})
}

func (h PortfolioHandler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func writeJSON(logger *zap.Logger, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error(fmt.Errorf("encode response: %w", err).Error())
	}
}

type RefreshResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type PortfolioResponse struct {
	Success   bool           `json:"success"`
	Data      *PortfolioView `json:"data,omitempty"`
	Stale     bool           `json:"stale,omitempty"`
	LastError string         `json:"lastError,omitempty"`
	Error     string         `json:"error,omitempty"`
}

type PortfolioView struct {
	ID         string         `json:"id"`
	FetchedAt  time.Time      `json:"fetchedAt"`
	Currency   string         `json:"currency"`
	Summary    SummaryView    `json:"summary"`
	Positions  []PositionView `json:"positions"`
	Sectors    []SectorView   `json:"sectors"`
	Allocation []SliceView    `json:"allocation"`
}

type SummaryView struct {
	Invested      float64 `json:"invested"`
	Current       float64 `json:"current"`
	GainLoss      float64 `json:"gainLoss"`
	ProfitPercent float64 `json:"profitPercent"`
}

type PositionView struct {
	entities.StockData
	Name             string  `json:"name,omitempty"`
	Exchange         string  `json:"exchange"`
	Sector           string  `json:"sector,omitempty"`
	PurchasePrice    float64 `json:"purchasePrice"`
	Quantity         int64   `json:"quantity"`
	Quoted           bool    `json:"quoted"`
	Investment       float64 `json:"investment"`
	PresentValue     float64 `json:"presentValue"`
	GainLoss         float64 `json:"gainLoss"`
	PortfolioPercent float64 `json:"portfolioPercent"`
}

type SectorView struct {
	Sector   string  `json:"sector"`
	Invested float64 `json:"invested"`
	Current  float64 `json:"current"`
	GainLoss float64 `json:"gainLoss"`
}

type SliceView struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

func newPortfolioView(snap entities.Snapshot) *PortfolioView {
	v := &PortfolioView{
		ID:        snap.ID.String(),
		FetchedAt: snap.FetchedAt,
		Currency:  snap.Currency,
		Summary: SummaryView{
			Invested:      cents(snap.Summary.Invested),
			Current:       cents(snap.Summary.Current),
			GainLoss:      cents(snap.Summary.GainLoss),
			ProfitPercent: cents(snap.Summary.ProfitPercent),
		},
		Positions:  make([]PositionView, 0, len(snap.Positions)),
		Sectors:    make([]SectorView, 0, len(snap.Sectors)),
		Allocation: make([]SliceView, 0, len(snap.Allocation)),
	}

	for _, p := range snap.Positions {
		v.Positions = append(v.Positions, PositionView{
			StockData:        p.Quote,
			Name:             p.Name,
			Exchange:         p.Exchange,
			Sector:           p.Sector,
			PurchasePrice:    cents(p.PurchasePrice),
			Quantity:         p.Quantity,
			Quoted:           p.Quoted,
			Investment:       cents(p.Investment),
			PresentValue:     cents(p.PresentValue),
			GainLoss:         cents(p.GainLoss),
			PortfolioPercent: cents(p.PortfolioPercent),
		})
	}
	for _, s := range snap.Sectors {
		v.Sectors = append(v.Sectors, SectorView{
			Sector:   s.Sector,
			Invested: cents(s.Invested),
			Current:  cents(s.Current),
			GainLoss: cents(s.GainLoss()),
		})
	}
	for _, s := range snap.Allocation {
		v.Allocation = append(v.Allocation, SliceView{
			Name:    s.Name,
			Value:   cents(s.Value),
			Percent: cents(s.Percent),
		})
	}
	return v
}

func cents(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
