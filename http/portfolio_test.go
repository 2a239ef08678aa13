package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/glbter/portfolio-dashboard/entities"
	"github.com/glbter/portfolio-dashboard/portfolio"
	"github.com/glbter/portfolio-dashboard/refresher"
)

type fakeRefresher struct {
	snap       *entities.Snapshot
	status     refresher.Status
	refreshErr error
	refreshes  atomic.Int32
}

func (f *fakeRefresher) Refresh(context.Context) (entities.Snapshot, error) {
	f.refreshes.Add(1)
	if f.refreshErr != nil {
		return entities.Snapshot{}, f.refreshErr
	}
	return *f.snap, nil
}

func (f *fakeRefresher) Snapshot() (entities.Snapshot, refresher.Status, error) {
	if f.snap == nil {
		return entities.Snapshot{}, f.status, refresher.ErrNoSnapshot
	}
	return *f.snap, f.status, nil
}

func (f *fakeRefresher) Interval() time.Duration { return 15 * time.Second }

func testSnapshot() *entities.Snapshot {
	holdings := []entities.Holding{
		{Symbol: "BEL.NS", Name: "Bharat Electronics Ltd.", Exchange: "NSE", Sector: "Defence Electronics", PurchasePrice: decimal.NewFromInt(120), Quantity: 50},
		{Symbol: "HAL.NS", Name: "Hindustan Aeronautics Ltd.", Exchange: "NSE", Sector: "Aerospace", PurchasePrice: decimal.NewFromInt(3000), Quantity: 20},
		{Symbol: "BDL.NS", Exchange: "NSE", Sector: "Missiles", PurchasePrice: decimal.NewFromInt(950), Quantity: 0},
	}
	quotes := []entities.StockData{
		{Symbol: "BEL.NS", CMP: 130, PERatio: 45.5, Earnings: 2.86},
		{Symbol: "HAL.NS", CMP: 2900, PERatio: 38.1, Earnings: 76.12},
	}
	snap := portfolio.NewSnapshot(holdings, quotes, "INR", time.Date(2025, 5, 17, 21, 4, 39, 0, time.UTC))
	return &snap
}

func newServer(f *fakeRefresher) *httptest.Server {
	r := chi.NewRouter()
	PortfolioHandler{Logger: zap.NewNop(), Refresher: f}.Register(r)
	return httptest.NewServer(r)
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestGetStocks(t *testing.T) {
	f := &fakeRefresher{snap: testSnapshot()}
	srv := newServer(f)
	defer srv.Close()

	for _, path := range []string{"/api/stocks", "/api/route"} {
		t.Run(path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + path)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

			body := decode[entities.StocksResponse](t, resp)
			assert.True(t, body.Success)
			assert.Equal(t, f.snap.Quotes, body.Data)
		})
	}
	assert.EqualValues(t, 2, f.refreshes.Load())
}

func TestGetStocks_NoQuotes(t *testing.T) {
	tests := []struct {
		name   string
		quotes []entities.StockData
	}{
		{name: "empty", quotes: []entities.StockData{}},
		{name: "nil", quotes: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := testSnapshot()
			snap.Quotes = tt.quotes
			srv := newServer(&fakeRefresher{snap: snap})
			defer srv.Close()

			resp, err := http.Get(srv.URL + "/api/stocks")
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			raw := decode[map[string]any](t, resp)
			assert.Equal(t, true, raw["success"])
			require.Contains(t, raw, "data")
			assert.Equal(t, []any{}, raw["data"])
			assert.NotContains(t, raw, "error")
		})
	}
}

func TestGetStocks_Error(t *testing.T) {
	srv := newServer(&fakeRefresher{refreshErr: errors.New("responded with 502 http code")})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/route")
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	raw := decode[map[string]any](t, resp)
	assert.Equal(t, false, raw["success"])
	assert.Equal(t, "responded with 502 http code", raw["error"])
	assert.NotContains(t, raw, "data")
}

func TestGetPortfolio(t *testing.T) {
	f := &fakeRefresher{snap: testSnapshot(), status: refresher.Status{LastSuccess: time.Now()}}
	srv := newServer(f)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/portfolio")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[PortfolioResponse](t, resp)
	require.True(t, body.Success)
	require.NotNil(t, body.Data)
	assert.False(t, body.Stale)
	assert.Equal(t, f.snap.ID.String(), body.Data.ID)
	assert.Equal(t, "INR", body.Data.Currency)

	assert.Equal(t, SummaryView{Invested: 66000, Current: 64500, GainLoss: -1500, ProfitPercent: -2.27}, body.Data.Summary)

	require.Len(t, body.Data.Positions, 3)
	bel := body.Data.Positions[0]
	assert.Equal(t, "BEL.NS", bel.Symbol)
	assert.Equal(t, 130.0, bel.CMP)
	assert.Equal(t, 6000.0, bel.Investment)
	assert.Equal(t, 6500.0, bel.PresentValue)
	assert.Equal(t, 500.0, bel.GainLoss)
	assert.Equal(t, 9.09, bel.PortfolioPercent)
	assert.True(t, bel.Quoted)

	bdl := body.Data.Positions[2]
	assert.Equal(t, "BDL.NS", bdl.Symbol)
	assert.False(t, bdl.Quoted)
	assert.Equal(t, 0.0, bdl.CMP)

	assert.Len(t, body.Data.Sectors, 3)
	assert.Len(t, body.Data.Allocation, 3)

	// no quotes are fetched to serve the portfolio
	assert.Zero(t, f.refreshes.Load())
}

func TestGetPortfolio_Stale(t *testing.T) {
	srv := newServer(&fakeRefresher{
		snap:   testSnapshot(),
		status: refresher.Status{LastSuccess: time.Now().Add(-time.Minute), LastError: errors.New("context deadline exceeded")},
	})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/portfolio")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[PortfolioResponse](t, resp)
	assert.True(t, body.Success)
	assert.True(t, body.Stale)
	assert.Equal(t, "context deadline exceeded", body.LastError)
}

func TestGetPortfolio_NotReady(t *testing.T) {
	tests := []struct {
		name   string
		status refresher.Status
		want   string
	}{
		{name: "first fetch running", want: "no snapshot fetched yet"},
		{
			name:   "first fetch failed",
			status: refresher.Status{LastError: errors.New("responded with 429 http code")},
			want:   "no snapshot fetched yet: responded with 429 http code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(&fakeRefresher{status: tt.status})
			defer srv.Close()

			resp, err := http.Get(srv.URL + "/api/portfolio")
			require.NoError(t, err)
			assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

			body := decode[PortfolioResponse](t, resp)
			assert.False(t, body.Success)
			assert.Nil(t, body.Data)
			assert.Equal(t, tt.want, body.Error)
		})
	}
}

func TestRefresh(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		want       RefreshResponse
	}{
		{name: "ok", wantStatus: http.StatusOK, want: RefreshResponse{Success: true, Message: "Data is up to date!"}},
		{name: "upstream down", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, want: RefreshResponse{Error: "Failed to fetch data."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeRefresher{snap: testSnapshot(), refreshErr: tt.err}
			srv := newServer(f)
			defer srv.Close()

			resp, err := http.Post(srv.URL+"/api/refresh", "application/json", nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.want, decode[RefreshResponse](t, resp))
			assert.EqualValues(t, 1, f.refreshes.Load())
		})
	}
}

func TestRefresh_MethodNotAllowed(t *testing.T) {
	srv := newServer(&fakeRefresher{snap: testSnapshot()})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/refresh")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	srv := newServer(&fakeRefresher{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(raw))
}
