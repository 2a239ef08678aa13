package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/glbter/portfolio-dashboard/charts"
	"github.com/glbter/portfolio-dashboard/entities"
	"github.com/glbter/portfolio-dashboard/portfolio/format"
)

const (
	pieSize   = 240
	barWidth  = 640
	barHeight = 260
)

//go:embed templates/dashboard.html
var templates embed.FS

var dashboardTmpl = template.Must(
	template.New("dashboard.html").Funcs(template.FuncMap{
		"fixed": format.Fixed,
	}).ParseFS(templates, "templates/dashboard.html"),
)

type card struct {
	Title string
	Value string
	Gain  bool
	Loss  bool
}

type row struct {
	Name          string
	Symbol        string
	Exchange      string
	PurchasePrice string
	Quantity      int64
	Investment    string
	Percent       string
	CMP           string
	PresentValue  string
	GainLoss      string
	PERatio       string
	Earnings      string
	Gain          bool
	Quoted        bool
}

type dashboardPage struct {
	Loaded     bool
	Error      string
	Stale      bool
	LastError  string
	SnapshotID string
	FetchedAt  string
	IntervalMS int64
	Cards      []card
	Rows       []row
	Pie        charts.Pie
	PieSize    int
	Bars       charts.BarChart
}

// Dashboard renders the whole page from the latest snapshot. Before the first
// successful fetch it renders the loading state and the script keeps polling.
func (h PortfolioHandler) Dashboard(w http.ResponseWriter, _ *http.Request) {
	logger := h.Logger.With(zap.String("method", "Dashboard"))

	page := dashboardPage{
		IntervalMS: h.Refresher.Interval().Milliseconds(),
		PieSize:    pieSize,
	}

	snap, status, err := h.Refresher.Snapshot()
	if status.LastError != nil {
		page.LastError = status.LastError.Error()
		page.Stale = status.Stale()
	}

	if err == nil {
		fillDashboard(&page, snap)
	} else {
		page.Error = page.LastError
	}

	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, page); err != nil {
		logger.Error(fmt.Errorf("render dashboard: %w", err).Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func fillDashboard(page *dashboardPage, snap entities.Snapshot) {
	cur := snap.Currency
	sum := snap.Summary

	page.Loaded = true
	page.SnapshotID = snap.ID.String()
	page.FetchedAt = snap.FetchedAt.Format(time.RFC3339)
	page.Cards = []card{
		{Title: "Total Invested Value", Value: format.Money(sum.Invested, cur)},
		{Title: "Current Value", Value: format.Money(sum.Current, cur)},
		{
			Title: "Total Gains/Loss Value",
			Value: format.SignedMoney(sum.GainLoss, cur),
			Gain:  sum.IsGain(),
			Loss:  !sum.IsGain(),
		},
		{
			Title: "Total Profit Percentage",
			Value: format.Percent(sum.ProfitPercent),
			Gain:  sum.IsGain(),
			Loss:  !sum.IsGain(),
		},
	}

	for _, p := range snap.Positions {
		name := p.Name
		if name == "" {
			name = p.Symbol
		}
		page.Rows = append(page.Rows, row{
			Name:          name,
			Symbol:        p.Symbol,
			Exchange:      p.Exchange,
			PurchasePrice: format.Money(p.PurchasePrice, cur),
			Quantity:      p.Quantity,
			Investment:    format.Money(p.Investment, cur),
			Percent:       format.Percent(p.PortfolioPercent),
			CMP:           format.Fixed(p.Quote.CMP),
			PresentValue:  format.Money(p.PresentValue, cur),
			GainLoss:      format.SignedMoney(p.GainLoss, cur),
			PERatio:       format.Fixed(p.Quote.PERatio),
			Earnings:      format.Fixed(p.Quote.Earnings),
			Gain:          p.IsGain(),
			Quoted:        p.Quoted,
		})
	}

	half := float64(pieSize) / 2
	page.Pie = charts.NewPie(snap.Allocation, half, half, half-10)
	page.Bars = charts.NewBarChart(snap.Sectors, barWidth, barHeight)
}
