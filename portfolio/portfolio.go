// Package portfolio merges quotes with holdings and derives the figures the
// dashboard shows. All arithmetic is done on decimals; floats only enter
// through the upstream quotes.
package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/glbter/portfolio-dashboard/entities"
)

var hundred = decimal.NewFromInt(100)

// Symbols returns the tickers of the holdings, in order.
func Symbols(holdings []entities.Holding) []string {
	symbols := make([]string, 0, len(holdings))
	for _, h := range holdings {
		symbols = append(symbols, h.Symbol)
	}
	return symbols
}

// Merge builds one position per holding, in holdings order. A holding the
// provider returned no quote for is valued at a price of zero.
func Merge(holdings []entities.Holding, quotes []entities.StockData) []entities.Position {
	bySymbol := make(map[string]entities.StockData, len(quotes))
	for _, q := range quotes {
		bySymbol[q.Symbol] = q
	}

	positions := make([]entities.Position, 0, len(holdings))
	totalInvestment := decimal.Zero
	for _, h := range holdings {
		q, ok := bySymbol[h.Symbol]
		if !ok {
			q = entities.StockData{Symbol: h.Symbol}
		}

		qty := decimal.NewFromInt(h.Quantity)
		investment := h.PurchasePrice.Mul(qty)
		presentValue := decimal.NewFromFloat(q.CMP).Mul(qty)

		positions = append(positions, entities.Position{
			Holding:      h,
			Quote:        q,
			Quoted:       ok,
			Investment:   investment,
			PresentValue: presentValue,
			GainLoss:     presentValue.Sub(investment),
		})
		totalInvestment = totalInvestment.Add(investment)
	}

	for i := range positions {
		positions[i].PortfolioPercent = percentOf(positions[i].Investment, totalInvestment)
	}
	return positions
}

// Summarize totals the positions.
func Summarize(positions []entities.Position) entities.Summary {
	var s entities.Summary
	for _, p := range positions {
		s.Invested = s.Invested.Add(p.Investment)
		s.Current = s.Current.Add(p.PresentValue)
	}
	s.GainLoss = s.Current.Sub(s.Invested)
	s.ProfitPercent = percentOf(s.GainLoss, s.Invested)
	return s
}

// Sectors aggregates invested and current value per sector, in the order
// sectors first appear. Holdings without a sector are grouped under "Other".
func Sectors(positions []entities.Position) []entities.SectorValue {
	index := make(map[string]int)
	sectors := make([]entities.SectorValue, 0)
	for _, p := range positions {
		name := p.Sector
		if name == "" {
			name = "Other"
		}
		i, ok := index[name]
		if !ok {
			i = len(sectors)
			index[name] = i
			sectors = append(sectors, entities.SectorValue{Sector: name})
		}
		sectors[i].Invested = sectors[i].Invested.Add(p.Investment)
		sectors[i].Current = sectors[i].Current.Add(p.PresentValue)
	}
	return sectors
}

// Allocation is the share of the total investment held in each position.
func Allocation(positions []entities.Position) []entities.Slice {
	slices := make([]entities.Slice, 0, len(positions))
	for _, p := range positions {
		name := p.Name
		if name == "" {
			name = p.Symbol
		}
		slices = append(slices, entities.Slice{
			Name:    name,
			Value:   p.Investment,
			Percent: p.PortfolioPercent,
		})
	}
	return slices
}

// percentOf returns part/total*100, or zero when total is zero.
func percentOf(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(total)
}
