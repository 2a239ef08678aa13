package portfolio

import (
	"time"

	"github.com/google/uuid"

	"github.com/glbter/portfolio-dashboard/entities"
)

// NewSnapshot derives everything shown on the dashboard from one set of quotes.
func NewSnapshot(holdings []entities.Holding, quotes []entities.StockData, currency string, at time.Time) entities.Snapshot {
	positions := Merge(holdings, quotes)
	return entities.Snapshot{
		ID:         uuid.New(),
		FetchedAt:  at,
		Currency:   currency,
		Quotes:     quotes,
		Positions:  positions,
		Summary:    Summarize(positions),
		Sectors:    Sectors(positions),
		Allocation: Allocation(positions),
	}
}
