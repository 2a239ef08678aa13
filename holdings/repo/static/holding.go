package static

import (
	"github.com/shopspring/decimal"

	"github.com/glbter/portfolio-dashboard/entities"
)

// HoldingRepo serves the built-in defence portfolio.
type HoldingRepo struct{}

func (HoldingRepo) GetHoldings() ([]entities.Holding, error) {
	holdings := make([]entities.Holding, 0, len(defaults))
	for _, d := range defaults {
		holdings = append(holdings, entities.Holding{
			Symbol:        d.symbol,
			Name:          d.name,
			Exchange:      "NSE",
			Sector:        d.sector,
			PurchasePrice: decimal.NewFromInt(d.price),
			Quantity:      d.quantity,
		})
	}
	return holdings, nil
}

var defaults = []struct {
	symbol   string
	name     string
	sector   string
	price    int64
	quantity int64
}{
	{"BEL.NS", "Bharat Electronics Ltd.", "Defence Electronics", 120, 50},
	{"HAL.NS", "Hindustan Aeronautics Ltd.", "Aerospace", 3000, 20},
	{"BDL.NS", "Bharat Dynamics Ltd.", "Missiles", 950, 30},
	{"MAZDOCK.NS", "Mazagon Dock Shipbuilders Ltd.", "Shipbuilding", 1900, 10},
	{"COCHINSHIP.NS", "Cochin Shipyard Ltd.", "Shipbuilding", 1350, 15},
	{"MIDHANI.NS", "Mishra Dhatu Nigam Ltd.", "Metals", 400, 40},
	{"SOLARINDS.NS", "Solar Industries India Ltd.", "Explosives", 4100, 5},
	{"ASTRAMICRO.NS", "Astra Microwave Products Ltd.", "Defence Electronics", 300, 25},
	{"MTARTECH.NS", "MTAR Technologies Ltd.", "Precision Engineering", 1600, 12},
	{"PARAS.NS", "Paras Defence and Space Technologies Ltd.", "Defence Electronics", 950, 18},
}
