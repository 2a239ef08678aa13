package yaml

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/glbter/portfolio-dashboard/entities"
	"github.com/glbter/portfolio-dashboard/holdings"
)

// HoldingRepo reads holdings from a YAML document:
//
//	holdings:
//	  - symbol: BEL.NS
//	    exchange: NSE
//	    purchase_price: 120
//	    quantity: 50
type HoldingRepo struct {
	Path string
}

type document struct {
	Holdings []record `yaml:"holdings"`
}

type record struct {
	Symbol        string `yaml:"symbol"`
	Name          string `yaml:"name"`
	Exchange      string `yaml:"exchange"`
	Sector        string `yaml:"sector"`
	PurchasePrice string `yaml:"purchase_price"`
	Quantity      int64  `yaml:"quantity"`
}

func (r HoldingRepo) GetHoldings() ([]entities.Holding, error) {
	content, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.Path, err)
	}

	hs := make([]entities.Holding, 0, len(doc.Holdings))
	for _, rec := range doc.Holdings {
		price, err := decimal.NewFromString(rec.PurchasePrice)
		if err != nil {
			return nil, fmt.Errorf("holding %q: parse purchase_price: %w", rec.Symbol, err)
		}
		hs = append(hs, entities.Holding{
			Symbol:        rec.Symbol,
			Name:          rec.Name,
			Exchange:      rec.Exchange,
			Sector:        rec.Sector,
			PurchasePrice: price,
			Quantity:      rec.Quantity,
		})
	}

	if err := holdings.Validate(hs); err != nil {
		return nil, err
	}
	return hs, nil
}
