package quotes

import (
	"context"
	"errors"

	"github.com/glbter/portfolio-dashboard/entities"
)

var ErrNoSymbols = errors.New("no symbols requested")

// Source looks up the latest quote of each symbol. Symbols the provider does
// not know are left out of the result rather than failing the whole call.
type Source interface {
	Quotes(ctx context.Context, symbols []string) ([]entities.StockData, error)
}
