// Package holdings describes what the portfolio owns. Holdings are fixed at
// startup; the repositories under repo/ only differ in where they read them from.
package holdings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/glbter/portfolio-dashboard/entities"
)

var ErrEmpty = errors.New("no holdings")

type Repo interface {
	GetHoldings() ([]entities.Holding, error)
}

// Validate rejects holdings a portfolio cannot be computed from.
func Validate(hs []entities.Holding) error {
	if len(hs) == 0 {
		return ErrEmpty
	}

	seen := make(map[string]struct{}, len(hs))
	for i, h := range hs {
		if strings.TrimSpace(h.Symbol) == "" {
			return fmt.Errorf("holding %d: empty symbol", i+1)
		}
		if _, ok := seen[h.Symbol]; ok {
			return fmt.Errorf("holding %d: duplicate symbol %q", i+1, h.Symbol)
		}
		seen[h.Symbol] = struct{}{}

		if h.Quantity < 0 {
			return fmt.Errorf("holding %q: negative quantity %d", h.Symbol, h.Quantity)
		}
		if h.PurchasePrice.IsNegative() {
			return fmt.Errorf("holding %q: negative purchase price %s", h.Symbol, h.PurchasePrice)
		}
	}
	return nil
}
