// Package static serves fixed quotes, for running the dashboard offline.
package static

import (
	"context"
	"sync"

	"github.com/glbter/portfolio-dashboard/entities"
	"github.com/glbter/portfolio-dashboard/quotes"
)

type Source struct {
	mu     sync.RWMutex
	quotes map[string]entities.StockData
}

var _ quotes.Source = (*Source)(nil)

func NewSource(data ...entities.StockData) *Source {
	s := &Source{quotes: make(map[string]entities.StockData, len(data))}
	for _, d := range data {
		s.quotes[d.Symbol] = d
	}
	return s
}

// Set replaces the quote of d.Symbol.
func (s *Source) Set(d entities.StockData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes[d.Symbol] = d
}

func (s *Source) Quotes(ctx context.Context, symbols []string) ([]entities.StockData, error) {
	if len(symbols) == 0 {
		return nil, quotes.ErrNoSymbols
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data := make([]entities.StockData, 0, len(symbols))
	for _, symbol := range symbols {
		if d, ok := s.quotes[symbol]; ok {
			data = append(data, d)
		}
	}
	return data, nil
}
