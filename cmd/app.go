package cmd

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/glbter/portfolio-dashboard/entities"
	"github.com/glbter/portfolio-dashboard/holdings"
	"github.com/glbter/portfolio-dashboard/holdings/repo/csv"
	"github.com/glbter/portfolio-dashboard/holdings/repo/static"
	"github.com/glbter/portfolio-dashboard/holdings/repo/yaml"
	"github.com/glbter/portfolio-dashboard/quotes"
	quoteHttp "github.com/glbter/portfolio-dashboard/quotes/client/http"
	staticQuotes "github.com/glbter/portfolio-dashboard/quotes/client/static"
	"github.com/glbter/portfolio-dashboard/refresher"
)

// holdingsRepo picks the repository by the file extension; no file means the
// built-in portfolio.
func holdingsRepo(path string) (holdings.Repo, error) {
	if path == "" {
		return static.HoldingRepo{}, nil
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return csv.HoldingRepo{Path: path}, nil
	case ".yaml", ".yml":
		return yaml.HoldingRepo{Path: path}, nil
	default:
		return nil, fmt.Errorf("unsupported holdings file %q", path)
	}
}

func quoteSource(cfg Config, hs []entities.Holding, logger *zap.Logger) quotes.Source {
	if cfg.QuoteProvider == ProviderStatic {
		// quotes at the purchase price: the dashboard renders with no gains
		src := staticQuotes.NewSource()
		for _, h := range hs {
			src.Set(entities.StockData{Symbol: h.Symbol, CMP: h.PurchasePrice.InexactFloat64()})
		}
		return src
	}

	client := &http.Client{Timeout: cfg.QuoteTimeout}
	return quoteHttp.NewClient(client, cfg.QuoteBaseURL, logger)
}

func newRefresher(cfg Config, logger *zap.Logger) (*refresher.Refresher, error) {
	repo, err := holdingsRepo(cfg.HoldingsFile)
	if err != nil {
		return nil, err
	}

	hs, err := repo.GetHoldings()
	if err != nil {
		return nil, fmt.Errorf("get holdings: %w", err)
	}

	return refresher.New(hs, quoteSource(cfg, hs, logger), refresher.Config{
		Currency: cfg.Currency,
		Interval: cfg.RefreshInterval,
		Timeout:  cfg.QuoteTimeout,
	}, logger), nil
}
