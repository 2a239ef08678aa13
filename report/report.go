// Package report prints a portfolio snapshot as a markdown document.
package report

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/glamour"
	md "github.com/nao1215/markdown"

	"github.com/glbter/portfolio-dashboard/entities"
	"github.com/glbter/portfolio-dashboard/portfolio/format"
)

func Markdown(snap entities.Snapshot) string {
	var (
		buf bytes.Buffer
		doc = md.NewMarkdown(&buf)
		cur = snap.Currency
		sum = snap.Summary
	)

	doc.H1("Portfolio report")
	doc.PlainText(md.Italic(fmt.Sprintf("Fetched at %s", snap.FetchedAt.UTC().Format(time.DateTime+" MST"))))

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Total Invested Value", "Current Value", "Total Gains/Loss Value", "Total Profit Percentage"},
		Rows: [][]string{{
			format.Money(sum.Invested, cur),
			format.Money(sum.Current, cur),
			md.Bold(format.SignedMoney(sum.GainLoss, cur)),
			md.Bold(format.Percent(sum.ProfitPercent)),
		}},
	})

	doc.H2("Holdings")
	holdings := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight,
			md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight,
		},
		Header: []string{
			"Stock Name", "Exchange", "Purchase Price", "Quantity", "Investment", "Portfolio (%)",
			"CMP", "Present Value", "Gain/Loss", "P/E Ratio", "Earnings",
		},
	}
	for _, p := range snap.Positions {
		name := p.Name
		if name == "" {
			name = p.Symbol
		}
		cmp := format.Fixed(p.Quote.CMP)
		if !p.Quoted {
			cmp = "n/a"
		}
		holdings.Rows = append(holdings.Rows, []string{
			name,
			p.Exchange,
			format.Money(p.PurchasePrice, cur),
			strconv.FormatInt(p.Quantity, 10),
			format.Money(p.Investment, cur),
			format.Percent(p.PortfolioPercent),
			cmp,
			format.Money(p.PresentValue, cur),
			format.SignedMoney(p.GainLoss, cur),
			format.Fixed(p.Quote.PERatio),
			format.Fixed(p.Quote.Earnings),
		})
	}
	doc.Table(holdings)

	if len(snap.Sectors) > 0 {
		doc.H2("Sectors")
		sectors := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
			Header:    []string{"Sector", "Invested", "Current Value", "Gain/Loss"},
		}
		for _, s := range snap.Sectors {
			sectors.Rows = append(sectors.Rows, []string{
				s.Sector,
				format.Money(s.Invested, cur),
				format.Money(s.Current, cur),
				format.SignedMoney(s.GainLoss(), cur),
			})
		}
		doc.Table(sectors)
	}

	return doc.String()
}

// Render formats markdown for a terminal. An empty style picks one from the
// terminal's background.
func Render(markdown string, style string, width int) (string, error) {
	styleOpt := glamour.WithAutoStyle()
	if style != "" {
		styleOpt = glamour.WithStandardStyle(style)
	}

	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}

	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return out, nil
}
