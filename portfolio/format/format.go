// Package format renders portfolio figures for humans.
package format

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money formats an amount in the currency's major unit with its symbol,
// grouping and fraction digits, e.g. "₹1,234.50".
func Money(amount decimal.Decimal, currency string) string {
	cur := money.New(0, currency).Currency()
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// SignedMoney is like Money but always carries an explicit sign, except for zero.
func SignedMoney(amount decimal.Decimal, currency string) string {
	if amount.IsPositive() {
		return "+" + Money(amount, currency)
	}
	return Money(amount, currency)
}

// Percent formats a percentage value with two decimals, e.g. "12.34%".
func Percent(p decimal.Decimal) string {
	return p.StringFixed(2) + "%"
}

// Fixed formats a plain number with two decimals.
func Fixed(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
