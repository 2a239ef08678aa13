package yaml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "holdings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestHoldingRepo(t *testing.T) {
	path := writeFile(t, `
holdings:
  - symbol: BEL.NS
    name: Bharat Electronics Ltd.
    exchange: NSE
    sector: Defence Electronics
    purchase_price: 120.25
    quantity: 50
  - symbol: MSFT
    exchange: NASDAQ
    purchase_price: "410"
    quantity: 3
`)

	hs, err := HoldingRepo{Path: path}.GetHoldings()
	require.NoError(t, err)
	require.Len(t, hs, 2)

	assert.Equal(t, "BEL.NS", hs[0].Symbol)
	assert.Equal(t, "Bharat Electronics Ltd.", hs[0].Name)
	assert.Equal(t, "Defence Electronics", hs[0].Sector)
	assert.True(t, decimal.RequireFromString("120.25").Equal(hs[0].PurchasePrice))
	assert.Equal(t, int64(50), hs[0].Quantity)

	assert.Equal(t, "NASDAQ", hs[1].Exchange)
	assert.True(t, decimal.NewFromInt(410).Equal(hs[1].PurchasePrice))
}

func TestHoldingRepo_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "no holdings", content: "holdings: []\n", wantErr: "no holdings"},
		{name: "bad price", content: "holdings:\n  - symbol: A\n    purchase_price: cheap\n    quantity: 1\n", wantErr: `holding "A": parse purchase_price`},
		{name: "bad yaml", content: "holdings: [\n", wantErr: "decode"},
		{name: "duplicate", content: "holdings:\n  - {symbol: A, purchase_price: 1, quantity: 1}\n  - {symbol: A, purchase_price: 1, quantity: 1}\n", wantErr: "duplicate symbol"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := HoldingRepo{Path: writeFile(t, tt.content)}.GetHoldings()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
