package charts

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glbter/portfolio-dashboard/entities"
)

func slice(name string, value, percent int64) entities.Slice {
	return entities.Slice{Name: name, Value: decimal.NewFromInt(value), Percent: decimal.NewFromInt(percent)}
}

func TestNewPie(t *testing.T) {
	pie := NewPie([]entities.Slice{
		slice("A", 50, 50),
		slice("B", 25, 25),
		slice("C", 25, 25),
	}, 100, 100, 80)

	require.Len(t, pie.Slices, 3)

	// the first half runs from the top to the bottom of the circle
	assert.Equal(t, "M 100.00 100.00 L 100.00 20.00 A 80.00 80.00 0 0 1 100.00 180.00 Z", pie.Slices[0].Path)
	// the next quarter ends at nine o'clock
	assert.True(t, strings.HasSuffix(pie.Slices[1].Path, "A 80.00 80.00 0 0 1 20.00 100.00 Z"), pie.Slices[1].Path)
	// and the last one closes the circle
	assert.True(t, strings.HasSuffix(pie.Slices[2].Path, "A 80.00 80.00 0 0 1 100.00 20.00 Z"), pie.Slices[2].Path)

	assert.Equal(t, Palette[0], pie.Slices[0].Color)
	assert.Equal(t, Palette[1], pie.Slices[1].Color)
	assert.Equal(t, 50.0, pie.Slices[0].Percent)
}

func TestNewPie_LargeArc(t *testing.T) {
	pie := NewPie([]entities.Slice{slice("A", 3, 75), slice("B", 1, 25)}, 0, 0, 10)
	assert.Contains(t, pie.Slices[0].Path, " 0 1 1 ")
	assert.Contains(t, pie.Slices[1].Path, " 0 0 1 ")
}

func TestNewPie_SingleSliceIsFull(t *testing.T) {
	pie := NewPie([]entities.Slice{slice("A", 10, 100), slice("B", 0, 0)}, 0, 0, 10)

	require.Len(t, pie.Slices, 2)
	assert.True(t, pie.Slices[0].Full)
	assert.Empty(t, pie.Slices[0].Path)
	assert.False(t, pie.Slices[1].Full)
	assert.Empty(t, pie.Slices[1].Path)
}

func TestNewPie_Empty(t *testing.T) {
	pie := NewPie(nil, 0, 0, 10)
	assert.Empty(t, pie.Slices)
}

func TestNewBarChart(t *testing.T) {
	sectors := []entities.SectorValue{
		{Sector: "Finance", Invested: decimal.NewFromInt(200000), Current: decimal.NewFromInt(240000)},
		{Sector: "Auto", Invested: decimal.NewFromInt(180000), Current: decimal.NewFromInt(160000)},
		{Sector: "FMCG", Invested: decimal.NewFromInt(150000), Current: decimal.NewFromInt(150000)},
	}

	chart := NewBarChart(sectors, 600, 300)

	assert.Equal(t, 240000.0, chart.Max)
	require.Len(t, chart.Groups, 3)

	finance := chart.Groups[0]
	assert.Equal(t, "Finance", finance.Label)
	assert.Equal(t, 100.0, finance.X)
	assert.Equal(t, 40000.0, finance.GainLoss)
	require.Len(t, finance.Bars, 3)
	assert.Equal(t, InvestedColor, finance.Bars[0].Color)
	assert.Equal(t, 250.0, finance.Bars[0].Height)
	assert.Equal(t, 50.0, finance.Bars[0].Y)
	assert.Equal(t, GainColor, finance.Bars[1].Color)
	assert.Equal(t, 300.0, finance.Bars[1].Height)
	assert.Equal(t, 0.0, finance.Bars[1].Y)
	assert.Equal(t, GainColor, finance.Bars[2].Color)
	assert.Equal(t, 50.0, finance.Bars[2].Height)

	auto := chart.Groups[1]
	assert.Equal(t, -20000.0, auto.GainLoss)
	assert.Equal(t, LossColor, auto.Bars[1].Color)
	assert.Equal(t, LossColor, auto.Bars[2].Color)
	assert.Equal(t, 20000.0, auto.Bars[2].Value)
	assert.Equal(t, 25.0, auto.Bars[2].Height)

	fmcg := chart.Groups[2]
	assert.Equal(t, GainColor, fmcg.Bars[1].Color)
	assert.Equal(t, 0.0, fmcg.Bars[2].Height)

	// bars of a group sit side by side, left to right
	assert.Less(t, finance.Bars[0].X, finance.Bars[1].X)
	assert.Less(t, finance.Bars[1].X, finance.Bars[2].X)
	assert.Less(t, finance.Bars[2].X+finance.Bars[2].Width, chart.Groups[1].Bars[0].X)
}

func TestNewBarChart_AllZero(t *testing.T) {
	chart := NewBarChart([]entities.SectorValue{{Sector: "Other"}}, 100, 100)

	require.Len(t, chart.Groups, 1)
	for _, b := range chart.Groups[0].Bars {
		assert.Equal(t, 0.0, b.Height)
		assert.Equal(t, 100.0, b.Y)
	}
}

func TestNewBarChart_Empty(t *testing.T) {
	chart := NewBarChart(nil, 100, 100)
	assert.Empty(t, chart.Groups)
	assert.Equal(t, 0.0, chart.Max)
}
