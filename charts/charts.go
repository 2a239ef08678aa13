// Package charts lays out the dashboard's pie and bar charts as SVG shapes.
package charts

import (
	"fmt"
	"math"

	"github.com/glbter/portfolio-dashboard/entities"
)

const (
	InvestedColor = "#9012FF"
	GainColor     = "#17B26A"
	LossColor     = "#F04438"
)

var Palette = []string{
	"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0", "#9966FF",
	"#FF9F40", "#FFCD56", "#4D5360", "#C9CBCF", "#B2FF66",
}

type PieSlice struct {
	Label   string
	Value   float64
	Percent float64
	Color   string
	// Path is the SVG path of the wedge. Empty when Full is set.
	Path string
	// Full is set for a slice covering the whole pie.
	Full bool
}

type Pie struct {
	CX, CY, R float64
	Slices    []PieSlice
}

// NewPie lays slices out clockwise from twelve o'clock. Slices with no value
// are kept, for the legend, but get no wedge.
func NewPie(slices []entities.Slice, cx, cy, r float64) Pie {
	total := 0.0
	for _, s := range slices {
		if v := s.Value.InexactFloat64(); v > 0 {
			total += v
		}
	}

	pie := Pie{CX: cx, CY: cy, R: r}
	angle := 0.0
	for i, s := range slices {
		v := math.Max(s.Value.InexactFloat64(), 0)
		slice := PieSlice{
			Label:   s.Name,
			Value:   v,
			Percent: s.Percent.InexactFloat64(),
			Color:   Palette[i%len(Palette)],
		}
		if total > 0 && v > 0 {
			sweep := v / total * 2 * math.Pi
			if sweep >= 2*math.Pi-1e-9 {
				slice.Full = true
			} else {
				slice.Path = wedge(cx, cy, r, angle, angle+sweep)
			}
			angle += sweep
		}
		pie.Slices = append(pie.Slices, slice)
	}
	return pie
}

func wedge(cx, cy, r, from, to float64) string {
	x1, y1 := point(cx, cy, r, from)
	x2, y2 := point(cx, cy, r, to)
	large := 0
	if to-from > math.Pi {
		large = 1
	}
	return fmt.Sprintf("M %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f Z", cx, cy, x1, y1, r, r, large, x2, y2)
}

// point is on the circle at angle radians clockwise from the top.
func point(cx, cy, r, angle float64) (float64, float64) {
	return cx + r*math.Sin(angle), cy - r*math.Cos(angle)
}

type Bar struct {
	Label         string
	Value         float64
	X, Y          float64
	Width, Height float64
	Color         string
}

type BarGroup struct {
	Label    string
	X        float64
	Invested float64
	Current  float64
	GainLoss float64
	Bars     []Bar
}

type BarChart struct {
	Width, Height float64
	Max           float64
	Groups        []BarGroup
}

// NewBarChart draws, per sector, the invested value, the current value and
// the size of the gain or loss. The last two are green on a gain and red on
// a loss. The y axis runs from zero to the largest bar.
func NewBarChart(sectors []entities.SectorValue, width, height float64) BarChart {
	chart := BarChart{Width: width, Height: height}
	if len(sectors) == 0 {
		return chart
	}

	for _, s := range sectors {
		chart.Max = math.Max(chart.Max, math.Max(s.Invested.InexactFloat64(), s.Current.InexactFloat64()))
		chart.Max = math.Max(chart.Max, math.Abs(s.GainLoss().InexactFloat64()))
	}

	slot := width / float64(len(sectors))
	barWidth := math.Min(20, slot/4)
	gap := barWidth / 4

	for i, s := range sectors {
		invested := s.Invested.InexactFloat64()
		current := s.Current.InexactFloat64()
		gainLoss := current - invested

		color := GainColor
		if current < invested {
			color = LossColor
		}

		group := BarGroup{
			Label:    s.Sector,
			X:        slot*float64(i) + slot/2,
			Invested: invested,
			Current:  current,
			GainLoss: gainLoss,
		}
		left := group.X - (3*barWidth+2*gap)/2
		values := []struct {
			label string
			value float64
			color string
		}{
			{"Invested", invested, InvestedColor},
			{"Current Value", current, color},
			{"Gain/Loss", math.Abs(gainLoss), color},
		}
		for j, v := range values {
			h := chart.scale(v.value)
			group.Bars = append(group.Bars, Bar{
				Label:  v.label,
				Value:  v.value,
				X:      left + float64(j)*(barWidth+gap),
				Y:      height - h,
				Width:  barWidth,
				Height: h,
				Color:  v.color,
			})
		}
		chart.Groups = append(chart.Groups, group)
	}
	return chart
}

func (c BarChart) scale(v float64) float64 {
	if c.Max <= 0 || v <= 0 {
		return 0
	}
	return v / c.Max * c.Height
}
