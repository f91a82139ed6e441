package render

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// bars draws one vertical bar per point, centred on the point's X value and
// rising from zero to its Y value. Unlike plotter.BarChart the X positions
// are arbitrary and the width is in data units, so clusters can be spaced
// unevenly. Bars with a NaN height are not drawn.
type bars struct {
	XYs plotter.XYs

	// Errors, if set, holds a symmetric error for each bar.
	Errors []float64

	// Width is the bar width in data units.
	Width float64

	Color      color.Color
	LineStyle  draw.LineStyle
	ErrorStyle draw.LineStyle
}

func newBars(xs, ys []float64, width float64) *bars {
	xys := make(plotter.XYs, len(xs))
	for i := range xs {
		xys[i].X = xs[i]
		xys[i].Y = ys[i]
	}
	return &bars{
		XYs:        xys,
		Width:      width,
		Color:      color.Black,
		LineStyle:  plotter.DefaultLineStyle,
		ErrorStyle: plotter.DefaultLineStyle,
	}
}

// Plot implements the plot.Plotter interface.
func (b *bars) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)

	for i, bar := range b.XYs {
		if math.IsNaN(bar.Y) {
			continue
		}
		xMin := trX(bar.X - b.Width/2)
		xMax := trX(bar.X + b.Width/2)
		if !c.ContainsX(xMin) && !c.ContainsX(xMax) {
			continue
		}
		yMin := trY(0)
		yMax := trY(bar.Y)

		pts := []vg.Point{
			{X: xMin, Y: yMin},
			{X: xMin, Y: yMax},
			{X: xMax, Y: yMax},
			{X: xMax, Y: yMin},
		}
		c.FillPolygon(b.Color, c.ClipPolygonY(pts))

		if b.LineStyle.Width > 0 {
			pts = append(pts, vg.Point{X: xMin, Y: yMin})
			c.StrokeLines(b.LineStyle, c.ClipLinesY(pts)...)
		}

		if len(b.Errors) == 0 || math.IsNaN(b.Errors[i]) {
			continue
		}
		e := math.Abs(b.Errors[i])
		x := trX(bar.X)
		low := trY(bar.Y - e)
		high := trY(bar.Y + e)
		c.StrokeLines(b.ErrorStyle, c.ClipLinesY([]vg.Point{{X: x, Y: low}, {X: x, Y: high}})...)
		capWidth := (xMax - xMin) / 4
		for _, y := range []vg.Length{low, high} {
			if c.ContainsY(y) {
				c.StrokeLine2(b.ErrorStyle, x-capWidth, y, x+capWidth, y)
			}
		}
	}
}

// DataRange implements the plot.DataRanger interface. NaN bars are ignored.
func (b *bars) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = math.Inf(1), math.Inf(-1)
	ymin, ymax = 0, 0
	for i, bar := range b.XYs {
		xmin = math.Min(xmin, bar.X-b.Width/2)
		xmax = math.Max(xmax, bar.X+b.Width/2)
		if math.IsNaN(bar.Y) {
			continue
		}
		lo, hi := bar.Y, bar.Y
		if len(b.Errors) > 0 && !math.IsNaN(b.Errors[i]) {
			lo -= math.Abs(b.Errors[i])
			hi += math.Abs(b.Errors[i])
		}
		ymin = math.Min(ymin, lo)
		ymax = math.Max(ymax, hi)
	}
	return xmin, xmax, ymin, ymax
}

// Thumbnail implements the plot.Thumbnailer interface.
func (b *bars) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(b.Color, c.ClipPolygonY(pts))
}
