// Package render draws the normalized bar groups of a metrics pass as one
// PDF figure per setup.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/signalnine/schedplot/internal/normalize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgpdf"
)

const (
	// BarStep is the distance between neighbouring bars of a cluster.
	BarStep = 0.25
	// BarWidth is the width of a bar in data units.
	BarWidth = 0.20

	yMax      = 1.1
	yTickStep = 0.2

	width  = 12 * vg.Inch
	height = 6 * vg.Inch
	header = 0.8 * vg.Inch
)

// Series names in draw order. MAX is painted first so that AVG and then MIN
// cover its lower part; the layering comes from paint order only.
var seriesNames = []string{"MAX", "AVG", "MIN"}

// Panel is the normalized group of one trace.
type Panel struct {
	Trace string
	Group normalize.Group
}

// Figure is one setup of a metrics pass: one panel per trace.
type Figure struct {
	Title      string
	YLabel     string
	Metrics    []string
	Schedulers []string
	Panels     []Panel
}

// Positions returns the x position of every bar, clusters of len(schedulers)
// bars separated by a one-bar gap.
func Positions(metrics, schedulers int) []float64 {
	stride := float64(schedulers+1) * BarStep
	pos := make([]float64, 0, metrics*schedulers)
	for i := range metrics {
		for j := range schedulers {
			pos = append(pos, float64(i)*stride+float64(j)*BarStep)
		}
	}
	return pos
}

// ClusterCenter is the x position of the middle of cluster i.
func ClusterCenter(i, schedulers int) float64 {
	return float64(i)*float64(schedulers+1)*BarStep + float64(schedulers-1)*BarStep/2
}

// TickLabels repeats the scheduler names once per metric.
func TickLabels(metrics, schedulers []string) []string {
	labels := make([]string, 0, len(metrics)*len(schedulers))
	for range metrics {
		labels = append(labels, schedulers...)
	}
	return labels
}

type panel struct {
	plot   *plot.Plot
	series []*bars
	labels *plotter.Labels
}

func (f *Figure) panel(idx int, colors []color.Color) (*panel, error) {
	pn := f.Panels[idx]
	g := pn.Group
	n := len(f.Metrics) * len(f.Schedulers)
	if g.Len() != n || len(g.Avg) != n || len(g.Std) != n || len(g.Min) != n {
		return nil, fmt.Errorf("trace %q: group has %d bars, want %d", pn.Trace, g.Len(), n)
	}

	p := plot.New()
	p.Title.Text = Capitalize(pn.Trace)
	if idx == 0 {
		p.Y.Label.Text = f.YLabel
	}

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	p.Add(grid)

	pos := Positions(len(f.Metrics), len(f.Schedulers))
	pb := &panel{plot: p}
	for i, ys := range [][]float64{g.Max, g.Avg, g.Min} {
		b := newBars(pos, ys, BarWidth)
		b.Color = colors[i]
		b.LineStyle.Width = 0
		if seriesNames[i] == "AVG" {
			b.Errors = g.Std
			b.ErrorStyle.Width = 0.3 * vg.Millimeter
		}
		p.Add(b)
		pb.series = append(pb.series, b)
	}

	xys := make(plotter.XYs, len(f.Metrics))
	for i := range f.Metrics {
		xys[i].X = ClusterCenter(i, len(f.Schedulers))
		xys[i].Y = normalize.LabelHeight(g.Peak(i, len(f.Schedulers)))
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: f.Metrics})
	if err != nil {
		return nil, fmt.Errorf("trace %q: labels: %w", pn.Trace, err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
	}
	p.Add(labels)
	pb.labels = labels

	ticks := make([]plot.Tick, len(pos))
	for i, name := range TickLabels(f.Metrics, f.Schedulers) {
		ticks[i] = plot.Tick{Value: pos[i], Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	var yTicks []plot.Tick
	for i := 0; float64(i)*yTickStep < yMax; i++ {
		v := float64(i) * yTickStep
		yTicks = append(yTicks, plot.Tick{Value: v, Label: fmt.Sprintf("%.1f", v)})
	}
	p.Y.Tick.Marker = plot.ConstantTicks(yTicks)

	// Add widens the axes to the data; pin them afterwards.
	p.X.Min = pos[0] - BarStep
	p.X.Max = pos[len(pos)-1] + BarStep
	p.Y.Min = 0
	p.Y.Max = yMax

	return pb, nil
}

func (f *Figure) panels() ([]*panel, error) {
	if len(f.Panels) == 0 {
		return nil, fmt.Errorf("figure %q has no panels", f.Title)
	}
	if len(f.Metrics) == 0 || len(f.Schedulers) == 0 {
		return nil, fmt.Errorf("figure %q has no metrics or schedulers", f.Title)
	}
	palette, err := brewer.GetPalette(brewer.TypeQualitative, "Set2", len(seriesNames))
	if err != nil {
		return nil, err
	}
	colors := palette.Colors()

	panels := make([]*panel, len(f.Panels))
	for i := range f.Panels {
		pb, err := f.panel(i, colors)
		if err != nil {
			return nil, err
		}
		panels[i] = pb
	}
	return panels, nil
}

// WritePDF renders the figure and writes it to w as a PDF document.
func (f *Figure) WritePDF(w io.Writer) error {
	panels, err := f.panels()
	if err != nil {
		return err
	}

	c := vgpdf.New(width, height)
	dc := draw.New(c)

	titleStyle := text.Style{
		Color:   color.Black,
		Font:    panels[0].plot.Title.TextStyle.Font,
		XAlign:  text.XCenter,
		YAlign:  text.YTop,
		Handler: plot.DefaultTextHandler,
	}
	titleStyle.Font.Size = 14
	dc.FillText(titleStyle, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - vg.Points(8)}, f.Title)

	legend := plot.NewLegend()
	for i, name := range seriesNames {
		legend.Add(name, panels[0].series[i])
	}
	legend.Top = true
	legend.XOffs = -vg.Points(8)
	legend.YOffs = -vg.Points(8)
	legend.Draw(dc)

	plots := [][]*plot.Plot{make([]*plot.Plot, len(panels))}
	for i, pb := range panels {
		plots[0][i] = pb.plot
	}
	body := draw.Crop(dc, 0, 0, 0, -header)
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(panels),
		PadX:      vg.Millimeter * 4,
		PadLeft:   vg.Millimeter * 4,
		PadRight:  vg.Millimeter * 4,
		PadBottom: vg.Millimeter * 4,
	}
	canvases := plot.Align(plots, tiles, body)
	for i, p := range plots[0] {
		p.Draw(canvases[0][i])
	}

	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("encoding pdf: %w", err)
	}
	return nil
}

// Save renders the figure to path, replacing any existing file. Nothing is
// written when rendering fails.
func (f *Figure) Save(path string) error {
	var buf bytes.Buffer
	if err := f.WritePDF(&buf); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Capitalize upper-cases the first letter of s and lower-cases the rest.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return cases.Upper(language.English).String(string(r)) + cases.Lower(language.English).String(s[size:])
}

// FileName is the PDF name of one setup of a pass.
func FileName(setup, suffix string) string {
	return setup + "_" + suffix + ".pdf"
}
