package boundary

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Render draws m as a background colour field and overlays the samples x
// coloured by labels. Axis limits match the lattice extent and ticks fall
// on whole units across the sample range.
func Render(m *Map, x mat.Matrix, labels []int, title string, style Style) (*plot.Plot, error) {
	n, _ := x.Dims()
	if n != len(labels) {
		return nil, ErrLabelCount
	}
	style = style.withDefaults()

	// Every class seen either on the lattice or in the samples gets a colour.
	classes := classIndex(m.labels, labels)
	bg, err := paletteColors(style.Background, len(classes))
	if err != nil {
		return nil, err
	}
	fg, err := paletteColors(style.Points, len(classes))
	if err != nil {
		return nil, err
	}

	// Create the plot and set its title.
	p := plot.New()
	p.Title.Text = title

	// Paint the classification map, one flat colour per class.
	p.Add(heatMap(m, classes, bg))

	// Overlay the samples on the plot.
	scatters, err := overlay(x, labels, classes, fg, style)
	if err != nil {
		return nil, err
	}
	for _, s := range scatters {
		p.Add(s)
		p.Legend.Add(s.label, s)
	}

	// Specify the boundaries of the plot.
	ext := m.Extent()
	p.X.Min, p.X.Max = ext.MinX, ext.MaxX
	p.Y.Min, p.Y.Max = ext.MinY, ext.MaxY

	// Specify the ticks on the X and Y axes.
	p.X.Tick.Marker = unitTicks(m.Data.MinX-m.margin, m.Data.MaxX+m.margin)
	p.Y.Tick.Marker = unitTicks(m.Data.MinY-m.margin, m.Data.MaxY+m.margin)
	return p, nil
}

// classIndex assigns every distinct label a dense index in ascending label order.
func classIndex(sets ...[]int) map[int]int {
	seen := make(map[int]bool)
	for _, set := range sets {
		for _, l := range set {
			seen[l] = true
		}
	}
	sorted := make([]int, 0, len(seen))
	for l := range seen {
		sorted = append(sorted, l)
	}
	sort.Ints(sorted)
	idx := make(map[int]int, len(sorted))
	for i, l := range sorted {
		idx[l] = i
	}
	return idx
}

// paletteColors returns n colours from the named brewer palette, cycling
// when the palette has fewer than n.
func paletteColors(name string, n int) ([]color.Color, error) {
	var (
		pal palette.Palette
		err error
	)
	for k := max(n, 3); k >= 3; k-- {
		if pal, err = brewer.GetPalette(brewer.TypeAny, name, k); err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("boundary: palette %q: %w", name, err)
	}
	cs := pal.Colors()
	out := make([]color.Color, n)
	for i := range out {
		out[i] = cs[i%len(cs)]
	}
	return out, nil
}

// discrete is a fixed list of colours.
type discrete []color.Color

func (d discrete) Colors() []color.Color { return d }

// classGrid exposes a Map with Z values replaced by class indexes.
type classGrid struct {
	*Map
	classes map[int]int
}

func (g classGrid) Z(c, r int) float64 {
	return float64(g.classes[g.At(r, c)])
}

func heatMap(m *Map, classes map[int]int, colors []color.Color) *plotter.HeatMap {
	pal := discrete(colors)
	if len(pal) < 2 {
		pal = append(pal, pal[0])
	}
	h := plotter.NewHeatMap(classGrid{Map: m, classes: classes}, pal)
	// Pin the range so class index i always maps to colour i.
	h.Min, h.Max = 0, float64(len(pal)-1)
	// Raster drawing needs at least two points per axis to derive the spacing.
	h.Rasterized = m.Cols() > 1 && m.Rows() > 1
	return h
}

type labeledScatter struct {
	*plotter.Scatter
	label string
}

// overlay groups the samples by label into one scatter per class, in class order.
func overlay(x mat.Matrix, labels []int, classes map[int]int, colors []color.Color, style Style) ([]labeledScatter, error) {
	groups := make([]plotter.XYs, len(classes))
	names := make([]int, len(classes))
	for l, i := range classes {
		names[i] = l
	}
	for i, l := range labels {
		pt := plotter.XY{X: x.At(i, 0), Y: x.At(i, 1)}
		if !finite(pt.X) || !finite(pt.Y) {
			continue
		}
		k := classes[l]
		groups[k] = append(groups[k], pt)
	}
	var out []labeledScatter
	for k, pts := range groups {
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("boundary: overlay class %d: %w", names[k], err)
		}
		s.GlyphStyle = draw.GlyphStyle{
			Color:  colors[k],
			Radius: style.MarkerRadius,
			Shape:  borderedCircle{width: style.MarkerBorder, border: color.Black},
		}
		out = append(out, labeledScatter{Scatter: s, label: strconv.Itoa(names[k])})
	}
	return out, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// unitTicks places a tick at every whole unit from int(lo) up to, but
// excluding, int(hi).
func unitTicks(lo, hi float64) plot.ConstantTicks {
	var ticks plot.ConstantTicks
	if !finite(lo) || !finite(hi) {
		return ticks
	}
	for v := int(lo); v < int(hi); v++ {
		ticks = append(ticks, plot.Tick{Value: float64(v), Label: strconv.Itoa(v)})
	}
	return ticks
}

// borderedCircle is a filled circle with a ring drawn around it.
type borderedCircle struct {
	width  vg.Length
	border color.Color
}

// DrawGlyph implements the draw.GlyphDrawer interface.
func (g borderedCircle) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	var p vg.Path
	p.Move(vg.Point{X: pt.X + sty.Radius, Y: pt.Y})
	p.Arc(pt, sty.Radius, 0, 2*math.Pi)
	p.Close()
	c.SetColor(sty.Color)
	c.Fill(p)
	if g.width <= 0 {
		return
	}
	c.SetLineStyle(draw.LineStyle{Color: g.border, Width: g.width})
	c.Stroke(p)
}
