// Package plotting renders solution fields as heatmaps. It replaces the
// interactive comparison plot of typical PINN notebooks with a written
// PNG, which is the one artifact a run produces.
package plotting

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// FieldGrid is a scalar field sampled on an n x n regular grid over
// [0,1]^2. It implements plotter.GridXYZ.
type FieldGrid struct {
	coords []float64
	vals   []float64
}

// NewFieldGrid evaluates f at every grid node. n must be > 1.
func NewFieldGrid(n int, f func(x, y float64) float64) *FieldGrid {
	coords := make([]float64, n)
	floats.Span(coords, 0, 1)
	vals := make([]float64, n*n)
	for r, y := range coords {
		for c, x := range coords {
			vals[r*n+c] = f(x, y)
		}
	}
	return &FieldGrid{coords: coords, vals: vals}
}

// Dims returns the grid extent.
func (g *FieldGrid) Dims() (c, r int) { return len(g.coords), len(g.coords) }

// X returns the x coordinate of column c.
func (g *FieldGrid) X(c int) float64 { return g.coords[c] }

// Y returns the y coordinate of row r.
func (g *FieldGrid) Y(r int) float64 { return g.coords[r] }

// Z returns the field value at column c, row r.
func (g *FieldGrid) Z(c, r int) float64 { return g.vals[r*len(g.coords)+c] }

func heatmapPlot(title string, g *FieldGrid) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewHeatMap(g, palette.Heat(255, 1)))
	return p
}

// RenderComparison writes the analytic and learned fields side by side as
// one PNG at path.
func RenderComparison(path string, analytic, learned *FieldGrid) error {
	plots := [][]*plot.Plot{{
		heatmapPlot("Analytical solution u(x,y)", analytic),
		heatmapPlot("DQC solution u(x,y)", learned),
	}}

	img := vgimg.New(vg.Points(720), vg.Points(360))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 1,
		Cols: 2,
		PadX: vg.Millimeter * 2,
		PadY: vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, tiles, dc)
	for i, p := range plots[0] {
		p.Draw(canvases[0][i])
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("write plot: %w", err)
	}
	return nil
}
