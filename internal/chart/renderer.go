//go:build !nochart

package chart

import (
	"bytes"
	"context"
	"fmt"
	"image/color"

	"github.com/huangsam/metricviz/core"
	"github.com/huangsam/metricviz/internal/contract"
	"github.com/huangsam/metricviz/schema"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var gridColor = color.Gray{Y: 220}

// Available reports whether this build can render charts.
func Available() bool {
	return true
}

// Render draws points as a PNG of exactly opts.Width x opts.Height pixels.
func (r *Renderer) Render(ctx context.Context, points []schema.MetricPoint, opts schema.ChartOptions) ([]byte, error) {
	if len(points) == 0 {
		return nil, contract.ErrNoData
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := buildPlot(points, opts.Title)
	if err != nil {
		return nil, err
	}

	// vgimg sizes the canvas in points; dividing by the DPI keeps the pixel size exact
	width := vg.Length(opts.Width) * vg.Inch / DPI
	height := vg.Length(opts.Height) * vg.Inch / DPI
	canvas := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(DPI))
	p.Draw(draw.New(canvas))

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode chart: %w", err)
	}
	return buf.Bytes(), nil
}

func buildPlot(points []schema.MetricPoint, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = XAxisLabel
	p.Y.Label.Text = YAxisLabel
	p.Legend.Top = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Horizontal.Color = gridColor
	p.Add(grid)

	for i, series := range core.GroupByLabel(points) {
		xys := make(plotter.XYs, len(series.Points))
		for j, sp := range series.Points {
			xys[j].X = float64(sp.Index)
			xys[j].Y = sp.Value
		}

		line, scatter, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("failed to plot series %q: %w", series.Label, err)
		}
		c := plotutil.Color(i)
		line.Color = c
		line.Width = vg.Points(2)
		scatter.Shape = draw.CircleGlyph{}
		scatter.Color = c
		scatter.Radius = vg.Points(3)

		p.Add(line, scatter)
		p.Legend.Add(series.Label, line, scatter)
	}
	return p, nil
}
