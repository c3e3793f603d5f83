package render

import (
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var temperatureColor = color.RGBA{R: 255, A: 255}

// secondaryLine draws a line series against its own vertical scale, with
// ticks along the right edge of the data area. It is not a plot.DataRanger
// and leaves the primary axis range alone.
type secondaryLine struct {
	xys      plotter.XYs
	min, max float64
	ticks    []float64

	draw.LineStyle
}

// newSecondaryLine scales ys into [min, max] of ticks, widened to cover the
// data.
func newSecondaryLine(xs []float64, ys []float64, ticks []float64) *secondaryLine {
	l := &secondaryLine{
		xys:       make(plotter.XYs, len(xs)),
		min:       math.Inf(1),
		max:       math.Inf(-1),
		ticks:     ticks,
		LineStyle: plotter.DefaultLineStyle,
	}
	l.LineStyle.Color = temperatureColor
	for i := range xs {
		l.xys[i] = plotter.XY{X: xs[i], Y: ys[i]}
		l.min = math.Min(l.min, ys[i])
		l.max = math.Max(l.max, ys[i])
	}
	for _, t := range ticks {
		l.min = math.Min(l.min, t)
		l.max = math.Max(l.max, t)
	}
	if math.IsInf(l.min, 0) || math.IsInf(l.max, 0) {
		l.min, l.max = 0, 1
	}
	if l.min == l.max {
		l.min--
		l.max++
	}
	return l
}

func (l *secondaryLine) y(c draw.Canvas, v float64) vg.Length {
	return c.Min.Y + vg.Length((v-l.min)/(l.max-l.min))*(c.Max.Y-c.Min.Y)
}

// Plot implements plot.Plotter.
func (l *secondaryLine) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, _ := plt.Transforms(&c)

	pts := make([]vg.Point, len(l.xys))
	for i, p := range l.xys {
		pts[i] = vg.Point{X: trX(p.X), Y: l.y(c, p.Y)}
	}
	if len(pts) > 1 {
		c.StrokeLines(l.LineStyle, c.ClipLinesXY(pts)...)
	}

	axis := plt.Y.LineStyle
	c.StrokeLine2(axis, c.Max.X, c.Min.Y, c.Max.X, c.Max.Y)

	label := plt.Y.Tick.Label
	label.XAlign = text.XLeft
	label.YAlign = text.YCenter
	tickLen := plt.Y.Tick.Length
	for _, t := range l.ticks {
		y := l.y(c, t)
		c.StrokeLine2(plt.Y.Tick.LineStyle, c.Max.X, y, c.Max.X+tickLen, y)
		c.FillText(label, vg.Point{X: c.Max.X + tickLen + vg.Points(2), Y: y}, strconv.FormatFloat(t, 'g', -1, 64))
	}
}

// Thumbnail implements plot.Thumbnailer.
func (l *secondaryLine) Thumbnail(c *draw.Canvas) {
	y := c.Center().Y
	c.StrokeLine2(l.LineStyle, c.Min.X, y, c.Max.X, y)
}
