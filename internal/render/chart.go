package render

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/RMahshie/scmplot/internal/storage"
	"github.com/RMahshie/scmplot/internal/telemetry"
	"github.com/RMahshie/scmplot/pkg/models"
)

const timeAxisLabel = "time (seconds)"

// Renderer redraws the telemetry chart from a session snapshot.
type Renderer interface {
	Render(snap models.Snapshot) error
}

// ChartConfig holds the chart layout and output settings.
type ChartConfig struct {
	Path             string
	Width            vg.Length
	Height           vg.Length
	TemperatureTicks []float64
}

// DefaultChartConfig mirrors the reference deployment: a 13x7 inch figure
// with a 25-45 degree temperature scale.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Path:             "telemetry.png",
		Width:            13 * vg.Inch,
		Height:           7 * vg.Inch,
		TemperatureTicks: []float64{25, 30, 35, 40, 45},
	}
}

type chart struct {
	cfg   ChartConfig
	codec telemetry.SettingCodec
	store storage.ArtifactStore
}

// NewChart creates a Renderer that replaces cfg.Path in store on every
// update.
func NewChart(cfg ChartConfig, codec telemetry.SettingCodec, store storage.ArtifactStore) Renderer {
	return &chart{cfg: cfg, codec: codec, store: store}
}

// Render draws the whole figure from scratch and swaps it in atomically.
func (c *chart) Render(snap models.Snapshot) error {
	err := c.store.Write(c.cfg.Path, func(w io.Writer) error {
		return DrawTelemetry(w, snap, c.codec, c.cfg)
	})
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	log.Debug().Str("path", c.cfg.Path).Int("readings", snap.Len()).Msg("Chart redrawn")
	return nil
}

// DrawTelemetry writes the 3x2 telemetry figure as PNG: settings with
// temperature on the left, averaged counters on the right.
func DrawTelemetry(w io.Writer, snap models.Snapshot, codec telemetry.SettingCodec, cfg ChartConfig) error {
	rx, err := settingPlot(snap, snap.RX, codec, cfg, "LC OSC frequency setting (RX)")
	if err != nil {
		return err
	}
	tx, err := settingPlot(snap, snap.TX, codec, cfg, "LC OSC frequency setting (TX)")
	if err != nil {
		return err
	}
	rc, err := settingPlot(snap, snap.RC2M, codec, cfg, "2M RC OSC frequency setting")
	if err != nil {
		return err
	}
	avgIF, err := scalarPlot(snap.Elapsed, snap.AvgIF, "intermediate frequency count")
	if err != nil {
		return err
	}
	avgFO, err := scalarPlot(snap.Elapsed, snap.AvgFO, "frequency offset")
	if err != nil {
		return err
	}
	avgCount, err := scalarPlot(snap.Elapsed, snap.AvgCount2M, "2M RC frequency count")
	if err != nil {
		return err
	}

	plots := [][]*plot.Plot{
		{rx, avgIF},
		{tx, avgFO},
		{rc, avgCount},
	}

	img := vgimg.New(cfg.Width, cfg.Height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      3,
		Cols:      2,
		PadTop:    vg.Millimeter * 4,
		PadBottom: vg.Millimeter * 4,
		PadLeft:   vg.Millimeter * 4,
		PadRight:  vg.Millimeter * 4,
		PadX:      vg.Millimeter * 18,
		PadY:      vg.Millimeter * 8,
	}
	canvases := plot.Align(plots, tiles, dc)
	for j := range plots {
		for i := range plots[j] {
			plots[j][i].Draw(canvases[j][i])
		}
	}

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode chart: %w", err)
	}
	return nil
}

func settingPlot(snap models.Snapshot, series []int, codec telemetry.SettingCodec, cfg ChartConfig, legend string) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = timeAxisLabel
	p.Y.Label.Text = "frequency settings"

	sc, err := plotter.NewScatter(intXYs(snap.Elapsed, series))
	if err != nil {
		return nil, fmt.Errorf("failed to plot %s: %w", legend, err)
	}
	temp := newSecondaryLine(snap.Elapsed, snap.Temperature, cfg.TemperatureTicks)
	p.Add(sc, temp)

	setSettingAxis(&p.Y, codec, series)

	p.Legend.Add(legend, sc)
	p.Legend.Add("temperature(°C)", temp)
	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}

// setSettingAxis replaces gonum's default ticks with the derived setting
// ticks and pins the axis range to them.
func setSettingAxis(y *plot.Axis, codec telemetry.SettingCodec, series []int) {
	ticks := SettingTicks(codec, series)
	y.Tick.Marker = plotTicks(ticks)
	y.Min = float64(ticks[0].Value)
	y.Max = float64(ticks[len(ticks)-1].Value)
	if y.Min == y.Max {
		y.Min--
		y.Max++
	}
}

func scalarPlot(xs []float64, ys []int, ylabel string) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = timeAxisLabel
	p.Y.Label.Text = ylabel

	sc, err := plotter.NewScatter(intXYs(xs, ys))
	if err != nil {
		return nil, fmt.Errorf("failed to plot %s: %w", ylabel, err)
	}
	p.Add(sc)
	return p, nil
}

func intXYs(xs []float64, ys []int) plotter.XYs {
	out := make(plotter.XYs, len(xs))
	for i := range xs {
		out[i] = plotter.XY{X: xs[i], Y: float64(ys[i])}
	}
	return out
}
