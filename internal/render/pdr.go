package render

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrSeriesMismatch is returned when PDR series lengths disagree.
var ErrSeriesMismatch = errors.New("pdr series lengths differ")

// Reference PDR measurements (percent) per packet length.
var (
	ReceiverPDR = PDRData{
		Title:         "Receiver's PDR",
		PacketLengths: []float64{5, 10, 15, 20},
		PDR:           []float64{94.48, 95.68, 96.03, 95.1},
		ErrorBars:     []float64{1.997372011, 1.476277054, 1.374037772, 1.534123643},
	}
	TransmitterPDR = PDRData{
		Title:         "Transmitter's PDR",
		PacketLengths: []float64{5, 10, 15, 20},
		PDR:           []float64{46.97, 24.42, 24.16, 24.60},
		ErrorBars:     []float64{5.129544056, 4.202404314, 5.921575002, 4.532709404},
	}
)

// PDRData is the input of the PDR bar chart.
type PDRData struct {
	Title         string
	PacketLengths []float64
	PDR           []float64
	ErrorBars     []float64
}

// Validate checks that every series has one entry per packet length.
func (d PDRData) Validate() error {
	n := len(d.PacketLengths)
	if n == 0 {
		return fmt.Errorf("%w: no packet lengths", ErrSeriesMismatch)
	}
	if len(d.PDR) != n || len(d.ErrorBars) != n {
		return fmt.Errorf("%w: %d lengths, %d ratios, %d error bars",
			ErrSeriesMismatch, n, len(d.PDR), len(d.ErrorBars))
	}
	return nil
}

type barErrors struct {
	plotter.XYs
	plotter.YErrors
}

// DrawPDR writes a bar chart of PDR versus packet length with symmetric
// error bars as PNG.
func DrawPDR(w io.Writer, d PDRData, width, height vg.Length) error {
	if err := d.Validate(); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = d.Title
	p.X.Label.Text = "Packet Length"
	p.Y.Label.Text = "PDR"

	bars, err := plotter.NewBarChart(plotter.Values(d.PDR), vg.Points(30))
	if err != nil {
		return fmt.Errorf("failed to build bar chart: %w", err)
	}

	errs := barErrors{
		XYs:     make(plotter.XYs, len(d.PDR)),
		YErrors: make(plotter.YErrors, len(d.PDR)),
	}
	labels := make([]string, len(d.PacketLengths))
	for i := range d.PDR {
		errs.XYs[i] = plotter.XY{X: float64(i), Y: d.PDR[i]}
		errs.YErrors[i].Low = d.ErrorBars[i]
		errs.YErrors[i].High = d.ErrorBars[i]
		labels[i] = strconv.FormatFloat(d.PacketLengths[i], 'g', -1, 64)
	}
	eb, err := plotter.NewYErrorBars(errs)
	if err != nil {
		return fmt.Errorf("failed to build error bars: %w", err)
	}
	eb.CapWidth = vg.Points(10)

	p.Add(bars, eb)
	p.NominalX(labels...)
	p.Y.Min = 0

	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("failed to encode pdr chart: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}
