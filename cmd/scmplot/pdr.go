package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/RMahshie/scmplot/internal/render"
	"github.com/RMahshie/scmplot/internal/storage"
)

var (
	pdrSide      string
	pdrTitle     string
	pdrLengths   []float64
	pdrRatios    []float64
	pdrErrorBars []float64
)

func init() {
	pdrCmd := &cobra.Command{
		Use:   "pdr-chart",
		Short: "Draw the PDR versus packet length bar chart",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, args []string) error { return runPDRChart(cmd) },
	}
	f := pdrCmd.Flags()
	f.StringVar(&pdrSide, "side", "receiver", "Reference data set: receiver or transmitter")
	f.StringVar(&pdrTitle, "title", "", "Chart title")
	f.Float64SliceVar(&pdrLengths, "lengths", nil, "Packet lengths in bytes")
	f.Float64SliceVar(&pdrRatios, "pdr", nil, "PDR per packet length, in percent")
	f.Float64SliceVar(&pdrErrorBars, "errors", nil, "Error bar half-height per packet length")
	f.String("output", "", "Output PNG path")
	bindFlag("PDR_CHART_PATH", f.Lookup("output"))
	rootCmd.AddCommand(pdrCmd)
}

func runPDRChart(cmd *cobra.Command) error {
	var d render.PDRData
	switch pdrSide {
	case "receiver":
		d = render.ReceiverPDR
	case "transmitter":
		d = render.TransmitterPDR
	default:
		return fmt.Errorf("unknown side %q: want receiver or transmitter", pdrSide)
	}

	if cmd.Flags().Changed("title") {
		d.Title = pdrTitle
	}
	if cmd.Flags().Changed("lengths") {
		d.PacketLengths = pdrLengths
	}
	if cmd.Flags().Changed("pdr") {
		d.PDR = pdrRatios
	}
	if cmd.Flags().Changed("errors") {
		d.ErrorBars = pdrErrorBars
	}
	if err := d.Validate(); err != nil {
		return err
	}

	out := cfg.Chart.PDRPath
	err := storage.NewFileStore("").Write(out, func(w io.Writer) error {
		return render.DrawPDR(w, d, 6*vg.Inch, 4*vg.Inch)
	})
	if err != nil {
		return err
	}
	log.Info().Str("path", out).Str("title", d.Title).Msg("PDR chart written")
	return nil
}
