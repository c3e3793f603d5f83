package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/RMahshie/scmplot/internal/monitor"
	"github.com/RMahshie/scmplot/internal/render"
	"github.com/RMahshie/scmplot/internal/serialport"
	"github.com/RMahshie/scmplot/internal/storage"
	"github.com/RMahshie/scmplot/internal/telemetry"
)

var replayPath string

func init() {
	monitorCmd := &cobra.Command{
		Use:   "monitor",
		Short: "Plot live telemetry from the serial port",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, args []string) error { return runMonitor(cmd.Context()) },
	}
	monitorCmd.Flags().StringVar(&replayPath, "replay", "", "Replay a captured raw log instead of reading the serial port")
	monitorCmd.Flags().String("chart", "", "Output path of the telemetry chart")
	monitorCmd.Flags().String("raw-log", "", "Raw log file")
	monitorCmd.Flags().String("setting-base", "", "Setting encoded as zero, coarse.mid.fine")
	monitorCmd.Flags().Duration("redraw-pause", 0, "Pause after each redraw")
	bindFlag("CHART_PATH", monitorCmd.Flags().Lookup("chart"))
	bindFlag("RAW_LOG_PATH", monitorCmd.Flags().Lookup("raw-log"))
	bindFlag("SETTING_BASE", monitorCmd.Flags().Lookup("setting-base"))
	bindFlag("REDRAW_PAUSE", monitorCmd.Flags().Lookup("redraw-pause"))
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	codec := telemetry.NewSettingCodec(cfg.Monitor.SettingBase)
	chartCfg := render.ChartConfig{
		Path:             cfg.Chart.Path,
		Width:            vg.Length(cfg.Chart.WidthInches) * vg.Inch,
		Height:           vg.Length(cfg.Chart.HeightInches) * vg.Inch,
		TemperatureTicks: cfg.Chart.TemperatureTicks,
	}
	renderer := render.NewChart(chartCfg, codec, storage.NewFileStore(""))

	monCfg := monitor.Config{
		Codec:       codec,
		RedrawPause: cfg.Monitor.RedrawPause,
	}

	var (
		src    io.ReadCloser
		rawLog storage.RawLog
	)
	if replayPath != "" {
		f, err := os.Open(replayPath)
		if err != nil {
			return err
		}
		src = f
		rawLog = storage.DiscardRawLog()
		monCfg.ReplayPrefix = cfg.Monitor.RawLogPrefix
		log.Info().Str("file", replayPath).Msg("Replaying raw log")
	} else {
		p, err := serialport.Open(serialport.Config{Name: cfg.Serial.Port, Baud: cfg.Serial.Baud})
		if err != nil {
			return err
		}
		src = p
		rawLog = storage.NewFileRawLog(cfg.Monitor.RawLogPath, cfg.Monitor.RawLogPrefix)
	}
	defer src.Close()

	// A blocked serial read only returns once the port is closed
	go func() {
		<-ctx.Done()
		src.Close()
	}()

	svc := monitor.NewMonitorService(monCfg, renderer, rawLog)
	err := svc.Run(ctx, src)

	stats := svc.Stats()
	log.Info().
		Int("lines", stats.Lines).
		Int("frames", stats.Frames).
		Int("malformed", stats.Malformed).
		Int("decode_errors", stats.DecodeErrors).
		Int("render_errors", stats.RenderErrors).
		Str("state", svc.State().String()).
		Msg("Monitor stopped")

	if ctx.Err() != nil {
		return nil
	}
	return err
}
