package main

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/RMahshie/scmplot/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "scmplot",
	Short: "Live telemetry plots for the single-chip mote calibration firmware.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		cfg = c
		setLogLevel(cfg.LogLevel)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("log-level", "", "Log level (debug, info, warn, error)")
	pf.String("serial-port", "", "Serial port name, e.g. COM9 or /dev/ttyUSB0")
	pf.Int("baud", 0, "Serial baud rate")
	bindFlag("LOG_LEVEL", pf.Lookup("log-level"))
	bindFlag("SERIAL_PORT", pf.Lookup("serial-port"))
	bindFlag("BAUD_RATE", pf.Lookup("baud"))
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}

func setLogLevel(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		log.Warn().Str("level", level).Msg("Unknown log level, using info")
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// bindFlag ties a flag to a config key; unset flags fall through to the
// environment and defaults.
func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		log.Fatal().Err(err).Str("key", key).Msg("Failed to bind flag")
	}
}
