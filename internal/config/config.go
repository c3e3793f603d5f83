package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/RMahshie/scmplot/pkg/models"
)

// Config holds all configuration for the application
type Config struct {
	Env      string
	LogLevel string
	Serial   SerialConfig
	Monitor  MonitorConfig
	Chart    ChartConfig
	Extract  ExtractConfig
	Server   ServerConfig
}

// SerialConfig holds serial port configuration
type SerialConfig struct {
	Port string
	Baud int
}

// MonitorConfig holds the live monitor configuration
type MonitorConfig struct {
	RawLogPath   string
	RawLogPrefix string
	SettingBase  models.Setting
	RedrawPause  time.Duration
}

// ChartConfig holds chart output configuration
type ChartConfig struct {
	Path             string
	WidthInches      float64
	HeightInches     float64
	TemperatureTicks []float64
	PDRPath          string
}

// ExtractConfig holds receiver log extraction configuration
type ExtractConfig struct {
	Glob string
}

// ServerConfig holds viewer server configuration
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

var keys = []string{
	"ENVIRONMENT",
	"LOG_LEVEL",
	"SERIAL_PORT",
	"BAUD_RATE",
	"RAW_LOG_PATH",
	"RAW_LOG_PREFIX",
	"SETTING_BASE",
	"TEMPERATURE_TICKS",
	"CHART_PATH",
	"CHART_WIDTH_INCHES",
	"CHART_HEIGHT_INCHES",
	"REDRAW_PAUSE",
	"EXTRACT_GLOB",
	"PDR_CHART_PATH",
	"PORT",
	"ALLOWED_ORIGINS",
}

// Load loads configuration from defaults, .env files, environment variables
// and any flags bound with viper.BindPFlag.
func Load() (*Config, error) {
	viper.SetDefault("ENVIRONMENT", "dev")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SERIAL_PORT", "COM9")
	viper.SetDefault("BAUD_RATE", 19200)
	viper.SetDefault("RAW_LOG_PATH", "output.txt")
	viper.SetDefault("RAW_LOG_PREFIX", "Received: ")
	viper.SetDefault("SETTING_BASE", "22.0.0")
	viper.SetDefault("TEMPERATURE_TICKS", "25,30,35,40,45")
	viper.SetDefault("CHART_PATH", "telemetry.png")
	viper.SetDefault("CHART_WIDTH_INCHES", 13.0)
	viper.SetDefault("CHART_HEIGHT_INCHES", 7.0)
	viper.SetDefault("REDRAW_PAUSE", "10ms")
	viper.SetDefault("EXTRACT_GLOB", "*bytes 22.23.22 receiver.txt")
	viper.SetDefault("PDR_CHART_PATH", "pdr.png")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")

	env := viper.GetString("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	viper.SetConfigName(".env." + env)
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// The file is optional
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	for _, k := range keys {
		viper.BindEnv(k)
	}

	var config Config
	config.Env = GetStringOrDefault("ENVIRONMENT", "dev")
	config.LogLevel = GetStringOrDefault("LOG_LEVEL", "info")
	config.Serial.Port = GetStringOrDefault("SERIAL_PORT", "COM9")
	config.Serial.Baud = viper.GetInt("BAUD_RATE")
	config.Monitor.RawLogPath = viper.GetString("RAW_LOG_PATH")
	config.Monitor.RawLogPrefix = viper.GetString("RAW_LOG_PREFIX")
	config.Monitor.RedrawPause = viper.GetDuration("REDRAW_PAUSE")
	config.Chart.Path = GetStringOrDefault("CHART_PATH", "telemetry.png")
	config.Chart.WidthInches = viper.GetFloat64("CHART_WIDTH_INCHES")
	config.Chart.HeightInches = viper.GetFloat64("CHART_HEIGHT_INCHES")
	config.Chart.PDRPath = GetStringOrDefault("PDR_CHART_PATH", "pdr.png")
	config.Extract.Glob = viper.GetString("EXTRACT_GLOB")
	config.Server.Port = GetStringOrDefault("PORT", "8080")
	config.Server.AllowedOrigins = splitList(viper.GetString("ALLOWED_ORIGINS"))

	base, err := models.ParseSetting(viper.GetString("SETTING_BASE"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SETTING_BASE: %w", err)
	}
	config.Monitor.SettingBase = base

	ticks, err := parseFloats(viper.GetString("TEMPERATURE_TICKS"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse TEMPERATURE_TICKS: %w", err)
	}
	config.Chart.TemperatureTicks = ticks

	if config.Serial.Baud <= 0 {
		return nil, fmt.Errorf("invalid BAUD_RATE %d", config.Serial.Baud)
	}
	if config.Chart.WidthInches <= 0 || config.Chart.HeightInches <= 0 {
		return nil, fmt.Errorf("invalid chart size %gx%g", config.Chart.WidthInches, config.Chart.HeightInches)
	}

	log.Debug().
		Str("env", config.Env).
		Str("serial_port", config.Serial.Port).
		Int("baud", config.Serial.Baud).
		Str("setting_base", base.String()).
		Msg("Configuration loaded")

	return &config, nil
}

// GetStringOrDefault returns the trimmed value of key, or def when the key is
// unset or blank, e.g. LOG_LEVEL= in a .env file
func GetStringOrDefault(key, def string) string {
	if v := strings.TrimSpace(viper.GetString(key)); v != "" {
		return v
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseFloats(v string) ([]float64, error) {
	parts := splitList(v)
	if len(parts) < 2 {
		return nil, fmt.Errorf("need at least two values, got %q", v)
	}
	out := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		if i > 0 && f <= out[i-1] {
			return nil, fmt.Errorf("values must increase: %q", v)
		}
		out[i] = f
	}
	return out, nil
}
