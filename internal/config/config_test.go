package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/RMahshie/scmplot/pkg/models"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory with a fresh viper instance
func isolate(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "COM9", cfg.Serial.Port)
	assert.Equal(t, 19200, cfg.Serial.Baud)
	assert.Equal(t, "output.txt", cfg.Monitor.RawLogPath)
	assert.Equal(t, "Received: ", cfg.Monitor.RawLogPrefix)
	assert.Equal(t, models.Setting{Coarse: 22}, cfg.Monitor.SettingBase)
	assert.Equal(t, 10*time.Millisecond, cfg.Monitor.RedrawPause)
	assert.Equal(t, []float64{25, 30, 35, 40, 45}, cfg.Chart.TemperatureTicks)
	assert.Equal(t, 13.0, cfg.Chart.WidthInches)
	assert.Equal(t, 7.0, cfg.Chart.HeightInches)
	assert.Equal(t, "*bytes 22.23.22 receiver.txt", cfg.Extract.Glob)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.Server.AllowedOrigins)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("SERIAL_PORT", "/dev/ttyUSB0")
	t.Setenv("BAUD_RATE", "115200")
	t.Setenv("SETTING_BASE", "21.0.0")
	t.Setenv("TEMPERATURE_TICKS", "20, 40, 60")
	t.Setenv("REDRAW_PAUSE", "250ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyUSB0", cfg.Serial.Port)
	assert.Equal(t, 115200, cfg.Serial.Baud)
	assert.Equal(t, models.Setting{Coarse: 21}, cfg.Monitor.SettingBase)
	assert.Equal(t, []float64{20, 40, 60}, cfg.Chart.TemperatureTicks)
	assert.Equal(t, 250*time.Millisecond, cfg.Monitor.RedrawPause)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.dev"), []byte("SERIAL_PORT=COM3\nPORT=9090\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "COM3", cfg.Serial.Port)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"setting base", "SETTING_BASE", "22.0"},
		{"ticks not numeric", "TEMPERATURE_TICKS", "25,warm"},
		{"single tick", "TEMPERATURE_TICKS", "25"},
		{"ticks decreasing", "TEMPERATURE_TICKS", "45,25"},
		{"baud", "BAUD_RATE", "0"},
		{"chart width", "CHART_WIDTH_INCHES", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.val)

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestGetStringOrDefault(t *testing.T) {
	isolate(t)
	assert.Equal(t, "fallback", GetStringOrDefault("SCMPLOT_UNSET_KEY", "fallback"))

	viper.Set("SCMPLOT_SET_KEY", " value ")
	assert.Equal(t, "value", GetStringOrDefault("SCMPLOT_SET_KEY", "fallback"))

	viper.Set("SCMPLOT_BLANK_KEY", "   ")
	assert.Equal(t, "fallback", GetStringOrDefault("SCMPLOT_BLANK_KEY", "fallback"))
}

func TestLoad_BlankValuesFallBack(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.dev"), []byte("LOG_LEVEL=\nCHART_PATH=\n"), 0644))
	t.Setenv("SERIAL_PORT", "   ")
	t.Setenv("PORT", " ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "telemetry.png", cfg.Chart.Path)
	assert.Equal(t, "COM9", cfg.Serial.Port)
	assert.Equal(t, "8080", cfg.Server.Port)
}
