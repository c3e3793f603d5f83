package render

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/RMahshie/scmplot/internal/storage"
	"github.com/RMahshie/scmplot/internal/telemetry"
	"github.com/RMahshie/scmplot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func sampleSnapshot() models.Snapshot {
	return models.Snapshot{
		SessionID:   "test",
		Elapsed:     []float64{0.1, 1.1, 2.3},
		TX:          []int{1194, 1195, 1190},
		RX:          []int{32, 32, 32},
		RC2M:        []int{2079, 2080, 2079},
		AvgFO:       []int{-3, 2, 0},
		AvgIF:       []int{512, 498, 505},
		AvgCount2M:  []int{60010, 59990, 60002},
		Temperature: []float64{27, 27.5, 28},
	}
}

func smallChart(path string) ChartConfig {
	cfg := DefaultChartConfig()
	cfg.Path = path
	cfg.Width = 6 * vg.Inch
	cfg.Height = 4 * vg.Inch
	return cfg
}

func TestDrawTelemetry(t *testing.T) {
	var buf bytes.Buffer
	codec := telemetry.NewSettingCodec(telemetry.DefaultBase)

	require.NoError(t, DrawTelemetry(&buf, sampleSnapshot(), codec, smallChart("")))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
}

func TestDrawTelemetry_SingleReading(t *testing.T) {
	snap := models.Snapshot{
		Elapsed:     []float64{0},
		TX:          []int{1194},
		RX:          []int{32},
		RC2M:        []int{2079},
		AvgFO:       []int{-3},
		AvgIF:       []int{512},
		AvgCount2M:  []int{60010},
		Temperature: []float64{27},
	}
	var buf bytes.Buffer
	require.NoError(t, DrawTelemetry(&buf, snap, telemetry.NewSettingCodec(telemetry.DefaultBase), smallChart("")))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
}

func TestChartRender_WritesThroughStore(t *testing.T) {
	dir := t.TempDir()
	r := NewChart(smallChart("telemetry.png"), telemetry.NewSettingCodec(telemetry.DefaultBase), storage.NewFileStore(dir))

	require.NoError(t, r.Render(sampleSnapshot()))

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.png"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngSignature))
}

type failingStore struct{ err error }

func (s failingStore) Write(string, func(io.Writer) error) error { return s.err }
func (s failingStore) Open(string) (*os.File, error)             { return nil, s.err }

func TestChartRender_StoreError(t *testing.T) {
	boom := errors.New("disk full")
	r := NewChart(smallChart("telemetry.png"), telemetry.NewSettingCodec(telemetry.DefaultBase), failingStore{boom})
	assert.ErrorIs(t, r.Render(sampleSnapshot()), boom)
}

func TestNewSecondaryLine_Range(t *testing.T) {
	l := newSecondaryLine([]float64{0, 1}, []float64{20, 50}, []float64{25, 30, 35, 40, 45})
	assert.Equal(t, 20.0, l.min)
	assert.Equal(t, 50.0, l.max)

	l = newSecondaryLine(nil, nil, nil)
	assert.Equal(t, 0.0, l.min)
	assert.Equal(t, 1.0, l.max)

	l = newSecondaryLine([]float64{0}, []float64{30}, nil)
	assert.Equal(t, 29.0, l.min)
	assert.Equal(t, 31.0, l.max)
}

func TestSettingPlot_UsesDerivedTicks(t *testing.T) {
	codec := telemetry.NewSettingCodec(telemetry.DefaultBase)
	snap := sampleSnapshot()

	for name, series := range map[string][]int{"tx": snap.TX, "rx": snap.RX, "rc2m": snap.RC2M} {
		t.Run(name, func(t *testing.T) {
			p, err := settingPlot(snap, series, codec, smallChart(""), name)
			require.NoError(t, err)

			want := SettingTicks(codec, series)
			got := p.Y.Tick.Marker.Ticks(p.Y.Min, p.Y.Max)
			require.Len(t, got, len(want))
			for i, tick := range got {
				assert.Equal(t, float64(want[i].Value), tick.Value)
				assert.Equal(t, codec.Label(int(tick.Value)), tick.Label)
			}
			assert.LessOrEqual(t, p.Y.Min, float64(want[0].Value))
			assert.GreaterOrEqual(t, p.Y.Max, float64(want[len(want)-1].Value))
		})
	}
}

func TestSetSettingAxis_ConstantSeriesWidened(t *testing.T) {
	p := plot.New()
	setSettingAxis(&p.Y, telemetry.NewSettingCodec(telemetry.DefaultBase), []int{32, 32})

	assert.Equal(t, 31.0, p.Y.Min)
	assert.Equal(t, 33.0, p.Y.Max)
	for _, tick := range p.Y.Tick.Marker.Ticks(p.Y.Min, p.Y.Max) {
		assert.Equal(t, "22.1.0", tick.Label)
	}
}
