package render

import (
	"testing"

	"github.com/RMahshie/scmplot/internal/telemetry"
	"github.com/RMahshie/scmplot/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestSettingTicks(t *testing.T) {
	codec := telemetry.NewSettingCodec(telemetry.DefaultBase)

	tests := []struct {
		name   string
		series []int
		want   []SettingTick
	}{
		{
			name:   "empty series uses default range",
			series: nil,
			want: []SettingTick{
				{0, "22.0.0"}, {7, "22.0.7"}, {14, "22.0.14"},
				{21, "22.0.21"}, {28, "22.0.28"}, {35, "22.1.3"},
			},
		},
		{
			name:   "constant series",
			series: []int{1194, 1194},
			want: []SettingTick{
				{1194, "23.5.10"}, {1194, "23.5.10"}, {1194, "23.5.10"},
				{1194, "23.5.10"}, {1194, "23.5.10"}, {1194, "23.5.10"},
			},
		},
		{
			name:   "spread series rounds the step up",
			series: []int{1194, 32, 2079},
			want: []SettingTick{
				{32, "22.1.0"}, {442, "22.13.26"}, {852, "22.26.20"},
				{1262, "23.7.14"}, {1672, "23.20.8"}, {2082, "24.1.2"},
			},
		},
		{
			name:   "below base",
			series: []int{5, -1},
			want: []SettingTick{
				{-1, "21.31.31"}, {1, "22.0.1"}, {3, "22.0.3"},
				{5, "22.0.5"}, {7, "22.0.7"}, {9, "22.0.9"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SettingTicks(codec, tt.series))
		})
	}
}

func TestSettingTicks_SpanCoversSeries(t *testing.T) {
	codec := telemetry.NewSettingCodec(models.Setting{Coarse: 20})
	series := []int{3, 17, 100, 4096, 250}

	ticks := SettingTicks(codec, series)
	assert.Len(t, ticks, 6)
	assert.Equal(t, 3, ticks[0].Value)
	assert.GreaterOrEqual(t, ticks[5].Value, 4096)
	for i := 1; i < len(ticks); i++ {
		assert.Equal(t, ticks[1].Value-ticks[0].Value, ticks[i].Value-ticks[i-1].Value)
	}
}

func TestPlotTicks(t *testing.T) {
	marker := plotTicks([]SettingTick{{0, "22.0.0"}, {32, "22.1.0"}})
	assert.Len(t, marker, 2)
	assert.Equal(t, 32.0, marker[1].Value)
	assert.Equal(t, "22.1.0", marker[1].Label)
}
