package render

import (
	"gonum.org/v1/plot"

	"github.com/RMahshie/scmplot/internal/telemetry"
)

// Default tick range of an empty setting axis.
const (
	emptyAxisMin = 0
	emptyAxisMax = 32

	settingTickSteps = 5
)

// SettingTick is one Y tick of a setting axis.
type SettingTick struct {
	Value int
	Label string
}

// SettingTicks derives six ticks spanning the series in five equal integer
// steps, each labelled with its decoded coarse.mid.fine setting.
func SettingTicks(codec telemetry.SettingCodec, series []int) []SettingTick {
	lo, hi := emptyAxisMin, emptyAxisMax
	if len(series) > 0 {
		lo, hi = series[0], series[0]
		for _, v := range series[1:] {
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	step := ceilDiv(hi-lo, settingTickSteps)

	ticks := make([]SettingTick, 0, settingTickSteps+1)
	for i := 0; i <= settingTickSteps; i++ {
		v := lo + i*step
		ticks = append(ticks, SettingTick{Value: v, Label: codec.Label(v)})
	}
	return ticks
}

// ceilDiv rounds a non-negative quotient up.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func plotTicks(ticks []SettingTick) plot.ConstantTicks {
	out := make(plot.ConstantTicks, len(ticks))
	for i, t := range ticks {
		out[i] = plot.Tick{Value: float64(t.Value), Label: t.Label}
	}
	return out
}
