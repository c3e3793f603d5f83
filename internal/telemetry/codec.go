package telemetry

import (
	"github.com/RMahshie/scmplot/pkg/models"
)

// Digit weights of the composite setting encoding. Mid and fine are 5-bit
// fields, so the encoding is mixed-radix with weights 1024, 32 and 1.
const (
	fineRadix = 32
	midRadix  = 32

	midWeight    = fineRadix
	coarseWeight = midRadix * fineRadix
)

// DefaultBase is the setting that encodes to zero in the reference deployment.
var DefaultBase = models.Setting{Coarse: 22, Mid: 0, Fine: 0}

// SettingCodec maps settings to and from a single plottable integer relative
// to Base.
type SettingCodec struct {
	Base models.Setting
}

// NewSettingCodec creates a codec offset by base.
func NewSettingCodec(base models.Setting) SettingCodec {
	return SettingCodec{Base: base}
}

// Encode returns (coarse-bc)*1024 + (mid-bm)*32 + (fine-bf).
func (c SettingCodec) Encode(s models.Setting) int {
	return (s.Coarse-c.Base.Coarse)*coarseWeight +
		(s.Mid-c.Base.Mid)*midWeight +
		(s.Fine - c.Base.Fine)
}

// Decode is the inverse of Encode for every value Encode produces from mid
// and fine digits within [0,32) of the base. Floor division keeps settings
// below the base coarse exact.
func (c SettingCodec) Decode(v int) models.Setting {
	coarse, rem := floorDivMod(v, coarseWeight)
	mid, fine := floorDivMod(rem, midWeight)
	return models.Setting{
		Coarse: coarse + c.Base.Coarse,
		Mid:    mid + c.Base.Mid,
		Fine:   fine + c.Base.Fine,
	}
}

// Label decodes v and formats it as coarse.mid.fine.
func (c SettingCodec) Label(v int) string {
	return c.Decode(v).String()
}

func floorDivMod(v, d int) (q, r int) {
	q, r = v/d, v%d
	if r < 0 {
		q--
		r += d
	}
	return q, r
}
