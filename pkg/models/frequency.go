package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Setting is a coarse/mid/fine oscillator tuning triple as reported by the
// calibration firmware.
type Setting struct {
	Coarse int `json:"coarse" doc:"Coarse tuning code"`
	Mid    int `json:"mid" doc:"Mid tuning code"`
	Fine   int `json:"fine" doc:"Fine tuning code"`
}

// String renders the setting the way the firmware prints it, e.g. "22.5.10".
func (s Setting) String() string {
	return fmt.Sprintf("%d.%d.%d", s.Coarse, s.Mid, s.Fine)
}

// ParseSetting parses a dotted "coarse.mid.fine" triple.
func ParseSetting(v string) (Setting, error) {
	parts := strings.Split(strings.TrimSpace(v), ".")
	if len(parts) != 3 {
		return Setting{}, fmt.Errorf("invalid setting %q: want coarse.mid.fine", v)
	}
	var digits [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Setting{}, fmt.Errorf("invalid setting %q: %w", v, err)
		}
		digits[i] = n
	}
	return Setting{Coarse: digits[0], Mid: digits[1], Fine: digits[2]}, nil
}
