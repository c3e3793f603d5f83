package telemetry

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/RMahshie/scmplot/pkg/models"
)

// ErrMalformedFrame is returned for any line that is not a complete
// telemetry frame. Callers skip the line.
var ErrMalformedFrame = errors.New("malformed frame")

const frameSegments = 4

var (
	txPattern   = regexp.MustCompile(`^TX setting (\d+) (\d+) (\d+) \(avg_fo=(-?\d+)\)$`)
	rxPattern   = regexp.MustCompile(`^RX setting (\d+) (\d+) (\d+) \(avg_if=(-?\d+)\)$`)
	rc2mPattern = regexp.MustCompile(`^2M setting (\d+) (\d+) (\d+) \(avg_count_2M=(-?\d+)\)$`)
	tempPattern = regexp.MustCompile(`^temp=(-?\d+(?:\.\d+)?)$`)
)

// ParseFrame parses one line of the form
//
//	TX setting c m f (avg_fo=n)|RX setting c m f (avg_if=n)|2M setting c m f (avg_count_2M=n)|temp=t
//
// Either every segment matches and a Reading is returned, or the error wraps
// ErrMalformedFrame and the Reading is the zero value.
func ParseFrame(line string) (models.Reading, error) {
	segs := strings.Split(line, "|")
	if len(segs) != frameSegments {
		return models.Reading{}, fmt.Errorf("%w: got %d segments, want %d", ErrMalformedFrame, len(segs), frameSegments)
	}

	var r models.Reading
	var err error
	if r.TX, r.AvgFO, err = parseSettingSegment(txPattern, segs[0]); err != nil {
		return models.Reading{}, fmt.Errorf("%w: TX segment: %v", ErrMalformedFrame, err)
	}
	if r.RX, r.AvgIF, err = parseSettingSegment(rxPattern, segs[1]); err != nil {
		return models.Reading{}, fmt.Errorf("%w: RX segment: %v", ErrMalformedFrame, err)
	}
	if r.RC2M, r.AvgCount2M, err = parseSettingSegment(rc2mPattern, segs[2]); err != nil {
		return models.Reading{}, fmt.Errorf("%w: 2M segment: %v", ErrMalformedFrame, err)
	}

	m := tempPattern.FindStringSubmatch(strings.TrimSpace(segs[3]))
	if m == nil {
		return models.Reading{}, fmt.Errorf("%w: temperature segment %q", ErrMalformedFrame, segs[3])
	}
	if r.Temperature, err = strconv.ParseFloat(m[1], 64); err != nil {
		return models.Reading{}, fmt.Errorf("%w: temperature: %v", ErrMalformedFrame, err)
	}
	return r, nil
}

// parseSettingSegment matches "<name> setting c m f (<avg>=n)" and returns the
// setting and the trailing average.
func parseSettingSegment(re *regexp.Regexp, seg string) (models.Setting, int, error) {
	m := re.FindStringSubmatch(strings.TrimSpace(seg))
	if m == nil {
		return models.Setting{}, 0, fmt.Errorf("no match for %q", seg)
	}
	var n [4]int
	for i := range n {
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			return models.Setting{}, 0, err
		}
		n[i] = v
	}
	return models.Setting{Coarse: n[0], Mid: n[1], Fine: n[2]}, n[3], nil
}
