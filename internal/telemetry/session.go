package telemetry

import (
	"time"

	"github.com/RMahshie/scmplot/pkg/models"
	"github.com/google/uuid"
)

// Session accumulates readings for the lifetime of one device connection.
//
// All series are parallel: after every Append they have the same length.
// The session is append-only and unbounded, and is owned by a single
// goroutine.
type Session struct {
	id    uuid.UUID
	codec SettingCodec
	now   func() time.Time
	start time.Time

	elapsed []float64

	tx, rx, rc2m          []int
	rawTX, rawRX, rawRC2M []models.Setting

	avgFO, avgIF, avgCount2M []int
	temperature              []float64
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClock replaces time.Now as the session clock.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// NewSession starts a session whose clock starts now.
func NewSession(codec SettingCodec, opts ...SessionOption) *Session {
	s := &Session{
		id:    uuid.New(),
		codec: codec,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.start = s.now()
	return s
}

// ID identifies the session in logs.
func (s *Session) ID() uuid.UUID { return s.id }

// Codec returns the codec used to encode settings.
func (s *Session) Codec() SettingCodec { return s.codec }

// Len returns the number of readings appended so far.
func (s *Session) Len() int { return len(s.elapsed) }

// Append records one reading and its elapsed time.
func (s *Session) Append(r models.Reading) {
	e := s.now().Sub(s.start).Seconds()
	if n := len(s.elapsed); n > 0 && e < s.elapsed[n-1] {
		e = s.elapsed[n-1]
	}
	if e < 0 {
		e = 0
	}

	s.rawTX = append(s.rawTX, r.TX)
	s.rawRX = append(s.rawRX, r.RX)
	s.rawRC2M = append(s.rawRC2M, r.RC2M)
	s.tx = append(s.tx, s.codec.Encode(r.TX))
	s.rx = append(s.rx, s.codec.Encode(r.RX))
	s.rc2m = append(s.rc2m, s.codec.Encode(r.RC2M))
	s.avgFO = append(s.avgFO, r.AvgFO)
	s.avgIF = append(s.avgIF, r.AvgIF)
	s.avgCount2M = append(s.avgCount2M, r.AvgCount2M)
	s.temperature = append(s.temperature, r.Temperature)
	s.elapsed = append(s.elapsed, e)
}

// Snapshot returns a copy of every series.
func (s *Session) Snapshot() models.Snapshot {
	return models.Snapshot{
		SessionID:   s.id.String(),
		Elapsed:     clone(s.elapsed),
		TX:          clone(s.tx),
		RX:          clone(s.rx),
		RC2M:        clone(s.rc2m),
		RawTX:       clone(s.rawTX),
		RawRX:       clone(s.rawRX),
		RawRC2M:     clone(s.rawRC2M),
		AvgFO:       clone(s.avgFO),
		AvgIF:       clone(s.avgIF),
		AvgCount2M:  clone(s.avgCount2M),
		Temperature: clone(s.temperature),
	}
}

func clone[T any](v []T) []T {
	out := make([]T, len(v))
	copy(out, v)
	return out
}
