package monitor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/RMahshie/scmplot/internal/render"
	"github.com/RMahshie/scmplot/internal/storage"
	"github.com/RMahshie/scmplot/internal/telemetry"
	"github.com/RMahshie/scmplot/pkg/models"
)

// ErrDecode marks a line that is not valid UTF-8.
var ErrDecode = errors.New("line is not valid UTF-8")

// DefaultRedrawPause is the pause after each redraw.
const DefaultRedrawPause = 10 * time.Millisecond

// State is the lifecycle of a monitor run.
type State int

const (
	AwaitingFirstFrame State = iota
	SessionActive
)

func (s State) String() string {
	switch s {
	case AwaitingFirstFrame:
		return "awaiting_first_frame"
	case SessionActive:
		return "session_active"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Stats counts what happened to the lines read so far.
type Stats struct {
	Lines        int
	Frames       int
	Malformed    int
	DecodeErrors int
	RenderErrors int
	LogErrors    int
}

// MonitorService turns a line-oriented telemetry source into a live chart
type MonitorService interface {
	Run(ctx context.Context, src io.Reader) error
	State() State
	Stats() Stats
	// Session is nil until the first frame has parsed.
	Session() *telemetry.Session
}

// Config tunes a monitor run.
type Config struct {
	Codec       telemetry.SettingCodec
	RedrawPause time.Duration
	// Echo receives a "Received: %q" line per input line. Defaults to stdout.
	Echo io.Writer
	// ReplayPrefix is stripped from input lines when replaying a raw log.
	ReplayPrefix string
	Clock        func() time.Time
}

type monitorService struct {
	cfg      Config
	renderer render.Renderer
	rawLog   storage.RawLog

	state   State
	session *telemetry.Session
	stats   Stats
}

// NewMonitorService creates a monitor that renders through renderer and logs
// raw lines to rawLog. A nil rawLog discards.
func NewMonitorService(cfg Config, renderer render.Renderer, rawLog storage.RawLog) MonitorService {
	if cfg.Echo == nil {
		cfg.Echo = os.Stdout
	}
	if rawLog == nil {
		rawLog = storage.DiscardRawLog()
	}
	return &monitorService{
		cfg:      cfg,
		renderer: renderer,
		rawLog:   rawLog,
	}
}

func (m *monitorService) State() State                { return m.state }
func (m *monitorService) Stats() Stats                { return m.stats }
func (m *monitorService) Session() *telemetry.Session { return m.session }

// Run reads src line by line until EOF or ctx is cancelled.
func (m *monitorService) Run(ctx context.Context, src io.Reader) error {
	br := bufio.NewReader(src)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, err := br.ReadBytes('\n')
		if len(raw) > 0 {
			m.handleLine(ctx, raw)
		}
		if errors.Is(err, io.EOF) {
			log.Info().
				Int("lines", m.stats.Lines).
				Int("frames", m.stats.Frames).
				Int("malformed", m.stats.Malformed).
				Msg("Input closed")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read telemetry: %w", err)
		}
	}
}

func (m *monitorService) handleLine(ctx context.Context, raw []byte) {
	m.stats.Lines++
	fmt.Fprintf(m.cfg.Echo, "Received: %q\n", raw)

	line, err := decode(raw)
	if err != nil {
		m.stats.DecodeErrors++
		return
	}
	if m.cfg.ReplayPrefix != "" {
		line = strings.TrimPrefix(line, m.cfg.ReplayPrefix)
	}

	reading, err := telemetry.ParseFrame(line)
	if err != nil {
		m.stats.Malformed++
		log.Debug().Err(err).Str("line", strings.TrimRight(line, "\r\n")).Msg("Skipping line")
	} else {
		m.accept(ctx, reading)
	}

	if err := m.rawLog.Append(line); err != nil {
		m.stats.LogErrors++
		log.Error().Err(err).Msg("Failed to append raw log")
	}
}

func (m *monitorService) accept(ctx context.Context, r models.Reading) {
	if m.session == nil {
		var opts []telemetry.SessionOption
		if m.cfg.Clock != nil {
			opts = append(opts, telemetry.WithClock(m.cfg.Clock))
		}
		m.session = telemetry.NewSession(m.cfg.Codec, opts...)
		m.state = SessionActive
		log.Info().Str("session_id", m.session.ID().String()).Msg("Session started")
	}

	m.session.Append(r)
	m.stats.Frames++

	if m.renderer != nil {
		if err := m.renderer.Render(m.session.Snapshot()); err != nil {
			m.stats.RenderErrors++
			log.Error().Err(err).Int("points", m.session.Len()).Msg("Failed to render chart")
		}
	}

	pause(ctx, m.cfg.RedrawPause)
}

func decode(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", ErrDecode
	}
	return string(raw), nil
}

func pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
