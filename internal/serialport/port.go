package serialport

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tarm/serial"
)

// ErrPortUnavailable is returned when the serial port cannot be opened.
var ErrPortUnavailable = errors.New("serial port unavailable")

// DefaultBaud is the UART speed of the calibration firmware.
const DefaultBaud = 19200

// Config selects the port. Ports are always 8N1 without flow control.
type Config struct {
	Name string
	Baud int
}

// Open opens the named port. Reads block until data arrives.
func Open(cfg Config) (*serial.Port, error) {
	if cfg.Baud == 0 {
		cfg.Baud = DefaultBaud
	}
	p, err := serial.OpenPort(&serial.Config{Name: cfg.Name, Baud: cfg.Baud})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPortUnavailable, cfg.Name, err)
	}
	log.Info().Str("port", cfg.Name).Int("baud", cfg.Baud).Msg("Serial port opened")
	return p, nil
}
