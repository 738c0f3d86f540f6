// Package serial opens the link to the counter firmware
package serial

import (
	"errors"
	"io"
	"time"
)

var ErrNoDevice = errors.New("serial: no device given")

// Port is an open serial link. Tests substitute an in-memory pipe.
type Port interface {
	io.ReadWriteCloser

	// Flush discards bytes received but not yet read
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	Device      string        // e.g. /dev/ttyACM0 or COM3
	Baud        int           // Ignored by USB CDC, honoured by UART bridges
	ReadTimeout time.Duration // 0 blocks until data arrives
}

// DefaultConfig returns 115200 baud with a 100ms read timeout
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100 * time.Millisecond,
	}
}
