// Package config loads the host monitor configuration
package config

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	"freqcounter/host/monitor"
	"freqcounter/host/serial"
)

var ErrUnknownFormat = errors.New("config: format must be \"text\" or \"frame\"")

// MonitorConfig is the JSON configuration of freqmon. Zero fields take
// defaults.
type MonitorConfig struct {
	Device       string `json:"device"`
	Baud         int    `json:"baud"`
	ReadTimeout  string `json:"read_timeout"` // time.ParseDuration syntax
	Format       string `json:"format"`       // "text" or "frame"
	PulsesPerRev uint32 `json:"pulses_per_rev"`
	ShowRPM      bool   `json:"show_rpm"`
}

// LoadConfig parses a JSON configuration
func LoadConfig(jsonData []byte) (*MonitorConfig, error) {
	var config MonitorConfig

	if err := json.Unmarshal(jsonData, &config); err != nil {
		return nil, err
	}

	applyDefaults(&config)
	if _, err := config.MonitorFormat(); err != nil {
		return nil, err
	}
	if _, err := time.ParseDuration(config.ReadTimeout); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadFile reads and parses a JSON configuration file
func LoadFile(path string) (*MonitorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadConfig(data)
}

// applyDefaults fills in missing values
func applyDefaults(config *MonitorConfig) {
	if config.Device == "" {
		config.Device = "/dev/ttyACM0"
	}
	if config.Baud == 0 {
		config.Baud = 115200
	}
	if config.ReadTimeout == "" {
		config.ReadTimeout = "100ms"
	}
	if config.Format == "" {
		config.Format = "text"
	}
	if config.PulsesPerRev == 0 {
		config.PulsesPerRev = 1
	}
}

// DefaultConfig returns the configuration used without a file
func DefaultConfig() *MonitorConfig {
	config := &MonitorConfig{}
	applyDefaults(config)
	return config
}

// MonitorFormat maps the format name to a monitor.Format
func (c *MonitorConfig) MonitorFormat() (monitor.Format, error) {
	switch c.Format {
	case "text":
		return monitor.FormatText, nil
	case "frame":
		return monitor.FormatFrame, nil
	default:
		return 0, ErrUnknownFormat
	}
}

// Serial returns the serial port settings. An unparsable timeout falls
// back to the serial default.
func (c *MonitorConfig) Serial() *serial.Config {
	sc := serial.DefaultConfig(c.Device)
	sc.Baud = c.Baud
	if d, err := time.ParseDuration(c.ReadTimeout); err == nil {
		sc.ReadTimeout = d
	}
	return sc
}
