package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"freqcounter/host/config"
	"freqcounter/host/monitor"
	"freqcounter/host/serial"
	"freqcounter/protocol"
)

var (
	configPath = flag.String("config", "", "JSON configuration file")
	device     = flag.String("device", "", "Serial device path (overrides config)")
	baud       = flag.Int("baud", 0, "Baud rate, ignored for USB CDC (overrides config)")
	format     = flag.String("format", "", "Wire format: text or frame (overrides config)")
	ppr        = flag.Uint("ppr", 0, "Pulses per revolution (overrides config)")
	rpm        = flag.Bool("rpm", false, "Print rpm next to Hz")
	verbose    = flag.Bool("verbose", false, "Print link statistics on exit")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	f, err := cfg.MonitorFormat()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("freqmon %s - %s format on %s\n", protocol.Version, cfg.Format, cfg.Device)

	port, err := serial.Open(cfg.Serial())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	// Stale readings queued before we attached
	if err := port.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: flush failed: %v\n", err)
	}

	mon, err := monitor.New(monitor.Options{
		Format:       f,
		PulsesPerRev: cfg.PulsesPerRev,
		Follow:       true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	readings := make(chan monitor.Reading, 16)
	done := make(chan error, 1)
	go func() {
		done <- mon.Run(ctx, port, readings)
		close(readings)
	}()

	for r := range readings {
		printReading(r, cfg.ShowRPM)
	}

	if err := <-done; err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	if *verbose {
		s := mon.Stats()
		fmt.Printf("\nreadings=%d missed=%d bad_lines=%d blocks=%d rejected=%d discarded=%d\n",
			s.Readings, s.Missed, s.BadLines, s.Decoder.Blocks, s.Decoder.Rejected, s.Decoder.Discarded)
	}
}

// loadConfig merges the optional file with the command line
func loadConfig() (*config.MonitorConfig, error) {
	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadFile(*configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", *configPath, err)
		}
	}

	if *device != "" {
		cfg.Device = *device
	}
	if *baud != 0 {
		cfg.Baud = *baud
	}
	if *format != "" {
		cfg.Format = *format
	}
	if *ppr != 0 {
		cfg.PulsesPerRev = uint32(*ppr)
	}
	if *rpm {
		cfg.ShowRPM = true
	}
	return cfg, nil
}

func printReading(r monitor.Reading, showRPM bool) {
	ts := r.At.Format("15:04:05.000")
	if r.Missed > 0 {
		fmt.Printf("%s  (%d missed)\n", ts, r.Missed)
	}
	if showRPM {
		fmt.Printf("%s  %10d Hz  %12.1f rpm\n", ts, r.Hz, r.RPM)
		return
	}
	fmt.Printf("%s  %10d Hz\n", ts, r.Hz)
}
