package core

// DisplayMode selects how the renderer presents a frequency
type DisplayMode uint8

const (
	ModeText    DisplayMode = iota // Text line over the serial link
	ModeGraphic                    // Attached display
	ModeFrame                      // CRC framed binary message for the host monitor
)

// String returns the mode name
func (m DisplayMode) String() string {
	switch m {
	case ModeText:
		return "text"
	case ModeGraphic:
		return "graphic"
	case ModeFrame:
		return "frame"
	default:
		return "unknown"
	}
}

// Renderer presents a frequency in pulses per second. The consumer never
// calls it concurrently with itself.
type Renderer interface {
	Render(frequency uint32, mode DisplayMode) error
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(frequency uint32, mode DisplayMode) error

func (f RendererFunc) Render(frequency uint32, mode DisplayMode) error {
	return f(frequency, mode)
}

// Consumer is the foreground side of the pipeline: it drains the channel
// and forwards samples to the renderer, idling between interrupts.
type Consumer struct {
	ch    Channel
	r     Renderer
	mode  DisplayMode
	every uint32
	idle  func()

	drained   uint32
	forwarded uint32
	last      Sample
}

// NewConsumer returns a consumer forwarding every sample in mode.
// The idle function defaults to waiting for the next interrupt.
func NewConsumer(ch Channel, r Renderer, mode DisplayMode) *Consumer {
	return &Consumer{
		ch:    ch,
		r:     r,
		mode:  mode,
		every: 1,
		idle:  waitForInterrupt,
	}
}

// Every forwards only every nth drained sample. n == 0 is treated as 1.
func (c *Consumer) Every(n uint32) *Consumer {
	if n == 0 {
		n = 1
	}
	c.every = n
	return c
}

// SetIdle replaces the function called when the channel is empty
func (c *Consumer) SetIdle(idle func()) {
	c.idle = idle
}

// Drain polls the channel until empty and returns the number of samples
// forwarded to the renderer.
func (c *Consumer) Drain() int {
	n := 0
	for {
		s, ok := c.ch.Poll()
		if !ok {
			return n
		}
		c.drained++
		c.last = s
		if c.drained%c.every != 0 {
			continue
		}
		if err := c.r.Render(s.Frequency, c.mode); err != nil {
			RecordEvent(EvtRenderError, s.Tick, s.Frequency)
			DebugPrintln("[consumer] render failed: " + err.Error())
			continue
		}
		c.forwarded++
		n++
	}
}

// Run drains the channel forever, idling whenever it is empty. A sample
// published between the last poll and the idle call is picked up on the
// next wake, at the latest one tick later.
func (c *Consumer) Run() {
	for {
		c.Drain()
		c.idle()
	}
}

// Last returns the most recent sample taken from the channel
func (c *Consumer) Last() Sample {
	return c.last
}

// Forwarded returns the number of successful renders
func (c *Consumer) Forwarded() uint32 {
	return c.forwarded
}
