package core

// simCounter is a test CounterDriver that models a free-running edge counter
// with a single wrap flag. When isr is set, a wrap invokes it immediately,
// like a wrap interrupt with higher priority than the sample tick.
type simCounter struct {
	cfg        CounterConfig
	configured bool
	started    bool

	count   uint32
	pending bool
	clears  int
	writes  []uint32

	isr         func()
	beforeCount func() // Fired once at the start of the next Count
	afterCount  func() // Fired once after the next Count has latched its value
}

func newSimCounter() *simCounter {
	return &simCounter{cfg: DefaultCounterConfig()}
}

func (c *simCounter) Configure(cfg CounterConfig) error {
	c.cfg = cfg
	c.configured = true
	return nil
}

func (c *simCounter) Start() {
	c.started = true
}

func (c *simCounter) Count() uint32 {
	if hook := c.beforeCount; hook != nil {
		c.beforeCount = nil
		hook()
	}
	v := c.count
	if hook := c.afterCount; hook != nil {
		c.afterCount = nil
		hook()
	}
	return v
}

func (c *simCounter) SetCount(v uint32) {
	c.writes = append(c.writes, v)
	c.count = v
}

func (c *simCounter) OverflowPending() bool {
	return c.pending
}

func (c *simCounter) ClearOverflow() {
	c.pending = false
	c.clears++
}

func (c *simCounter) Modulus() uint32 {
	return c.cfg.Modulus()
}

// Edges delivers n rising edges
func (c *simCounter) Edges(n int) {
	for i := 0; i < n; i++ {
		if c.count == c.cfg.Top {
			c.count = 0
			c.pending = true
			if c.isr != nil {
				c.isr()
			}
			continue
		}
		c.count++
	}
}
