package core

import "sync/atomic"

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// Event captures a pipeline event for post-mortem analysis
type Event struct {
	Type   uint8  // Event type code
	Seq    uint32 // Position in the trace
	Value1 uint32 // Context-dependent value
	Value2 uint32 // Context-dependent value
}

// Event type codes
const (
	EvtOverflow    = 1 // Counter wrap serviced (v1=wraps since boot)
	EvtSample      = 2 // Sample published (v1=tick, v2=frequency)
	EvtDrop        = 3 // Sample refused by a full channel (v1=tick, v2=frequency)
	EvtRenderError = 4 // Renderer returned an error (v1=tick, v2=frequency)
	EvtPinLevel    = 5 // Counting pin level seen by the foreground (v1=level)
	EvtFatal       = 6 // Fatal fault entered
)

const (
	EventRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether DebugPrintln output is active
	debugEnabled bool

	// Event trace ring (non-blocking, safe from interrupt context)
	eventRing    [EventRingSize]Event
	eventSeq     atomic.Uint32 // Next sequence number
	eventEnabled bool          = true
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// SetEventsEnabled turns the event trace on or off. Call before interrupts
// are enabled.
func SetEventsEnabled(enabled bool) {
	eventEnabled = enabled
}

// DebugPrintln writes a debug message using the platform-specific writer.
// Never call from interrupt context.
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// RecordEvent captures an event in the ring buffer.
// Claiming the slot with an atomic add lets a nested interrupt record its
// own event without overwriting the one being written.
func RecordEvent(eventType uint8, value1, value2 uint32) {
	if !eventEnabled {
		return
	}
	seq := eventSeq.Add(1) - 1
	eventRing[seq%EventRingSize] = Event{
		Type:   eventType,
		Seq:    seq,
		Value1: value1,
		Value2: value2,
	}
}

// Events returns the recorded events from oldest to newest.
// Only call when the producers are quiet (after Fatal, or in tests).
func Events() []Event {
	next := eventSeq.Load()
	n := next
	if n > EventRingSize {
		n = EventRingSize
	}
	out := make([]Event, 0, n)
	for seq := next - n; seq != next; seq++ {
		evt := eventRing[seq%EventRingSize]
		if evt.Type == 0 || evt.Seq != seq {
			continue
		}
		out = append(out, evt)
	}
	return out
}

// DumpEvents outputs the event ring (call on shutdown/error)
func DumpEvents() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[EVENTS] === Event Ring Dump ===")
	for _, evt := range Events() {
		debugPrintln("[EVENTS] " + eventName(evt.Type) +
			" seq=" + utoa(evt.Seq) +
			" v1=" + utoa(evt.Value1) +
			" v2=" + utoa(evt.Value2))
	}
	debugPrintln("[EVENTS] === End Dump ===")
}

// ClearEvents clears the event ring
func ClearEvents() {
	for i := range eventRing {
		eventRing[i] = Event{}
	}
	eventSeq.Store(0)
}

func eventName(t uint8) string {
	switch t {
	case EvtOverflow:
		return "OVERFLOW"
	case EvtSample:
		return "SAMPLE"
	case EvtDrop:
		return "DROP!"
	case EvtRenderError:
		return "RENDER_ERR"
	case EvtPinLevel:
		return "PIN"
	case EvtFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}
