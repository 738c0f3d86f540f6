package core

var fatalReason string

// Fatal is the terminal fault path. It stops interrupt activity, reports
// the reason and the event trace through the debug writer, and halts.
// Core operation is never resumed after a fault.
func Fatal(reason string) {
	disableInterrupts()

	fatalReason = reason
	RecordEvent(EvtFatal, 0, 0)
	if debugPrintln != nil {
		debugPrintln("[FATAL] " + reason)
	}
	DumpEvents()
	halt(reason)
}

// FatalReason returns the reason passed to Fatal, if any
func FatalReason() string {
	return fatalReason
}
