package core

import (
	"errors"
	"time"
)

// TimerFreq is the rate of the hardware timer that paces the sample tick.
// Clock bootstrap guarantees it; the core does not select clocks itself.
const TimerFreq = 1000000 // 1MHz

var ErrTickOutOfRange = errors.New("timer: tick period is outside the 32-bit alarm range")

// TimerFromDuration converts a tick period to alarm ticks
func TimerFromDuration(d time.Duration) (uint32, error) {
	if d <= 0 {
		return 0, ErrInvalidTickPeriod
	}
	ticks := uint64(d / (time.Second / TimerFreq))
	if ticks == 0 || ticks > 0xFFFFFFFF {
		return 0, ErrTickOutOfRange
	}
	return uint32(ticks), nil
}
