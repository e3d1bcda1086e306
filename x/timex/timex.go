package timex

import "time"

// HalfPeriodUs returns the half bus period in microseconds for a clock
// frequency in kHz: 500 / khz. It is zero when khz is zero or above 500 kHz;
// callers must reject a zero result.
func HalfPeriodUs(khz uint32) uint32 {
	if khz == 0 {
		return 0
	}
	return 500 / khz
}

// BusyWaitUs spins until us microseconds have elapsed on the monotonic clock.
// It never yields to the scheduler.
func BusyWaitUs(us uint32) {
	if us == 0 {
		return
	}
	d := time.Duration(us) * time.Microsecond
	start := time.Now()
	for time.Since(start) < d {
	}
}

// Us converts a duration to whole microseconds, saturating at the uint32 range.
func Us(d time.Duration) uint32 {
	if d <= 0 {
		return 0
	}
	n := d / time.Microsecond
	if n > 0xFFFFFFFF {
		return 0xFFFFFFFF
	}
	return uint32(n)
}
