// Package swi2c is a two-wire bus master emulated on a pair of GPIO lines.
//
// Design notes:
//   - Open-drain emulation: a line is released to input to go high (the
//     pull-up floats it) and switched to output-low to go low. It is never
//     driven high while the bus is claimed.
//   - Every line change is followed by one half bus period, busy-waited
//     through the injected hal.Delay.
//   - Single master, no arbitration, no clock-stretching detection. A target
//     that holds SCL low is sampled too early; that is accepted.
//   - Not safe for concurrent use. A transaction cannot be interrupted
//     mid-byte; callers sharing the lines must serialise whole transactions.
package swi2c

import (
	"bringup-go/errcode"
	"bringup-go/hal"
	"bringup-go/x/timex"
)

// Lines describes the two GPIO lines used for the bus and the pin function
// they carry when the bus is not claimed.
type Lines struct {
	SCL, SDA   hal.Pin
	Peripheral hal.Function
}

// Config holds timing parameters.
type Config struct {
	// FrequencyKHz is the target bus clock. The half period is
	// 500/FrequencyKHz µs and must be non-zero (1..500 kHz).
	FrequencyKHz uint32
}

// Bus drives one emulated bus.
type Bus struct {
	gpio  hal.GPIO
	lines Lines
	half  uint32
	delay hal.Delay
}

// New binds a bus to its lines. It does not touch the pins; see Claim.
func New(g hal.GPIO, lines Lines, cfg Config, delay hal.Delay) (*Bus, error) {
	half := timex.HalfPeriodUs(cfg.FrequencyKHz)
	if half == 0 {
		return nil, errcode.Wrap(errcode.InvalidParams, "swi2c", "half period is zero")
	}
	if g == nil || delay == nil {
		return nil, errcode.Wrap(errcode.InvalidParams, "swi2c", "missing gpio or delay")
	}
	return &Bus{gpio: g, lines: lines, half: half, delay: delay}, nil
}

// HalfPeriod returns the half bus period in µs.
func (b *Bus) HalfPeriod() uint32 { return b.half }

// Lines returns the line descriptor.
func (b *Bus) Lines() Lines { return b.lines }

// ---------------- Claim / release ----------------

// Claim switches both lines from their peripheral function to GPIO inputs
// (released, idle high) and waits settleUs.
func (b *Bus) Claim(settleUs uint32) {
	for _, p := range [...]hal.Pin{b.lines.SCL, b.lines.SDA} {
		b.gpio.SetFunction(p, hal.FuncGPIO)
		b.gpio.SetDirection(p, hal.Input)
	}
	b.delay(settleUs)
}

// Release drives both lines high as outputs (idle level) and hands them
// back to the peripheral function.
func (b *Bus) Release() {
	for _, p := range [...]hal.Pin{b.lines.SCL, b.lines.SDA} {
		b.gpio.Write(p, true)
		b.gpio.SetDirection(p, hal.Output)
	}
	for _, p := range [...]hal.Pin{b.lines.SCL, b.lines.SDA} {
		b.gpio.SetFunction(p, b.lines.Peripheral)
	}
}

// ---------------- Line primitives ----------------

func (b *Bus) drive(p hal.Pin, high bool) {
	if high {
		b.gpio.SetDirection(p, hal.Input)
	} else {
		// Latch low before turning the driver on so the pin never glitches high.
		b.gpio.Write(p, false)
		b.gpio.SetDirection(p, hal.Output)
	}
	b.delay(b.half)
}

func (b *Bus) setSDA(high bool) { b.drive(b.lines.SDA, high) }
func (b *Bus) setSCL(high bool) { b.drive(b.lines.SCL, high) }

// ---------------- Framing ----------------

// Start issues a START: SDA falls while SCL is high, then SCL is pulled low.
// Also valid as a repeated START with SCL low on entry.
func (b *Bus) Start() {
	b.setSDA(true)
	b.setSCL(true)
	b.setSDA(false)
	b.delay(b.half)
	b.setSCL(false)
}

// Stop issues a STOP: SDA rises while SCL is high. Both lines end released.
func (b *Bus) Stop() {
	b.setSDA(false)
	b.setSCL(true)
	b.setSDA(true)
}

// SendByte shifts v out MSB first and samples the acknowledgement slot.
// It reports true when the target pulled SDA low during the ninth clock.
func (b *Bus) SendByte(v byte) bool {
	for i := 7; i >= 0; i-- {
		b.setSDA(v&(1<<uint(i)) != 0)
		b.setSCL(true)
		b.setSCL(false)
	}
	b.setSDA(true)
	b.setSCL(true)
	ack := !b.gpio.Read(b.lines.SDA)
	b.setSCL(false)
	b.setSDA(true)
	return ack
}

// ReceiveByte clocks in one byte MSB first, then drives the acknowledgement
// slot: low when ack is true (more bytes wanted), released for the final byte.
func (b *Bus) ReceiveByte(ack bool) byte {
	var v byte
	b.setSDA(true)
	for i := 0; i < 8; i++ {
		b.setSCL(true)
		v <<= 1
		if b.gpio.Read(b.lines.SDA) {
			v |= 1
		}
		b.setSCL(false)
	}
	b.setSDA(!ack)
	b.setSCL(true)
	b.setSCL(false)
	b.setSDA(true)
	return v
}
