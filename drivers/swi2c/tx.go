package swi2c

import (
	"time"

	"github.com/jpillora/backoff"

	"bringup-go/errcode"
	"bringup-go/x/timex"
)

// Default retry pacing between failed attempts.
const (
	DefaultBackoffMin = 200 * time.Microsecond
	DefaultBackoffMax = 800 * time.Microsecond
)

// Transaction is one addressed single-byte register write.
type Transaction struct {
	Addr     uint8 // 7-bit
	Reg      uint8
	Value    uint8
	Attempts int // < 1 is treated as 1

	// Backoff paces the waits between failed attempts. The zero value uses
	// DefaultBackoffMin..DefaultBackoffMax doubling without jitter.
	Backoff backoff.Backoff
}

// WriteRegister writes value to reg of the target at addr, retrying a whole
// transaction up to attempts times. It returns errcode.NoAck when no attempt
// had its value byte acknowledged.
func (b *Bus) WriteRegister(addr, reg, value uint8, attempts int) error {
	return b.Write(Transaction{Addr: addr, Reg: reg, Value: value, Attempts: attempts})
}

// Write performs t. Every attempt ends with STOP; success returns at once.
func (b *Bus) Write(t Transaction) error {
	n := t.Attempts
	if n < 1 {
		n = 1
	}
	bo := t.Backoff
	if bo.Min == 0 && bo.Max == 0 {
		bo = backoff.Backoff{Min: DefaultBackoffMin, Max: DefaultBackoffMax, Factor: 2}
	}
	for attempt := 0; attempt < n; attempt++ {
		if attempt > 0 {
			b.delay(timex.Us(bo.Duration()))
		}
		if b.writeOnce(t.Addr, t.Reg, t.Value) {
			return nil
		}
	}
	return errcode.NoAck
}

func (b *Bus) writeOnce(addr, reg, value uint8) bool {
	b.Start()
	if !b.SendByte(addr << 1) {
		b.Stop()
		return false
	}
	if !b.SendByte(reg) {
		b.Stop()
		return false
	}
	ok := b.SendByte(value)
	b.Stop()
	return ok
}
