// Package haltest provides in-memory implementations of the hal
// capabilities: an open-drain two-wire line model with scripted bus targets,
// a register file, and a recording delay.
package haltest

import "bringup-go/hal"

// Delays records every requested wait instead of sleeping.
type Delays struct {
	Calls []uint32
}

// Func returns the hal.Delay value bound to d.
func (d *Delays) Func() hal.Delay {
	return func(us uint32) { d.Calls = append(d.Calls, us) }
}

// Total is the sum of all requested waits in microseconds.
func (d *Delays) Total() uint64 {
	var n uint64
	for _, c := range d.Calls {
		n += uint64(c)
	}
	return n
}

// Count returns how many waits of exactly us were requested.
func (d *Delays) Count(us uint32) int {
	n := 0
	for _, c := range d.Calls {
		if c == us {
			n++
		}
	}
	return n
}

func (d *Delays) Reset() { d.Calls = d.Calls[:0] }
