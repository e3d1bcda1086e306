//go:build linux

package main

import (
	"bringup-go/board"
	"bringup-go/drivers/swi2c"
	"bringup-go/hal"
	"bringup-go/hal/haltest"
	"bringup-go/platform/devmem"
	"bringup-go/platform/rockchip"
	"bringup-go/x/timex"
)

// backend is the hardware (or simulation) a command runs against.
type backend struct {
	gpio  hal.GPIO
	regs  hal.Registers
	delay hal.Delay
	close func() error

	// Set in dry-run mode only.
	target *haltest.Target
	waits  *haltest.Delays
	sim    *haltest.Registers
}

func openBackend(b board.Board) (*backend, error) {
	if dryRun {
		return simBackend(b), nil
	}
	mem, err := devmem.Open(rockchip.Blocks(), rockchip.BlockSize)
	if err != nil {
		return nil, err
	}
	return &backend{
		gpio:  rockchip.NewGPIO(mem),
		regs:  mem,
		delay: timex.BusyWaitUs,
		close: mem.Close,
	}, nil
}

// simBackend replaces the pins with a simulated open-drain pair carrying
// the regulator, and the control blocks with an in-memory register file.
func simBackend(b board.Board) *backend {
	tgt := haltest.NewTarget(b.Addr)
	if simNack < 0 {
		tgt.Absent = true
	} else {
		tgt.NackAddr = simNack
	}
	od := haltest.NewOpenDrain(b.Bus.SCL, b.Bus.SDA, tgt)
	od.SetFunction(b.Bus.SCL, b.Bus.Peripheral)
	od.SetFunction(b.Bus.SDA, b.Bus.Peripheral)

	regs := haltest.NewRegisters()
	for _, w := range append(append([]board.RegWrite(nil), b.Clocks...), b.Resets...) {
		regs.HiWord(w.Block, w.Offset)
	}
	waits := &haltest.Delays{}
	return &backend{
		gpio:   od,
		regs:   regs,
		delay:  waits.Func(),
		close:  func() error { return nil },
		target: tgt,
		waits:  waits,
		sim:    regs,
	}
}

func (be *backend) bus(b board.Board) (*swi2c.Bus, error) {
	return swi2c.New(be.gpio, b.Bus, swi2c.Config{FrequencyKHz: b.FrequencyKHz}, be.delay)
}
