// Package board describes a target board for the NPU bring-up: which pins
// carry the emulated bus, what the regulator wants written, how long each
// step settles, and which clock and reset registers belong to the NPU.
// Values are fixed at compile time; see LubanCat4.
package board

import (
	"errors"
	"fmt"

	"bringup-go/drivers/rk8602"
	"bringup-go/drivers/swi2c"
	"bringup-go/hal"
	"bringup-go/power"
	"bringup-go/x/timex"
)

// RegWrite is one memory-mapped store.
type RegWrite struct {
	Name   string
	Block  hal.Block
	Offset uint32
	Value  uint32
}

// Settle holds the post-step waits in microseconds.
type Settle struct {
	ClaimUs   uint32
	VoltageUs uint32
	EnableUs  uint32
	ClocksUs  uint32
	ResetsUs  uint32
}

type Board struct {
	Name string

	// Emulated bus.
	Bus          swi2c.Lines
	FrequencyKHz uint32
	Attempts     int

	// Regulator on the bus.
	Addr        uint8
	VoltageReg  uint8
	EnableReg   uint8
	EnableValue uint8
	Microvolts  uint32

	Settle Settle

	Clocks []RegWrite
	Resets []RegWrite

	// Rail tables. MasterRails belong to the main PMIC and are programmed
	// by earlier firmware; they are carried for reference and tooling.
	MasterRails []power.Rail
	NPURails    []power.Rail
	Skipped     []power.Skipped
}

// VoltageSelector encodes Microvolts for the voltage register.
func (b *Board) VoltageSelector() (uint8, error) {
	return rk8602.Selector(b.Microvolts)
}

// Validate checks the values the bring-up sequence depends on.
func (b *Board) Validate() error {
	var errs []error
	if timex.HalfPeriodUs(b.FrequencyKHz) == 0 {
		errs = append(errs, fmt.Errorf("frequency %d kHz gives a zero half period", b.FrequencyKHz))
	}
	if b.Attempts < 1 {
		errs = append(errs, fmt.Errorf("attempts %d < 1", b.Attempts))
	}
	if b.Addr == 0 || b.Addr > 0x7F {
		errs = append(errs, fmt.Errorf("address %#x is not a 7-bit target address", b.Addr))
	}
	if b.Bus.SCL == b.Bus.SDA {
		errs = append(errs, errors.New("clock and data share a pin"))
	}
	if b.Bus.Peripheral == hal.FuncGPIO {
		errs = append(errs, errors.New("peripheral function must not be GPIO"))
	}
	if _, err := b.VoltageSelector(); err != nil {
		errs = append(errs, fmt.Errorf("%d uV: %w", b.Microvolts, err))
	}
	if b.EnableValue == 0 {
		errs = append(errs, errors.New("enable value is zero"))
	}
	if len(b.Clocks) == 0 {
		errs = append(errs, errors.New("no clock gate writes"))
	}
	if len(b.Resets) == 0 {
		errs = append(errs, errors.New("no reset writes"))
	}
	seen := map[string]bool{}
	for _, r := range append(append([]power.Rail(nil), b.MasterRails...), b.NPURails...) {
		if seen[r.ID] {
			errs = append(errs, fmt.Errorf("rail %s listed twice", r.ID))
		}
		seen[r.ID] = true
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("board %s: %w", b.Name, err)
	}
	return nil
}
