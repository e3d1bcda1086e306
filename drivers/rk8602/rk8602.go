package rk8602

import (
	"errors"

	"tinygo.org/x/drivers"
)

// ---------------- Top level vars ----------------

var (
	ErrRange   = errors.New("rk8602: voltage out of range")
	ErrUnknown = errors.New("rk8602: unknown rail")
)

// RailName is the rail this part supplies on the reference board.
const RailName = "vdd_npu_s0"

// ---------------- Voltage encoding ----------------

// Selector encodes a voltage in µV. The value must lie on the 6.25 mV grid
// between 500 mV and 1.49375 V; anything else is rejected rather than
// rounded so a typo in a table cannot program a surprising voltage.
func Selector(uV uint32) (uint8, error) {
	if uV < vselMinUV {
		return 0, ErrRange
	}
	d := uV - vselMinUV
	if d%vselStep != 0 || d/vselStep >= vselCount {
		return 0, ErrRange
	}
	return uint8(d / vselStep), nil
}

// Microvolts decodes a selector.
func Microvolts(sel uint8) uint32 {
	return vselMinUV + uint32(sel)*vselStep
}

// ---------------- Device ----------------

type Config struct {
	Address uint16
}

// Device talks to one regulator over any drivers.I2C bus. It is used for
// diagnostics and bench work; the boot-time bring-up path writes the two
// registers directly through the retrying transaction layer.
type Device struct {
	i2c  drivers.I2C
	addr uint16

	// Fixed buffers to avoid per-call heap allocations.
	w [2]byte
	r [1]byte
}

func New(i2c drivers.I2C, cfg Config) *Device {
	addr := cfg.Address
	if addr == 0 {
		addr = AddressDefault
	}
	return &Device{i2c: i2c, addr: addr}
}

// ID identifies the die.
type ID struct {
	Vendor uint8
	DieID  uint8
	DieRev uint8
}

func (d *Device) ChipID() (ID, error) {
	id1, err := d.readReg(regID1)
	if err != nil {
		return ID{}, err
	}
	id2, err := d.readReg(regID2)
	if err != nil {
		return ID{}, err
	}
	return ID{Vendor: id1 >> 5, DieID: id1 & 0x0F, DieRev: id2 & 0x0F}, nil
}

// Voltage returns the programmed VSEL0 voltage in µV.
func (d *Device) Voltage() (uint32, error) {
	sel, err := d.readReg(regVSel0)
	if err != nil {
		return 0, err
	}
	return Microvolts(sel), nil
}

// Enabled reports the VSEL0 output-enable bit.
func (d *Device) Enabled() (bool, error) {
	v, err := d.readReg(regEnable)
	if err != nil {
		return false, err
	}
	return v&enBuck != 0, nil
}

// SetVoltage programs VSEL0.
func (d *Device) SetVoltage(uV uint32) error {
	sel, err := Selector(uV)
	if err != nil {
		return err
	}
	return d.writeReg(regVSel0, sel)
}

// Enable sets or clears the output-enable bit (read-modify-write).
func (d *Device) Enable(on bool) error {
	v, err := d.readReg(regEnable)
	if err != nil {
		return err
	}
	if on {
		v |= enBuck
	} else {
		v &^= enBuck
	}
	return d.writeReg(regEnable, v)
}

// SetMicrovolts programs the named rail; this part only supplies RailName.
// It satisfies power.Setter.
func (d *Device) SetMicrovolts(rail string, uV uint32) error {
	if rail != RailName {
		return ErrUnknown
	}
	return d.SetVoltage(uV)
}

// ---------------- Register access ----------------

func (d *Device) readReg(reg byte) (byte, error) {
	d.w[0] = reg
	if err := d.i2c.Tx(d.addr, d.w[:1], d.r[:1]); err != nil {
		return 0, err
	}
	return d.r[0], nil
}

func (d *Device) writeReg(reg, val byte) error {
	d.w[0] = reg
	d.w[1] = val
	return d.i2c.Tx(d.addr, d.w[:2], nil)
}
