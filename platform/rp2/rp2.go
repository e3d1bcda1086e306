//go:build rp2040 || rp2350

// Package rp2 exposes RP2040/RP2350 pins as hal.GPIO so the emulated bus can
// be exercised from a Pico on the bench. All pins live in bank 0.
package rp2

import (
	"machine"

	"bringup-go/errcode"
	"bringup-go/hal"
)

type GPIO struct{}

var _ hal.GPIO = GPIO{}

func pin(p hal.Pin) machine.Pin {
	if p.Bank != 0 || p.Index > 29 {
		panic(errcode.UnknownPin)
	}
	return machine.Pin(p.Index)
}

// SetFunction switches between SIO (FuncGPIO) and the I2C peripheral; any
// non-zero function selects I2C.
func (GPIO) SetFunction(p hal.Pin, fn hal.Function) {
	if fn == hal.FuncGPIO {
		pin(p).Configure(machine.PinConfig{Mode: machine.PinInputPullup})
		return
	}
	pin(p).Configure(machine.PinConfig{Mode: machine.PinI2C})
}

func (GPIO) SetDirection(p hal.Pin, d hal.Direction) {
	if d == hal.Output {
		pin(p).Configure(machine.PinConfig{Mode: machine.PinOutput})
		return
	}
	pin(p).Configure(machine.PinConfig{Mode: machine.PinInputPullup})
}

func (GPIO) Write(p hal.Pin, high bool) { pin(p).Set(high) }
func (GPIO) Read(p hal.Pin) bool        { return pin(p).Get() }
