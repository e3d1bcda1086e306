//go:build rp2040 || rp2350

// pico-bench drives an RK8602 on a bench board from a Pico over the
// bit-banged bus: GP5 clock, GP4 data, log on UART0 (GP0/GP1).
package main

import (
	"machine"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"bringup-go/board"
	"bringup-go/diag"
	"bringup-go/drivers/rk8602"
	"bringup-go/drivers/swi2c"
	"bringup-go/hal"
	"bringup-go/platform/rp2"
	"bringup-go/power"
	"bringup-go/x/timex"
)

// Any non-GPIO function puts the pins back on the I2C block.
const i2cFunc hal.Function = 1

func main() {
	time.Sleep(1500 * time.Millisecond)

	u := uartx.UART0
	_ = u.Configure(uartx.UARTConfig{BaudRate: 115200, TX: machine.GP0, RX: machine.GP1})
	log := diag.New("bench", diag.Debug, diag.NewWriterSink(u))
	log.Infof("boot")

	b := board.LubanCat4
	lines := swi2c.Lines{SCL: hal.P(0, hal.PortA, 5), SDA: hal.P(0, hal.PortA, 4), Peripheral: i2cFunc}
	bus, err := swi2c.New(rp2.GPIO{}, lines, swi2c.Config{FrequencyKHz: b.FrequencyKHz}, timex.BusyWaitUs)
	if err != nil {
		log.Errf("bus: %v", err)
		return
	}
	bus.Claim(b.Settle.ClaimUs)

	dev := rk8602.New(bus, rk8602.Config{Address: uint16(b.Addr)})
	for {
		if id, err := dev.ChipID(); err != nil {
			log.Warnf("id: %v", err)
		} else {
			log.Infof("id vendor=%d die=%d rev=%d", id.Vendor, id.DieID, id.DieRev)
		}

		sel, _ := b.VoltageSelector()
		if err := bus.WriteRegister(b.Addr, b.VoltageReg, sel, b.Attempts); err != nil {
			log.Warnf("vsel: %v", err)
		}
		if err := power.ApplyAll(b.NPURails, dev); err != nil {
			log.Warnf("rails: %v", err)
		}
		if uV, err := dev.Voltage(); err == nil {
			log.Infof("vsel0 = %d uV", uV)
		}
		time.Sleep(5 * time.Second)
	}
}
