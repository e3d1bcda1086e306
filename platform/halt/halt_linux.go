//go:build linux

// Package halt stops a Linux system after a failed bring-up.
package halt

import (
	"time"

	"golang.org/x/sys/unix"

	"bringup-go/diag"
	"bringup-go/hal"
)

type Action uint8

const (
	// Park logs and blocks the calling process forever.
	Park Action = iota
	// Halt asks the kernel to stop the CPUs.
	Halt
	// PowerOff asks the kernel to power the board down.
	PowerOff
)

// Halter implements hal.Halter.
type Halter struct {
	Action Action
	Log    *diag.Logger
}

var _ hal.Halter = Halter{}

// Replaced in tests.
var (
	reboot = unix.Reboot
	sync   = unix.Sync
	park   = func() {
		for {
			time.Sleep(time.Hour)
		}
	}
)

func (h Halter) Halt(reason string) {
	h.Log.Errf("halting: %s", reason)
	sync()
	var err error
	switch h.Action {
	case Halt:
		err = reboot(unix.LINUX_REBOOT_CMD_HALT)
	case PowerOff:
		err = reboot(unix.LINUX_REBOOT_CMD_POWER_OFF)
	}
	if err != nil {
		h.Log.Errf("reboot syscall: %v", err)
	}
	park()
}
