//go:build linux

// npu-bringup programs the NPU regulator over the GPIO-emulated bus and
// releases the NPU's clocks and resets. It is meant to run from an early
// init on the target; --dry-run exercises the same path against simulated
// hardware.
package main

func main() {
	Execute()
}
