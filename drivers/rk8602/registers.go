// Package rk8602 provides constants for the register map of the RK8602
// single-rail buck regulator (FAN53555-compatible register layout).
package rk8602

const (
	// 7-bit I2C address as strapped on the board (1000_010b).
	AddressDefault = 0x42

	// --- Register sub-addresses (8-bit registers) ---

	regEnable  = 0x00 // R/W, bit7 = output enable for VSEL0 mode
	regEnSleep = 0x01 // R/W, bit7 = output enable for VSEL1 (sleep) mode
	regControl = 0x02 // R/W
	regID1     = 0x03 // R, vendor[7:5] die_id[3:0]
	regID2     = 0x04 // R, die_rev[3:0]
	regMonitor = 0x05 // R
	regVSel0   = 0x06 // R/W, selector [7:0]
	regVSel1   = 0x07 // R/W, selector [7:0]

	// --- Bitfields ---
	enBuck = 0x80

	// --- Voltage encoding ---
	vselMinUV = 500000
	vselStep  = 6250
	vselCount = 160
)

// Exported register numbers used by callers that drive the part through a
// bare register-write path instead of a Device.
const (
	RegEnable = regEnable
	RegVSel0  = regVSel0
	EnableBit = enBuck
)
