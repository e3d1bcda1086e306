// Package hal declares the narrow hardware capabilities the bring-up code
// consumes. Concrete providers live under platform/; test doubles live in
// hal/haltest.
package hal

// ---- GPIO ----

// Pin identifies one GPIO line as a bank plus an index within the bank
// (0..31, e.g. PD1 = 3*8+1).
type Pin struct {
	Bank  uint8
	Index uint8
}

// Port groups of eight pins within a bank.
const (
	PortA uint8 = 0
	PortB uint8 = 8
	PortC uint8 = 16
	PortD uint8 = 24
)

// P builds a Pin from a bank, a port offset and a line number.
func P(bank, port, n uint8) Pin { return Pin{Bank: bank, Index: port + n} }

type Direction uint8

const (
	Input Direction = iota
	Output
)

// Function is a pin multiplexer selection. FuncGPIO is always zero.
type Function uint8

const FuncGPIO Function = 0

// GPIO is the pin capability: mux selection, direction, level.
// Methods are register pokes on real hardware and cannot fail; an unknown
// pin is a wiring bug and providers panic on it.
type GPIO interface {
	SetFunction(p Pin, fn Function)
	SetDirection(p Pin, d Direction)
	Write(p Pin, high bool)
	Read(p Pin) bool
}

// ---- Timing ----

// Delay blocks for the given number of microseconds. Implementations are
// expected to busy-wait; no scheduler involvement is assumed.
type Delay func(us uint32)

// ---- Memory-mapped control blocks ----

// Block names a control block and its physical base address.
type Block struct {
	Name string
	Base uintptr
}

// Registers reads and writes 32-bit registers at an offset within a block.
type Registers interface {
	Read32(b Block, off uint32) uint32
	Write32(b Block, off uint32, v uint32)
}

// ---- Halt ----

// Halter stops the platform. Halt never returns.
type Halter interface {
	Halt(reason string)
}

// HalterFunc adapts a function to Halter.
type HalterFunc func(reason string)

func (f HalterFunc) Halt(reason string) { f(reason) }
