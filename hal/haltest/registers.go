package haltest

import "bringup-go/hal"

// RegWrite is one recorded register store.
type RegWrite struct {
	Block string
	Off   uint32
	Value uint32
}

type regKey struct {
	base uintptr
	off  uint32
}

// Registers is an in-memory register file. Offsets marked with HiWord behave
// like Rockchip write-mask registers: the upper 16 bits of a store select
// which of the lower 16 bits change.
type Registers struct {
	mem    map[regKey]uint32
	hiword map[regKey]bool

	Writes []RegWrite
}

func NewRegisters() *Registers {
	return &Registers{
		mem:    make(map[regKey]uint32),
		hiword: make(map[regKey]bool),
	}
}

// HiWord marks the given offsets of b as write-masked.
func (r *Registers) HiWord(b hal.Block, offs ...uint32) {
	for _, off := range offs {
		r.hiword[regKey{b.Base, off}] = true
	}
}

// Poke stores v without recording a write (test setup, read-only inputs).
func (r *Registers) Poke(b hal.Block, off, v uint32) {
	r.mem[regKey{b.Base, off}] = v
}

func (r *Registers) Read32(b hal.Block, off uint32) uint32 {
	return r.mem[regKey{b.Base, off}]
}

func (r *Registers) Write32(b hal.Block, off uint32, v uint32) {
	k := regKey{b.Base, off}
	r.Writes = append(r.Writes, RegWrite{Block: b.Name, Off: off, Value: v})
	if r.hiword[k] {
		mask := v >> 16
		r.mem[k] = (r.mem[k] &^ mask) | (v & mask)
		return
	}
	r.mem[k] = v
}
