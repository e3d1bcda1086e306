//go:build linux

// Package devmem maps physical control blocks through /dev/mem and serves
// them as hal.Registers.
package devmem

import (
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"

	"bringup-go/errcode"
	"bringup-go/hal"
)

const Path = "/dev/mem"

// Mem holds one shared mapping per block.
type Mem struct {
	f    *os.File
	maps map[uintptr][]byte
}

var _ hal.Registers = (*Mem)(nil)

// Open maps size bytes at the base of every block. Bases must be page
// aligned.
func Open(blocks []hal.Block, size int) (*Mem, error) {
	return OpenFile(Path, blocks, size)
}

// OpenFile is Open on another memory device, e.g. a UIO node.
func OpenFile(path string, blocks []hal.Block, size int) (*Mem, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, err
	}
	m := &Mem{f: f, maps: make(map[uintptr][]byte, len(blocks))}
	for _, b := range blocks {
		if _, ok := m.maps[b.Base]; ok {
			continue
		}
		buf, err := unix.Mmap(int(f.Fd()), int64(b.Base), size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
		if err != nil {
			m.Close()
			return nil, fmt.Errorf("mmap %s@%#x: %w", b.Name, b.Base, err)
		}
		m.maps[b.Base] = buf
	}
	return m, nil
}

func (m *Mem) Close() error {
	for base, buf := range m.maps {
		unix.Munmap(buf)
		delete(m.maps, base)
	}
	if m.f == nil {
		return nil
	}
	err := m.f.Close()
	m.f = nil
	return err
}

func (m *Mem) word(b hal.Block, off uint32) *uint32 {
	buf, ok := m.maps[b.Base]
	if !ok {
		panic(&errcode.E{C: errcode.UnknownBlock, Op: "devmem", Msg: b.Name})
	}
	if off%4 != 0 || int(off)+4 > len(buf) {
		panic(&errcode.E{C: errcode.InvalidParams, Op: "devmem", Msg: fmt.Sprintf("%s+%#x", b.Name, off)})
	}
	return (*uint32)(unsafe.Pointer(&buf[off]))
}

func (m *Mem) Read32(b hal.Block, off uint32) uint32 {
	return atomic.LoadUint32(m.word(b, off))
}

func (m *Mem) Write32(b hal.Block, off uint32, v uint32) {
	atomic.StoreUint32(m.word(b, off), v)
}
