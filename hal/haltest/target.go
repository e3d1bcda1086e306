package haltest

// Write is one register write accepted by a Target.
type Write struct {
	Reg   uint8
	Value uint8
}

type phase uint8

const (
	phIdle phase = iota
	phAddr
	phReg
	phData
	phSend
	phIgnore
)

// Target is a scripted bus slave with a 256-byte register file. It decodes
// START/STOP and data bits from line edges, acknowledges on the falling clock
// edge after the eighth bit, and serves reads from the register pointer.
//
// The Nack* budgets make the target refuse the next N bytes of the given kind;
// a refused byte ends the target's participation until the next START.
type Target struct {
	Addr uint8
	Regs [256]byte

	NackAddr  int
	NackReg   int
	NackValue int
	Absent    bool // never acknowledge anything

	// Recorded activity.
	Writes    []Write
	Addressed int // address bytes matching Addr (acked or not)

	ph     phase
	bits   int
	shift  byte
	ptr    uint8
	read   bool
	sdaLow bool

	send      byte
	sendIdx   int
	masterAck bool
}

// NewTarget returns a present, always-acknowledging target at addr.
func NewTarget(addr uint8) *Target { return &Target{Addr: addr} }

func (t *Target) observe(prevSCL, prevSDA, scl, sda bool) {
	switch {
	case prevSCL && scl && prevSDA && !sda: // START or repeated START
		t.ph, t.bits, t.shift, t.sdaLow = phAddr, 0, 0, false
	case prevSCL && scl && !prevSDA && sda: // STOP
		t.ph, t.bits, t.sdaLow = phIdle, 0, false
	case !prevSCL && scl:
		t.rise(sda)
	case prevSCL && !scl:
		t.fall()
	}
}

func (t *Target) rise(sda bool) {
	switch t.ph {
	case phAddr, phReg, phData:
		if t.bits < 8 {
			t.shift <<= 1
			if sda {
				t.shift |= 1
			}
			t.bits++
		}
	case phSend:
		if t.sendIdx == 9 {
			t.masterAck = !sda
		}
	}
}

func (t *Target) fall() {
	switch t.ph {
	case phAddr, phReg, phData:
		switch t.bits {
		case 8:
			t.sdaLow = t.accept()
			t.bits = 9
			if !t.sdaLow {
				t.ph = phIgnore
			}
		case 9:
			t.sdaLow = false
			t.bits, t.shift = 0, 0
			if t.ph == phAddr && t.read {
				t.ph = phSend
				t.load()
			} else if t.ph == phAddr {
				t.ph = phReg
			} else if t.ph == phReg {
				t.ph = phData
			}
		}
	case phSend:
		switch {
		case t.sendIdx < 8:
			t.drive()
		case t.sendIdx == 8:
			t.sdaLow = false
			t.sendIdx = 9
		default:
			if t.masterAck {
				t.load()
			} else {
				t.ph, t.sdaLow = phIgnore, false
			}
		}
	case phIgnore:
		t.sdaLow = false
	}
}

// accept decides the acknowledgement for the byte just shifted in.
func (t *Target) accept() bool {
	if t.Absent {
		return false
	}
	switch t.ph {
	case phAddr:
		if t.shift>>1 != t.Addr {
			return false
		}
		t.Addressed++
		if t.NackAddr > 0 {
			t.NackAddr--
			return false
		}
		t.read = t.shift&1 == 1
		return true
	case phReg:
		if t.NackReg > 0 {
			t.NackReg--
			return false
		}
		t.ptr = t.shift
		return true
	case phData:
		if t.NackValue > 0 {
			t.NackValue--
			return false
		}
		t.Regs[t.ptr] = t.shift
		t.Writes = append(t.Writes, Write{Reg: t.ptr, Value: t.shift})
		t.ptr++
		return true
	}
	return false
}

func (t *Target) load() {
	t.send = t.Regs[t.ptr]
	t.ptr++
	t.sendIdx = 0
	t.drive()
}

func (t *Target) drive() {
	t.sdaLow = t.send&(0x80>>uint(t.sendIdx)) == 0
	t.sendIdx++
}
