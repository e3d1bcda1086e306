package haltest

import (
	"bringup-go/hal"
)

// Op is one recorded call on the GPIO capability.
type Op struct {
	Kind  OpKind
	Pin   hal.Pin
	Value uint8 // function, direction, or level (0/1)
}

type OpKind uint8

const (
	OpFunction OpKind = iota
	OpDirection
	OpWrite
	OpRead
)

type pinState struct {
	fn  hal.Function
	dir hal.Direction
	out bool
}

// OpenDrain models a pair of wired-AND bus lines with pull-ups. A line reads
// low when the master drives it low as a GPIO output or when an attached
// Target pulls it low; otherwise it floats high. Pins other than the two bus
// lines are plain storage.
//
// Every level change on the bus lines is fed to the attached targets, so a
// scripted slave sees exactly the waveform the master produced.
type OpenDrain struct {
	SCL, SDA hal.Pin

	pins    map[hal.Pin]*pinState
	targets []*Target
	scl     bool
	sda     bool

	// Recorded activity.
	Ops     []Op
	Starts  int    // START conditions (SDA falls while SCL high)
	Stops   int    // STOP conditions (SDA rises while SCL high)
	Rises   int    // SCL rising edges
	Samples []bool // SDA level at each SCL rising edge
}

// NewOpenDrain returns idle lines (both released, both high) with the given
// targets attached.
func NewOpenDrain(scl, sda hal.Pin, targets ...*Target) *OpenDrain {
	return &OpenDrain{
		SCL:     scl,
		SDA:     sda,
		pins:    make(map[hal.Pin]*pinState),
		targets: targets,
		scl:     true,
		sda:     true,
	}
}

// Attach adds a target to the bus.
func (o *OpenDrain) Attach(t *Target) { o.targets = append(o.targets, t) }

func (o *OpenDrain) pin(p hal.Pin) *pinState {
	st := o.pins[p]
	if st == nil {
		st = &pinState{}
		o.pins[p] = st
	}
	return st
}

func (o *OpenDrain) SetFunction(p hal.Pin, fn hal.Function) {
	o.Ops = append(o.Ops, Op{Kind: OpFunction, Pin: p, Value: uint8(fn)})
	o.pin(p).fn = fn
	o.settle()
}

func (o *OpenDrain) SetDirection(p hal.Pin, d hal.Direction) {
	o.Ops = append(o.Ops, Op{Kind: OpDirection, Pin: p, Value: uint8(d)})
	o.pin(p).dir = d
	o.settle()
}

func (o *OpenDrain) Write(p hal.Pin, high bool) {
	o.Ops = append(o.Ops, Op{Kind: OpWrite, Pin: p, Value: b2u(high)})
	o.pin(p).out = high
	o.settle()
}

func (o *OpenDrain) Read(p hal.Pin) bool {
	o.Ops = append(o.Ops, Op{Kind: OpRead, Pin: p})
	switch p {
	case o.SCL:
		return o.scl
	case o.SDA:
		return o.sda
	}
	st := o.pin(p)
	return st.dir == hal.Output && st.out
}

// Function reports the current mux selection of p.
func (o *OpenDrain) Function(p hal.Pin) hal.Function { return o.pin(p).fn }

// Direction reports the current direction of p.
func (o *OpenDrain) Direction(p hal.Pin) hal.Direction { return o.pin(p).dir }

// Lines reports the current bus levels.
func (o *OpenDrain) Lines() (scl, sda bool) { return o.scl, o.sda }

// ResetCounters clears recorded activity, keeping line and target state.
func (o *OpenDrain) ResetCounters() {
	o.Ops = o.Ops[:0]
	o.Starts, o.Stops, o.Rises = 0, 0, 0
	o.Samples = o.Samples[:0]
}

func (o *OpenDrain) masterLow(p hal.Pin) bool {
	st := o.pin(p)
	return st.fn == hal.FuncGPIO && st.dir == hal.Output && !st.out
}

func (o *OpenDrain) level(p hal.Pin, targetLow bool) bool {
	return !o.masterLow(p) && !targetLow
}

// settle recomputes both lines and feeds any change to the targets. A target
// reacting to a clock edge may move SDA, which is fed back once more; data
// changes while the clock is low do not cascade further.
func (o *OpenDrain) settle() {
	for i := 0; i < 4; i++ {
		pull := false
		for _, t := range o.targets {
			if t.sdaLow {
				pull = true
			}
		}
		scl := o.level(o.SCL, false)
		sda := o.level(o.SDA, pull)
		if scl == o.scl && sda == o.sda {
			return
		}
		prevSCL, prevSDA := o.scl, o.sda
		o.scl, o.sda = scl, sda
		o.observe(prevSCL, prevSDA)
		for _, t := range o.targets {
			t.observe(prevSCL, prevSDA, scl, sda)
		}
	}
}

func (o *OpenDrain) observe(prevSCL, prevSDA bool) {
	switch {
	case prevSCL && o.scl && prevSDA && !o.sda:
		o.Starts++
	case prevSCL && o.scl && !prevSDA && o.sda:
		o.Stops++
	case !prevSCL && o.scl:
		o.Rises++
		o.Samples = append(o.Samples, o.sda)
	}
}

func b2u(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
