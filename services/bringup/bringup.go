// Package bringup sequences NPU power, clock and reset bring-up:
//
//	Idle → ClaimBus → ProgramVoltage → ProgramEnable → ReleaseBus →
//	EnableClocks → DeassertResets → Done
//
// A failed power step skips straight to ReleaseBus and then Fatal. Run
// computes the outcome; Boot is the halting entry point used on hardware.
package bringup

import (
	"fmt"

	"bringup-go/board"
	"bringup-go/diag"
	"bringup-go/errcode"
	"bringup-go/hal"
)

// Bus is the slice of the emulated bus the sequencer needs.
// *swi2c.Bus satisfies it.
type Bus interface {
	Claim(settleUs uint32)
	Release()
	WriteRegister(addr, reg, value uint8, attempts int) error
}

// Deps are the capabilities a run consumes.
type Deps struct {
	Bus   Bus
	Regs  hal.Registers
	Delay hal.Delay

	Log     *diag.Logger // optional
	Observe func(State)  // optional, called on every state entry
}

// Outcome is the result of one run.
type Outcome struct {
	State  State   // Done or Fatal
	Failed State   // the power step that failed; Idle when none did
	Err    error   // cause of Fatal
	Trace  []State // every state entered, in order
}

// Reason formats a fatal outcome for logs and the halter.
func (o Outcome) Reason() string {
	if o.State != Fatal {
		return ""
	}
	return fmt.Sprintf("%s: %v", o.Failed, o.Err)
}

type Sequencer struct {
	d   Deps
	b   board.Board
	sel uint8
}

// New validates the board and dependencies.
func New(d Deps, b board.Board) (*Sequencer, error) {
	if d.Bus == nil || d.Regs == nil || d.Delay == nil {
		return nil, errcode.Wrap(errcode.InvalidParams, "bringup.New", "bus, registers and delay are required")
	}
	if err := b.Validate(); err != nil {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "bringup.New", Err: err}
	}
	sel, err := b.VoltageSelector()
	if err != nil {
		return nil, err
	}
	return &Sequencer{d: d, b: b, sel: sel}, nil
}

// Run executes the sequence once and reports how it ended.
func (s *Sequencer) Run() Outcome {
	var o Outcome
	s.enter(&o, Idle)

	failed := false
	for _, st := range sequence {
		if failed && !st.Cleanup {
			continue
		}
		s.enter(&o, st.State)
		err := s.exec(st.State)
		if err == nil {
			continue
		}
		if st.Policy == FatalOnFailure && !failed {
			failed = true
			o.Failed = st.State
			o.Err = fmt.Errorf("%s: %w", st.Name, err)
			s.d.Log.Errf("%s failed: %v", st.Name, err)
		}
	}

	if failed {
		s.enter(&o, Fatal)
		s.d.Log.Raw(diag.Err, diag.MarkerFatal+" "+o.Reason())
		return o
	}
	s.enter(&o, Done)
	s.d.Log.Raw(diag.Info, diag.MarkerDone)
	return o
}

// Boot runs the sequence and returns on Done. On Fatal it hands the reason
// to h, which must not return.
func (s *Sequencer) Boot(h hal.Halter) Outcome {
	o := s.Run()
	if o.State == Fatal {
		h.Halt(o.Reason())
		panic("bringup: halter returned")
	}
	return o
}

func (s *Sequencer) enter(o *Outcome, st State) {
	o.State = st
	o.Trace = append(o.Trace, st)
	s.d.Log.Infof("-> %s", st)
	if s.d.Observe != nil {
		s.d.Observe(st)
	}
}

func (s *Sequencer) exec(st State) error {
	b := &s.b
	switch st {
	case ClaimBus:
		s.d.Bus.Claim(b.Settle.ClaimUs)
	case ProgramVoltage:
		s.d.Log.Infof("vsel reg 0x%02x <- 0x%02x (%d uV)", b.VoltageReg, s.sel, b.Microvolts)
		if err := s.d.Bus.WriteRegister(b.Addr, b.VoltageReg, s.sel, b.Attempts); err != nil {
			return err
		}
		s.d.Delay(b.Settle.VoltageUs)
	case ProgramEnable:
		if err := s.d.Bus.WriteRegister(b.Addr, b.EnableReg, b.EnableValue, b.Attempts); err != nil {
			return err
		}
		s.d.Delay(b.Settle.EnableUs)
	case ReleaseBus:
		s.d.Bus.Release()
	case EnableClocks:
		s.poke(b.Clocks)
		s.d.Delay(b.Settle.ClocksUs)
	case DeassertResets:
		s.poke(b.Resets)
		s.d.Delay(b.Settle.ResetsUs)
	}
	return nil
}

func (s *Sequencer) poke(ws []board.RegWrite) {
	for _, w := range ws {
		s.d.Regs.Write32(w.Block, w.Offset, w.Value)
		s.d.Log.Debugf("%s: %s+%#x <- %#08x", w.Name, w.Block.Name, w.Offset, w.Value)
	}
}
