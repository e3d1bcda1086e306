package swi2c

import (
	"errors"
	"testing"

	"bringup-go/errcode"
	"bringup-go/hal"
	"bringup-go/hal/haltest"
)

var (
	pinSCL = hal.P(0, hal.PortD, 1)
	pinSDA = hal.P(0, hal.PortD, 2)
)

const periph hal.Function = 3

// ---- Test helpers ----

type rig struct {
	od  *haltest.OpenDrain
	dl  *haltest.Delays
	bus *Bus
}

func newRig(t *testing.T, targets ...*haltest.Target) *rig {
	t.Helper()
	od := haltest.NewOpenDrain(pinSCL, pinSDA, targets...)
	dl := &haltest.Delays{}
	bus, err := New(od, Lines{SCL: pinSCL, SDA: pinSDA, Peripheral: periph}, Config{FrequencyKHz: 100}, dl.Func())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return &rig{od: od, dl: dl, bus: bus}
}

// ---- Construction ----

func TestNew_RejectsZeroHalfPeriod(t *testing.T) {
	od := haltest.NewOpenDrain(pinSCL, pinSDA)
	dl := &haltest.Delays{}
	for _, khz := range []uint32{0, 501, 1000} {
		_, err := New(od, Lines{SCL: pinSCL, SDA: pinSDA}, Config{FrequencyKHz: khz}, dl.Func())
		if errcode.Of(err) != errcode.InvalidParams {
			t.Fatalf("khz=%d: got %v, want invalid_params", khz, err)
		}
	}
	if _, err := New(od, Lines{}, Config{FrequencyKHz: 100}, nil); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("nil delay: got %v", err)
	}
}

func TestHalfPeriod(t *testing.T) {
	r := newRig(t)
	if got := r.bus.HalfPeriod(); got != 5 {
		t.Fatalf("half period at 100kHz = %d, want 5", got)
	}
}

// ---- Line primitives ----

func TestDrive_OpenDrainDiscipline(t *testing.T) {
	r := newRig(t)
	r.bus.setSDA(false)
	if _, sda := r.od.Lines(); sda {
		t.Fatalf("SDA should read low after drive low")
	}
	if r.od.Direction(pinSDA) != hal.Output {
		t.Fatalf("drive low must switch to output")
	}
	r.bus.setSDA(true)
	if _, sda := r.od.Lines(); !sda {
		t.Fatalf("SDA should float high after release")
	}
	if r.od.Direction(pinSDA) != hal.Input {
		t.Fatalf("release must switch to input")
	}
	for _, op := range r.od.Ops {
		if op.Kind == haltest.OpWrite && op.Value == 1 {
			t.Fatalf("bus line was actively driven high: %+v", op)
		}
	}
	if len(r.dl.Calls) != 2 || r.dl.Count(5) != 2 {
		t.Fatalf("each line change must wait one half period, got %v", r.dl.Calls)
	}
}

func TestStartStop_LeavesLinesIdle(t *testing.T) {
	priors := []struct {
		name     string
		scl, sda bool
	}{
		{"both released", true, true},
		{"scl low", false, true},
		{"sda low", true, false},
		{"both low", false, false},
	}
	for _, p := range priors {
		t.Run(p.name, func(t *testing.T) {
			r := newRig(t)
			if !p.scl {
				r.bus.setSCL(false)
			}
			if !p.sda {
				r.bus.setSDA(false)
			}
			r.bus.Start()
			r.bus.Stop()
			scl, sda := r.od.Lines()
			if !scl || !sda {
				t.Fatalf("lines after start+stop: scl=%v sda=%v", scl, sda)
			}
			if r.od.Direction(pinSCL) != hal.Input || r.od.Direction(pinSDA) != hal.Input {
				t.Fatalf("lines must end released (input)")
			}
		})
	}
}

func TestStart_FramesOneStartCondition(t *testing.T) {
	r := newRig(t)
	r.bus.Start()
	if r.od.Starts != 1 || r.od.Stops != 0 {
		t.Fatalf("starts=%d stops=%d", r.od.Starts, r.od.Stops)
	}
	if scl, _ := r.od.Lines(); scl {
		t.Fatalf("SCL must be low after START")
	}
	// setSDA, setSCL, setSDA, explicit wait, setSCL
	if len(r.dl.Calls) != 5 {
		t.Fatalf("START waits = %v", r.dl.Calls)
	}
	r.bus.Stop()
	if r.od.Stops != 1 {
		t.Fatalf("stops=%d", r.od.Stops)
	}
}

// ---- Byte transfer ----

func TestSendByte_0x85_BitOrderAndPulses(t *testing.T) {
	r := newRig(t)
	r.bus.Start()
	r.od.ResetCounters()
	r.dl.Reset()

	ack := r.bus.SendByte(0x85)

	if ack {
		t.Fatalf("no target attached, ack must be false")
	}
	if r.od.Rises != 9 {
		t.Fatalf("clock pulses = %d, want 8 data + 1 ack", r.od.Rises)
	}
	want := []bool{true, false, false, false, false, true, false, true}
	for i, w := range want {
		if r.od.Samples[i] != w {
			t.Fatalf("bit %d = %v, want %v (samples %v)", i, r.od.Samples[i], w, r.od.Samples)
		}
	}
	if !r.od.Samples[8] {
		t.Fatalf("ack slot should read released high with no target")
	}
	// 8*(data, rise, fall) + release, rise, fall, release
	if len(r.dl.Calls) != 28 || r.dl.Count(5) != 28 {
		t.Fatalf("SendByte waits = %d (%v)", len(r.dl.Calls), r.dl.Calls)
	}
	scl, sda := r.od.Lines()
	if scl || !sda {
		t.Fatalf("after byte: scl=%v sda=%v, want clock low and data released", scl, sda)
	}
}

func TestSendByte_AckFromTarget(t *testing.T) {
	tgt := haltest.NewTarget(0x42)
	r := newRig(t, tgt)
	r.bus.Start()
	// 0x42<<1 | read = 0x85
	if !r.bus.SendByte(0x85) {
		t.Fatalf("target at 0x42 should acknowledge its address")
	}
	if tgt.Addressed != 1 {
		t.Fatalf("addressed = %d", tgt.Addressed)
	}
	r.bus.Stop()
}

func TestSendByte_WrongAddressNotAcked(t *testing.T) {
	tgt := haltest.NewTarget(0x40)
	r := newRig(t, tgt)
	r.bus.Start()
	if r.bus.SendByte(0x42 << 1) {
		t.Fatalf("target at 0x40 must not acknowledge 0x42")
	}
	r.bus.Stop()
}

// ---- Claim / release ----

func TestClaimRelease(t *testing.T) {
	r := newRig(t)
	r.od.SetFunction(pinSCL, periph)
	r.od.SetFunction(pinSDA, periph)
	r.od.ResetCounters()

	r.bus.Claim(20)
	for _, p := range []hal.Pin{pinSCL, pinSDA} {
		if r.od.Function(p) != hal.FuncGPIO || r.od.Direction(p) != hal.Input {
			t.Fatalf("pin %+v not claimed as GPIO input", p)
		}
	}
	if len(r.dl.Calls) != 1 || r.dl.Calls[0] != 20 {
		t.Fatalf("claim settle = %v", r.dl.Calls)
	}

	r.bus.Release()
	for _, p := range []hal.Pin{pinSCL, pinSDA} {
		if r.od.Function(p) != periph {
			t.Fatalf("pin %+v not returned to peripheral function", p)
		}
		if r.od.Direction(p) != hal.Output {
			t.Fatalf("pin %+v not left as output", p)
		}
	}
	scl, sda := r.od.Lines()
	if !scl || !sda {
		t.Fatalf("released lines must be high")
	}
}

// ---- drivers.I2C ----

func TestTx_WriteThenRead(t *testing.T) {
	tgt := haltest.NewTarget(0x42)
	tgt.Regs[0x03] = 0xA5
	tgt.Regs[0x04] = 0x5A
	r := newRig(t, tgt)

	var buf [2]byte
	if err := r.bus.Tx(0x42, []byte{0x03}, buf[:]); err != nil {
		t.Fatalf("Tx: %v", err)
	}
	if buf != [2]byte{0xA5, 0x5A} {
		t.Fatalf("read % X, want A5 5A", buf[:])
	}
	if r.od.Starts != 2 || r.od.Stops != 1 {
		t.Fatalf("starts=%d stops=%d, want repeated START then one STOP", r.od.Starts, r.od.Stops)
	}
	scl, sda := r.od.Lines()
	if !scl || !sda {
		t.Fatalf("bus not idle after Tx")
	}
}

func TestTx_WriteOnly(t *testing.T) {
	tgt := haltest.NewTarget(0x42)
	r := newRig(t, tgt)
	if err := r.bus.Tx(0x42, []byte{0x06, 0x30, 0x31}, nil); err != nil {
		t.Fatalf("Tx: %v", err)
	}
	if tgt.Regs[0x06] != 0x30 || tgt.Regs[0x07] != 0x31 {
		t.Fatalf("auto-increment write failed: %02X %02X", tgt.Regs[0x06], tgt.Regs[0x07])
	}
}

func TestTx_Errors(t *testing.T) {
	r := newRig(t)
	if err := r.bus.Tx(0x42, []byte{0x00}, nil); !errors.Is(err, errcode.NoAck) {
		t.Fatalf("absent target: got %v", err)
	}
	var b [1]byte
	if err := r.bus.Tx(0x42, nil, b[:]); !errors.Is(err, errcode.NoAck) {
		t.Fatalf("absent target read: got %v", err)
	}
	if err := r.bus.Tx(0x200, nil, nil); errcode.Of(err) != errcode.Unsupported {
		t.Fatalf("10-bit address: got %v", err)
	}
	if r.od.Starts != r.od.Stops {
		t.Fatalf("every START must be closed: starts=%d stops=%d", r.od.Starts, r.od.Stops)
	}
}
