package board

import (
	"strings"
	"testing"

	"bringup-go/power"
)

func TestLubanCat4_Valid(t *testing.T) {
	b := LubanCat4
	if err := b.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	sel, err := b.VoltageSelector()
	if err != nil || sel != 0x30 {
		t.Fatalf("selector %#x, %v", sel, err)
	}
	r, ok := power.Find(b.NPURails, "vdd_npu_s0")
	if !ok || r.Microvolts != b.Microvolts {
		t.Fatalf("NPU rail %v does not match bring-up voltage %d", r, b.Microvolts)
	}
	if len(b.MasterRails) != 17 || len(b.Skipped) != 2 {
		t.Fatalf("rails %d skipped %d", len(b.MasterRails), len(b.Skipped))
	}
	for _, w := range append(append([]RegWrite(nil), b.Clocks...), b.Resets...) {
		if w.Value != 0xFFFF0000 || w.Block.Name != "cru" {
			t.Fatalf("%s: %+v", w.Name, w)
		}
	}
}

func TestValidate_Rejects(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*Board)
		want string
	}{
		{"freq", func(b *Board) { b.FrequencyKHz = 600 }, "zero half period"},
		{"attempts", func(b *Board) { b.Attempts = 0 }, "attempts 0"},
		{"addr", func(b *Board) { b.Addr = 0x80 }, "7-bit"},
		{"pins", func(b *Board) { b.Bus.SDA = b.Bus.SCL }, "share a pin"},
		{"mux", func(b *Board) { b.Bus.Peripheral = 0 }, "must not be GPIO"},
		{"voltage", func(b *Board) { b.Microvolts = 801000 }, "out of range"},
		{"enable", func(b *Board) { b.EnableValue = 0 }, "enable value"},
		{"clocks", func(b *Board) { b.Clocks = nil }, "no clock"},
		{"resets", func(b *Board) { b.Resets = nil }, "no reset"},
		{"dup", func(b *Board) { b.NPURails = append(b.NPURails, b.MasterRails[0]) }, "listed twice"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := LubanCat4
			c.mod(&b)
			err := b.Validate()
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Fatalf("got %v, want %q", err, c.want)
			}
		})
	}
}
