// Package power holds voltage-rail tables and applies them through whatever
// regulator driver owns the rails.
package power

import (
	"errors"
	"fmt"
)

// Rail is one regulator output and the voltage it should be set to.
type Rail struct {
	ID         string // schematic net name, e.g. "vdd_npu_s0"
	Regulator  string // regulator output feeding it, e.g. "BUCK1"
	Microvolts uint32
}

func (r Rail) String() string {
	return fmt.Sprintf("%s(%s)=%duV", r.ID, r.Regulator, r.Microvolts)
}

// Skipped is a rail entry the board source carries but deliberately does
// not program. It is retained as data only.
type Skipped struct {
	Rail   Rail
	Reason string
}

// Setter programs one rail.
type Setter interface {
	SetMicrovolts(id string, uV uint32) error
}

// SetterFunc adapts a function to Setter.
type SetterFunc func(id string, uV uint32) error

func (f SetterFunc) SetMicrovolts(id string, uV uint32) error { return f(id, uV) }

// ApplyAll programs rails in table order. A failing rail does not stop the
// rest; all failures are returned joined.
func ApplyAll(rails []Rail, s Setter) error {
	var errs []error
	for _, r := range rails {
		if err := s.SetMicrovolts(r.ID, r.Microvolts); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.ID, err))
		}
	}
	return errors.Join(errs...)
}

// Find returns the rail with id.
func Find(rails []Rail, id string) (Rail, bool) {
	for _, r := range rails {
		if r.ID == id {
			return r, true
		}
	}
	return Rail{}, false
}
