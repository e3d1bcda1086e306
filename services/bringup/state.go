package bringup

// State is a bring-up sequencer state.
type State uint8

const (
	Idle State = iota
	ClaimBus
	ProgramVoltage
	ProgramEnable
	ReleaseBus
	EnableClocks
	DeassertResets
	Done
	Fatal
)

var stateNames = [...]string{
	Idle:           "Idle",
	ClaimBus:       "ClaimBus",
	ProgramVoltage: "ProgramVoltage",
	ProgramEnable:  "ProgramEnable",
	ReleaseBus:     "ReleaseBus",
	EnableClocks:   "EnableClocks",
	DeassertResets: "DeassertResets",
	Done:           "Done",
	Fatal:          "Fatal",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "State(?)"
}

// Policy says what a step failure means.
type Policy uint8

const (
	// Unconditional steps have no failure path.
	Unconditional Policy = iota
	// FatalOnFailure steps divert the sequence to Fatal.
	FatalOnFailure
)

// Step is one entry of the fixed sequence.
type Step struct {
	Name    string
	State   State
	Policy  Policy
	Cleanup bool // also runs after a fatal failure
}

// sequence is the bring-up order.
var sequence = [...]Step{
	{Name: "claim bus", State: ClaimBus, Policy: Unconditional},
	{Name: "program voltage", State: ProgramVoltage, Policy: FatalOnFailure},
	{Name: "program enable", State: ProgramEnable, Policy: FatalOnFailure},
	{Name: "release bus", State: ReleaseBus, Policy: Unconditional, Cleanup: true},
	{Name: "enable clocks", State: EnableClocks, Policy: Unconditional},
	{Name: "deassert resets", State: DeassertResets, Policy: Unconditional},
}

// Steps returns a copy of the bring-up order.
func Steps() []Step {
	out := make([]Step, len(sequence))
	copy(out, sequence[:])
	return out
}
