package uictl

import "golang.org/x/exp/constraints"

type Number interface {
	constraints.Integer | constraints.Float
}

// Knob is a simple on/off toggle control.
type Knob interface {
	Read() bool
	On()
	Off()
	Toggle()
}

// Dial is a control that can read some value.
type Dial[N Number] interface {
	Read() N
}

// CappedDial is a Dial with a maximum cap value.
type CappedDial[N Number] interface {
	Dial[N]
	Cap() (num, max N)
}

// SteppedDial is a Dial with a fixed number of discrete positions.
type SteppedDial[N Number] interface {
	Dial[N]
	Steps() int
}

// RangeDial is a Dial bounded to an inclusive range.
// The bounds may run in either direction.
type RangeDial[N Number] interface {
	Dial[N]
	Range() (lo, hi N)
}

// Levels is a control that can read multiple float32 levels.
type Levels[N Number] interface {
	Read() []N
}
