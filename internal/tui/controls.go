// Package tui provides the interactive lever demo.
package tui

import (
	"github.com/alkime/steplever/pkg/uictl"
)

// LeverControls provides read/write access to a hosted lever.
// The dials report live lever state; the funcs drive it. Hosts wire
// these to a controller and its pointer source.
type LeverControls struct {
	Angle      uictl.RangeDial[float64] // Live deflection and span bounds, degrees
	Step       uictl.SteppedDial[int]   // Active detent and step count
	StepAngles uictl.Levels[float64]    // Detent angles for the gauge marks
	Grabbed    uictl.Knob               // Grab state; On/Off acquire and release
	Lock       uictl.Knob               // Lock-to-value behavior

	// Steer feeds one pointer sample at the given deflection angle.
	// Called once per tick while the lever is grabbed.
	Steer func(angleDeg float64)

	// SetValue drives the lever directly to a detent.
	SetValue func(step int)

	// Resize rebuilds the lever with a new step count.
	Resize func(count int) error
}
