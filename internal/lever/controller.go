package lever

import (
	"fmt"
	"math"

	"github.com/alkime/steplever/pkg/collections"
	"github.com/alkime/steplever/pkg/signals"
	"github.com/alkime/steplever/pkg/vec3"
)

// Controller runs one stepped lever: it quantizes a tracked pointer into
// detents, keeps the handle angle for rendering, and fires a payload-free
// signal per detent on every value change.
//
// The handle angle follows the pointer continuously while held; only the
// discrete value moves in detents. The two are deliberately decoupled so
// hosts can render a free-swinging handle over a stepped value.
//
// A Controller has a single owner and is not safe for concurrent use;
// concurrent hosts serialize around it. Signal dispatch is synchronous,
// and listeners must not call back into the same controller.
type Controller struct {
	cfg    Config
	table  StepTable
	bank   *signals.Bank
	mount  Mount
	right  vec3.Vector // cross(RotationAxis, UpAxis), the in-plane sine reference
	angle  float64     // live handle angle in degrees
	step   int
	holder Interactor // nil while idle
}

// New creates a controller for cfg. A nil mount means the lever sits at
// the world origin with no rotation.
func New(cfg Config, mount Mount) (*Controller, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()

	table, err := NewStepTable(cfg.MinAngle, cfg.MaxAngle, cfg.StepCount)
	if err != nil {
		return nil, err
	}

	if mount == nil {
		mount = FixedMount{Pose: vec3.IdentityTransform()}
	}

	step := collections.Clamp(cfg.InitialStep, 0, cfg.StepCount-1)

	return &Controller{
		cfg:   cfg,
		table: table,
		bank:  signals.NewBank(cfg.StepCount),
		mount: mount,
		right: cfg.RotationAxis.Cross(cfg.UpAxis),
		angle: table.Angle(step),
		step:  step,
	}, nil
}

// Grab puts the lever under actor's control and reports whether it took
// hold. Grabbing an already held lever, or passing a nil actor, changes
// nothing and returns false.
func (c *Controller) Grab(actor Interactor) bool {
	if actor == nil || c.holder != nil {
		return false
	}
	c.holder = actor
	return true
}

// Release lets go of the handle and snaps it onto the current detent,
// whatever LockToValue says. Releasing an idle lever is a no-op.
func (c *Controller) Release() {
	if c.holder == nil {
		return
	}
	c.holder = nil
	c.apply(c.step, true)
}

// Track advances the lever one tick toward the tracked pointer's world
// position. While idle it does nothing, so schedulers may call it
// unconditionally.
func (c *Controller) Track(pointer vec3.Vector) {
	if c.holder == nil {
		return
	}

	dir := c.mount.WorldToLocal(pointer.Sub(c.mount.HandleOrigin())).Normalize()
	if dir.IsZero() || !dir.IsFinite() {
		// Pointer at the pivot or garbage input: no direction this tick.
		return
	}

	raw := vec3.Degrees(math.Atan2(c.right.Dot(dir), c.cfg.UpAxis.Dot(dir)))
	raw = collections.Clamp(raw, c.cfg.MinAngle, c.cfg.MaxAngle)

	c.angle = raw
	c.apply(c.table.Nearest(raw), false)
}

// SetValue moves the lever to a detent directly, as a host write. The
// step is clamped into range; a change fires that detent's signal and,
// when the lever is not held, rotates the handle onto the detent.
func (c *Controller) SetValue(step int) {
	c.apply(step, true)
}

// apply is the single write path for the discrete value.
//
// Re-applying the current step only snaps the handle when forced. A
// change always fires exactly the new detent's signal; the handle then
// snaps only if nobody is holding it and the config or the caller asks
// for the rotation.
func (c *Controller) apply(step int, force bool) {
	step = collections.Clamp(step, 0, c.table.Len()-1)

	if step == c.step {
		if force {
			c.angle = c.table.Angle(step)
		}
		return
	}

	c.step = step
	c.bank.Signal(step).Emit()

	if c.holder == nil && (c.cfg.LockToValue || force) {
		c.angle = c.table.Angle(step)
	}
}

// Reconfigure swaps the lever's configuration in place. On any validation
// error the previous configuration stays fully in effect.
//
// A successful reconfigure rebuilds the step table and the signal bank,
// dropping every step subscription. The current step is clamped into the
// new range; the handle snaps onto it when idle with LockToValue, and is
// otherwise clamped into the new span.
func (c *Controller) Reconfigure(cfg Config) error {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg = cfg.normalized()

	table, err := NewStepTable(cfg.MinAngle, cfg.MaxAngle, cfg.StepCount)
	if err != nil {
		return err
	}

	c.cfg = cfg
	c.table = table
	c.right = cfg.RotationAxis.Cross(cfg.UpAxis)
	c.bank.Rebuild(cfg.StepCount)
	c.step = collections.Clamp(c.step, 0, cfg.StepCount-1)

	if c.holder == nil && cfg.LockToValue {
		c.angle = c.table.Angle(c.step)
	} else {
		c.angle = collections.Clamp(c.angle, cfg.MinAngle, cfg.MaxAngle)
	}

	return nil
}

// OnStep runs fn every time the lever lands on detent i and returns a
// handle to disconnect it. Subscriptions are dropped by Reconfigure.
func (c *Controller) OnStep(i int, fn func()) (signals.Handle, error) {
	if i < 0 || i >= c.bank.Len() {
		return signals.Handle{}, fmt.Errorf("%w: index %d with %d steps", ErrNoSuchStep, i, c.bank.Len())
	}
	return c.bank.Signal(i).Connect(fn), nil
}

// Value returns the current detent index.
func (c *Controller) Value() int {
	return c.step
}

// Angle returns the live handle angle in degrees, for pose rendering.
func (c *Controller) Angle() float64 {
	return c.angle
}

// Grabbed reports whether the lever is held.
func (c *Controller) Grabbed() bool {
	return c.holder != nil
}

// Grabber returns the current holder, or nil while idle.
func (c *Controller) Grabber() Interactor {
	return c.holder
}

// Steps returns the configured detent count.
func (c *Controller) Steps() int {
	return c.table.Len()
}

// Config returns the active configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// StepAngles returns a copy of the detent angle table.
func (c *Controller) StepAngles() []float64 {
	return c.table.Angles()
}
