package lever

import (
	"fmt"
	"math"

	"github.com/alkime/steplever/pkg/vec3"
)

const (
	// MinStepCount is the smallest usable number of detents.
	MinStepCount = 2
	// MaxStepCount bounds the detent count to keep tables and signal
	// banks small.
	MaxStepCount = 99

	// DefaultMinAngle and DefaultMaxAngle span a symmetric throw.
	DefaultMinAngle = -60.0
	DefaultMaxAngle = 60.0
	// DefaultStepCount gives detents every 30 degrees on the default span.
	DefaultStepCount = 5
)

var (
	// DefaultRotationAxis pitches the handle around local X.
	DefaultRotationAxis = vec3.UnitX
	// DefaultUpAxis is the zero-angle reference direction.
	DefaultUpAxis = vec3.UnitY
)

// Config describes one lever: its angular throw, detent count, rotation
// frame and snapping behavior.
//
// MinAngle does not have to be below MaxAngle; a descending span reverses
// the direction of travel and is preserved as given.
type Config struct {
	// MinAngle is the angle of step 0 in degrees.
	MinAngle float64 `json:"min_angle"`

	// MaxAngle is the angle of the last step in degrees.
	MaxAngle float64 `json:"max_angle"`

	// StepCount is the number of detents, between 2 and 99.
	StepCount int `json:"step_count"`

	// RotationAxis is the handle's hinge axis in the lever frame.
	RotationAxis vec3.Vector `json:"rotation_axis"`

	// UpAxis is the in-plane direction that reads as zero degrees.
	UpAxis vec3.Vector `json:"up_axis"`

	// LockToValue snaps the handle to the detent angle whenever it is
	// not held.
	LockToValue bool `json:"lock_to_value"`

	// InitialStep is the starting detent, clamped into range.
	InitialStep int `json:"initial_step"`
}

// Validate returns an error wrapping ErrInvalidConfig if the config
// cannot produce a working lever.
func (c Config) Validate() error {
	if c.StepCount < MinStepCount || c.StepCount > MaxStepCount {
		return fmt.Errorf("%w: step count must be between %d and %d, got %d",
			ErrInvalidConfig, MinStepCount, MaxStepCount, c.StepCount)
	}

	if math.IsNaN(c.MinAngle) || math.IsInf(c.MinAngle, 0) ||
		math.IsNaN(c.MaxAngle) || math.IsInf(c.MaxAngle, 0) {
		return fmt.Errorf("%w: angles must be finite", ErrInvalidConfig)
	}

	if c.MinAngle == c.MaxAngle {
		return fmt.Errorf("%w: min and max angle are both %v", ErrInvalidConfig, c.MinAngle)
	}

	if !c.RotationAxis.IsFinite() || !c.UpAxis.IsFinite() {
		return fmt.Errorf("%w: axes must be finite", ErrInvalidConfig)
	}

	if c.RotationAxis.IsZero() || c.UpAxis.IsZero() {
		return fmt.Errorf("%w: axes must be non-zero", ErrInvalidConfig)
	}

	// Colinear axes leave no rotation plane to project onto.
	if c.RotationAxis.Normalize().Cross(c.UpAxis.Normalize()).Length() < 1e-9 {
		return fmt.Errorf("%w: rotation axis and up axis are colinear", ErrInvalidConfig)
	}

	return nil
}

// WithDefaults returns a config with default values applied to zero fields.
// The angle pair is only defaulted when both bounds are zero, so a span
// that legitimately starts at zero is left alone.
func (c Config) WithDefaults() Config {
	if c.MinAngle == 0 && c.MaxAngle == 0 {
		c.MinAngle = DefaultMinAngle
		c.MaxAngle = DefaultMaxAngle
	}

	if c.StepCount == 0 {
		c.StepCount = DefaultStepCount
	}

	if c.RotationAxis.IsZero() {
		c.RotationAxis = DefaultRotationAxis
	}

	if c.UpAxis.IsZero() {
		c.UpAxis = DefaultUpAxis
	}

	return c
}

// normalized returns the config with unit-length axes.
// Callers validate first; a zero axis would stay zero.
func (c Config) normalized() Config {
	c.RotationAxis = c.RotationAxis.Normalize()
	c.UpAxis = c.UpAxis.Normalize()
	return c
}

// Span returns the angular bounds in ascending order.
func (c Config) Span() (lo, hi float64) {
	if c.MinAngle > c.MaxAngle {
		return c.MaxAngle, c.MinAngle
	}
	return c.MinAngle, c.MaxAngle
}
