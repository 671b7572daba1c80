package sim

import (
	"fmt"
	"time"

	"github.com/alkime/steplever/internal/lever"
	"github.com/alkime/steplever/pkg/vec3"
)

const (
	// DefaultSweepTicks samples each leg finely enough to visit every
	// detent of even a 99-step lever.
	DefaultSweepTicks = 200
	// DefaultSweepPeriod spaces samples at a typical tracker frame time.
	DefaultSweepPeriod = 10 * time.Millisecond
	// DefaultSweepRadius is the pointer's distance from the pivot.
	DefaultSweepRadius = 1.0
)

// SweepOptions shape a synthesized min-to-max-and-back pointer pass.
type SweepOptions struct {
	// Ticks is the number of samples per leg.
	Ticks int

	// Period is the time between consecutive samples.
	Period time.Duration

	// Radius is the pointer's distance from the pivot.
	Radius float64
}

// WithDefaults returns options with default values applied to zero fields.
func (o SweepOptions) WithDefaults() SweepOptions {
	if o.Ticks == 0 {
		o.Ticks = DefaultSweepTicks
	}

	if o.Period == 0 {
		o.Period = DefaultSweepPeriod
	}

	if o.Radius == 0 {
		o.Radius = DefaultSweepRadius
	}

	return o
}

// Validate returns an error if the options cannot produce a sweep.
func (o SweepOptions) Validate() error {
	if o.Ticks < 2 {
		return fmt.Errorf("sweep needs at least 2 ticks per leg, got %d", o.Ticks)
	}

	if o.Period <= 0 {
		return fmt.Errorf("sweep period must be positive")
	}

	if o.Radius <= 0 {
		return fmt.Errorf("sweep radius must be positive")
	}

	return nil
}

// Sweep generates a trace that walks the lever's span from the min angle
// to the max angle and back, visiting every detent along the way.
func Sweep(cfg lever.Config, pose vec3.Transform, opts SweepOptions) (*Trace, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	orbiter := NewOrbiter(cfg, pose, opts.Radius)
	width := (cfg.MaxAngle - cfg.MinAngle) / float64(opts.Ticks-1)

	trace := &Trace{
		Name:    fmt.Sprintf("sweep %v to %v", cfg.MinAngle, cfg.MaxAngle),
		Samples: make([]Sample, 0, 2*opts.Ticks),
	}

	tick := 0
	record := func(angle float64) {
		trace.Samples = append(trace.Samples, Sample{
			At:  time.Duration(tick) * opts.Period,
			Pos: orbiter.WorldAt(angle),
		})
		tick++
	}

	for i := 0; i < opts.Ticks; i++ {
		record(cfg.MinAngle + float64(i)*width)
	}
	for i := opts.Ticks - 1; i >= 0; i-- {
		record(cfg.MinAngle + float64(i)*width)
	}

	return trace, nil
}
