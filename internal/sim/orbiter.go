package sim

import (
	"math"

	"github.com/alkime/steplever/internal/lever"
	"github.com/alkime/steplever/pkg/vec3"
)

// Orbiter synthesizes tracked-pointer world positions circling the handle
// pivot in the lever's rotation plane. The demo and the sweep generator
// share it so both produce positions a real tracked hand could occupy.
type Orbiter struct {
	pose   vec3.Transform
	up     vec3.Vector
	right  vec3.Vector
	radius float64
}

// NewOrbiter builds an orbiter for a lever with the given config and pose.
// The config must be valid; radius is the pointer's distance from the
// pivot and must be positive.
func NewOrbiter(cfg lever.Config, pose vec3.Transform, radius float64) Orbiter {
	cfg = cfg.WithDefaults()
	up := cfg.UpAxis.Normalize()
	right := cfg.RotationAxis.Normalize().Cross(up).Normalize()
	if radius <= 0 {
		radius = 1
	}
	return Orbiter{pose: pose, up: up, right: right, radius: radius}
}

// WorldAt returns the world position of a pointer held at the given
// in-plane angle in degrees.
func (o Orbiter) WorldAt(angleDeg float64) vec3.Vector {
	rad := vec3.Radians(angleDeg)
	dir := o.up.Scale(math.Cos(rad)).Add(o.right.Scale(math.Sin(rad)))
	return o.pose.LocalToWorldPoint(dir.Scale(o.radius))
}
