package lever

import "github.com/alkime/steplever/pkg/vec3"

// Mount supplies the lever's pose: where the handle pivot sits in the
// world and how world directions map into the lever frame. Hosts whose
// levers ride on moving platforms implement Mount over their live pose.
type Mount interface {
	HandleOrigin() vec3.Vector
	WorldToLocal(dir vec3.Vector) vec3.Vector
}

// FixedMount is a Mount at a constant pose.
type FixedMount struct {
	Pose vec3.Transform
}

// NewFixedMount creates a mount at the given pose.
func NewFixedMount(pose vec3.Transform) FixedMount {
	return FixedMount{Pose: pose}
}

func (m FixedMount) HandleOrigin() vec3.Vector {
	return m.Pose.Position
}

func (m FixedMount) WorldToLocal(dir vec3.Vector) vec3.Vector {
	return m.Pose.WorldToLocalDir(dir)
}

// Interactor identifies whoever is holding the handle. The controller
// keeps the reference only while the grab lasts and never calls back
// into it.
type Interactor interface {
	InteractorID() string
}

// ActorID is a plain string Interactor for hosts without richer identity.
type ActorID string

func (a ActorID) InteractorID() string {
	return string(a)
}
