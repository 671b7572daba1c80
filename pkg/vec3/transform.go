package vec3

import "math"

// Basis is an orthonormal orientation: the local X, Y and Z axes
// expressed in world coordinates.
type Basis struct {
	X, Y, Z Vector
}

// IdentityBasis returns the basis aligned with the world axes.
func IdentityBasis() Basis {
	return Basis{X: UnitX, Y: UnitY, Z: UnitZ}
}

// AxisAngle returns the basis produced by rotating the identity basis
// around axis by the given angle in degrees. The axis is normalized
// internally; a zero axis yields the identity basis.
func AxisAngle(axis Vector, degrees float64) Basis {
	if axis.IsZero() {
		return IdentityBasis()
	}
	return Basis{
		X: rotate(UnitX, axis.Normalize(), Radians(degrees)),
		Y: rotate(UnitY, axis.Normalize(), Radians(degrees)),
		Z: rotate(UnitZ, axis.Normalize(), Radians(degrees)),
	}
}

// rotate applies the Rodrigues rotation of v around unit axis k by angle rad.
func rotate(v, k Vector, rad float64) Vector {
	sin, cos := math.Sin(rad), math.Cos(rad)
	return v.Scale(cos).
		Add(k.Cross(v).Scale(sin)).
		Add(k.Scale(k.Dot(v) * (1 - cos)))
}

// WorldToLocal expresses a world-space direction in the basis frame.
func (b Basis) WorldToLocal(dir Vector) Vector {
	return Vector{X: b.X.Dot(dir), Y: b.Y.Dot(dir), Z: b.Z.Dot(dir)}
}

// LocalToWorld expresses a basis-frame direction in world space.
func (b Basis) LocalToWorld(dir Vector) Vector {
	return b.X.Scale(dir.X).Add(b.Y.Scale(dir.Y)).Add(b.Z.Scale(dir.Z))
}

// Transform is a rigid pose: a position and an orientation.
type Transform struct {
	Position Vector
	Rotation Basis
}

// IdentityTransform returns the pose at the world origin with no rotation.
func IdentityTransform() Transform {
	return Transform{Rotation: IdentityBasis()}
}

// WorldToLocalPoint converts a world-space point into the transform frame.
func (t Transform) WorldToLocalPoint(p Vector) Vector {
	return t.Rotation.WorldToLocal(p.Sub(t.Position))
}

// LocalToWorldPoint converts a transform-frame point into world space.
func (t Transform) LocalToWorldPoint(p Vector) Vector {
	return t.Rotation.LocalToWorld(p).Add(t.Position)
}

// WorldToLocalDir converts a world-space direction into the transform frame.
// Directions ignore the position component.
func (t Transform) WorldToLocalDir(dir Vector) Vector {
	return t.Rotation.WorldToLocal(dir)
}

// LocalToWorldDir converts a transform-frame direction into world space.
func (t Transform) LocalToWorldDir(dir Vector) Vector {
	return t.Rotation.LocalToWorld(dir)
}
