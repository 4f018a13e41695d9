// Package spatial provides rigid 3D transforms for kinematic computation.
//
// A [Transform] is a rotation followed by a translation (an isometry),
// represented internally as a 4x4 homogeneous matrix from the
// github.com/deadsy/sdfx geometry library. Transforms compose by
// multiplication: given a parent world transform P and a local transform L,
// the child world transform is P.Mul(L).
package spatial

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Transform is a rigid transform (rotation + translation).
// The zero value is NOT the identity; use [Identity] instead.
type Transform struct {
	m sdf.M44
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{m: sdf.Identity3d()}
}

// Translation returns a pure translation by v.
func Translation(v v3.Vec) Transform {
	return Transform{m: sdf.Translate3d(v)}
}

// Rotation returns a pure rotation of angle radians about the given axis
// (right hand rule). The axis does not need to be normalized.
func Rotation(axis v3.Vec, angle float64) Transform {
	return Transform{m: sdf.Rotate3d(axis, angle)}
}

// Mul composes two transforms. t.Mul(o) applies o first, then t - the usual
// matrix product t*o, so parentWorld.Mul(childLocal) yields the child's
// world transform.
func (t Transform) Mul(o Transform) Transform {
	return Transform{m: t.m.Mul(o.m)}
}

// Apply transforms the point p.
func (t Transform) Apply(p v3.Vec) v3.Vec {
	return t.m.MulPosition(p)
}

// Position returns the translation component of the transform, i.e. the
// image of the origin.
func (t Transform) Position() v3.Vec {
	return t.m.MulPosition(v3.Vec{})
}

// ApproxEqual reports whether two transforms agree to within tol. It
// compares the images of the origin and the three basis points, which is
// sufficient for rigid transforms.
func (t Transform) ApproxEqual(o Transform, tol float64) bool {
	probes := []v3.Vec{
		{},
		{X: 1},
		{Y: 1},
		{Z: 1},
	}
	for _, p := range probes {
		a, b := t.Apply(p), o.Apply(p)
		if math.Abs(a.X-b.X) > tol || math.Abs(a.Y-b.Y) > tol || math.Abs(a.Z-b.Z) > tol {
			return false
		}
	}
	return true
}

// String formats the transform as its position, which is usually the
// interesting part when debugging kinematics.
func (t Transform) String() string {
	p := t.Position()
	return fmt.Sprintf("pos(%.4f, %.4f, %.4f)", p.X, p.Y, p.Z)
}
