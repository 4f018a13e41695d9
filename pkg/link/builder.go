package link

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/kinetree/kinetree/pkg/spatial"
)

// Builder assembles a [Link] step by step. The zero Builder produces an
// unnamed link with an identity base transform and a fixed joint.
//
//	l := link.NewBuilder().
//		Name("upper_arm").
//		Translation(v3.Vec{Y: 0.1}).
//		Joint("shoulder", link.JointRotational, v3.Vec{Y: 1}).
//		Finalize()
type Builder struct {
	name      string
	transform spatial.Transform
	joint     Joint
}

// NewBuilder returns a Builder with identity transform and a fixed joint.
func NewBuilder() *Builder {
	return &Builder{transform: spatial.Identity(), joint: Joint{Type: JointFixed}}
}

// Name sets the link name.
func (b *Builder) Name(name string) *Builder {
	b.name = name
	return b
}

// Translation composes a translation into the base transform.
func (b *Builder) Translation(v v3.Vec) *Builder {
	b.transform = b.transform.Mul(spatial.Translation(v))
	return b
}

// Rotation composes a rotation (angle radians about axis) into the base
// transform.
func (b *Builder) Rotation(axis v3.Vec, angle float64) *Builder {
	b.transform = b.transform.Mul(spatial.Rotation(axis, angle))
	return b
}

// Joint sets the joint name, type, and axis.
func (b *Builder) Joint(name string, typ JointType, axis v3.Vec) *Builder {
	b.joint.Name = name
	b.joint.Type = typ
	b.joint.Axis = axis
	return b
}

// Limits sets the joint's mechanical range.
func (b *Builder) Limits(min, max float64) *Builder {
	b.joint.Limits = &Range{Min: min, Max: max}
	return b
}

// Finalize builds the link. The Builder must not be reused afterwards
// since the returned link shares the builder's joint value.
func (b *Builder) Finalize() *Link {
	j := b.joint
	return &Link{
		Name:      b.name,
		Transform: b.transform,
		Joint:     &j,
	}
}
