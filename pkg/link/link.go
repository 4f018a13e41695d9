// Package link models a single rigid body of an articulated mechanism,
// optionally actuated by one joint.
//
// A [Link] carries a static base transform (its frame relative to the
// parent link) and a [Joint]. The joint contributes a motion transform
// derived from its current angle: a rotation about the joint axis for
// rotational joints, a translation along the axis for linear joints, and
// identity for fixed joints. [Link.CalcTransform] composes both into the
// link's local transform.
package link

import (
	"errors"
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/kinetree/kinetree/pkg/spatial"
)

// ErrOutOfRange is returned by [Link.SetJointAngle] when the requested
// angle violates the joint's mechanical limits.
var ErrOutOfRange = errors.New("joint angle out of range")

// JointType identifies how a joint moves relative to its parent link.
type JointType int

const (
	// JointFixed is a rigid attachment with no degree of freedom.
	JointFixed JointType = iota
	// JointRotational rotates about the joint axis by the joint angle (radians).
	JointRotational
	// JointLinear translates along the joint axis by the joint angle (meters).
	JointLinear
)

// String returns the lowercase name of the joint type.
func (t JointType) String() string {
	switch t {
	case JointRotational:
		return "rotational"
	case JointLinear:
		return "linear"
	default:
		return "fixed"
	}
}

// Range is a closed interval of valid joint angles.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether a lies within the range, inclusive.
func (r Range) Contains(a float64) bool { return a >= r.Min && a <= r.Max }

// Joint is a single actuation degree of freedom between a link and its
// parent. Fixed joints carry no angle.
type Joint struct {
	Name   string
	Type   JointType
	Axis   v3.Vec
	Limits *Range // nil means unlimited

	angle float64
}

// Angle returns the current joint angle. Meaningless for fixed joints.
func (j *Joint) Angle() float64 { return j.angle }

// Link is one rigid body in a mechanism.
//
// Transform is the static offset of this link's frame relative to its
// parent and may be overwritten (the tree root's base transform is set
// this way). WorldCache holds the most recently computed world transform;
// it is maintained by the tree-level forward-kinematics pass and is nil
// until the first pass.
type Link struct {
	Name       string
	Transform  spatial.Transform
	Joint      *Joint
	WorldCache *spatial.Transform
}

// HasJointAngle reports whether the link's joint carries an angle,
// i.e. whether the joint type is not fixed.
func (l *Link) HasJointAngle() bool {
	return l.Joint != nil && l.Joint.Type != JointFixed
}

// JointAngle returns the current joint angle and true, or 0 and false for
// fixed joints.
func (l *Link) JointAngle() (float64, bool) {
	if !l.HasJointAngle() {
		return 0, false
	}
	return l.Joint.angle, true
}

// SetJointAngle sets the joint angle. It returns a wrapped [ErrOutOfRange]
// when the angle violates the joint limits, and an error for fixed joints,
// which have no angle to set.
func (l *Link) SetJointAngle(a float64) error {
	if !l.HasJointAngle() {
		return fmt.Errorf("joint %q is fixed: %w", l.JointName(), ErrOutOfRange)
	}
	if lim := l.Joint.Limits; lim != nil && !lim.Contains(a) {
		return fmt.Errorf("joint %q: angle %.4f outside [%.4f, %.4f]: %w",
			l.Joint.Name, a, lim.Min, lim.Max, ErrOutOfRange)
	}
	l.Joint.angle = a
	return nil
}

// JointName returns the joint's name, or the link name when the link has
// no joint of its own.
func (l *Link) JointName() string {
	if l.Joint == nil || l.Joint.Name == "" {
		return l.Name
	}
	return l.Joint.Name
}

// CalcTransform returns the link's local transform: the static base
// transform composed with the joint's motion at its current angle.
func (l *Link) CalcTransform() spatial.Transform {
	if l.Joint == nil {
		return l.Transform
	}
	switch l.Joint.Type {
	case JointRotational:
		return l.Transform.Mul(spatial.Rotation(l.Joint.Axis, l.Joint.angle))
	case JointLinear:
		return l.Transform.Mul(spatial.Translation(l.Joint.Axis.MulScalar(l.Joint.angle)))
	default:
		return l.Transform
	}
}
