package model

import (
	"errors"
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/kinetree/kinetree/pkg/link"
	"github.com/kinetree/kinetree/pkg/robot"
)

var (
	// ErrNoRoot is returned by [Document.ToTree] when no link has an
	// empty parent.
	ErrNoRoot = errors.New("model has no root link")

	// ErrMultipleRoots is returned by [Document.ToTree] when more than
	// one link has an empty parent.
	ErrMultipleRoots = errors.New("model has multiple root links")

	// ErrUnknownParent is returned by [Document.ToTree] when a link names
	// a parent that does not exist.
	ErrUnknownParent = errors.New("unknown parent link")

	// ErrDuplicateLink is returned by [Document.ToTree] when two links
	// share a name.
	ErrDuplicateLink = errors.New("duplicate link name")

	// ErrUnknownJointType is returned when a joint type string is not
	// one of "fixed", "rotational", "linear".
	ErrUnknownJointType = errors.New("unknown joint type")
)

// Document is the canonical serialization format for a robot model. It is
// what the loaders produce, what the model store persists, and what the
// HTTP API accepts; [Document.ToTree] turns it into a live mechanism.
type Document struct {
	Name  string     `json:"name" bson:"name" toml:"name"`
	Links []LinkSpec `json:"links" bson:"links" toml:"links"`
}

// LinkSpec describes one link. Exactly one link per document must have an
// empty Parent; that link is the tree root.
type LinkSpec struct {
	Name        string        `json:"name" bson:"name" toml:"name"`
	Parent      string        `json:"parent,omitempty" bson:"parent,omitempty" toml:"parent"`
	Translation [3]float64    `json:"translation,omitempty" bson:"translation,omitempty" toml:"translation"`
	Rotation    *RotationSpec `json:"rotation,omitempty" bson:"rotation,omitempty" toml:"rotation"`
	RPY         *[3]float64   `json:"rpy,omitempty" bson:"rpy,omitempty" toml:"rpy"`
	Joint       *JointSpec    `json:"joint,omitempty" bson:"joint,omitempty" toml:"joint"`
}

// RotationSpec is an axis-angle rotation of the link's base frame.
type RotationSpec struct {
	Axis  [3]float64 `json:"axis" bson:"axis" toml:"axis"`
	Angle float64    `json:"angle" bson:"angle" toml:"angle"`
}

// JointSpec describes a link's joint. Type is "fixed", "rotational", or
// "linear"; Limits, when present, is [min, max].
type JointSpec struct {
	Name   string      `json:"name" bson:"name" toml:"name"`
	Type   string      `json:"type" bson:"type" toml:"type"`
	Axis   [3]float64  `json:"axis,omitempty" bson:"axis,omitempty" toml:"axis"`
	Limits *[2]float64 `json:"limits,omitempty" bson:"limits,omitempty" toml:"limits"`
}

func vec(a [3]float64) v3.Vec { return v3.Vec{X: a[0], Y: a[1], Z: a[2]} }

func jointType(s string) (link.JointType, error) {
	switch s {
	case "", "fixed":
		return link.JointFixed, nil
	case "rotational":
		return link.JointRotational, nil
	case "linear":
		return link.JointLinear, nil
	default:
		return link.JointFixed, fmt.Errorf("%q: %w", s, ErrUnknownJointType)
	}
}

// buildLink constructs the link for one spec.
func (s LinkSpec) buildLink() (*link.Link, error) {
	b := link.NewBuilder().Name(s.Name).Translation(vec(s.Translation))
	if s.Rotation != nil {
		b.Rotation(vec(s.Rotation.Axis), s.Rotation.Angle)
	}
	if rpy := s.RPY; rpy != nil {
		// Fixed-axis roll-pitch-yaw: Rz(yaw) * Ry(pitch) * Rx(roll).
		b.Rotation(v3.Vec{Z: 1}, rpy[2]).
			Rotation(v3.Vec{Y: 1}, rpy[1]).
			Rotation(v3.Vec{X: 1}, rpy[0])
	}
	if j := s.Joint; j != nil {
		typ, err := jointType(j.Type)
		if err != nil {
			return nil, fmt.Errorf("link %q: %w", s.Name, err)
		}
		b.Joint(j.Name, typ, vec(j.Axis))
		if j.Limits != nil {
			b.Limits(j.Limits[0], j.Limits[1])
		}
	}
	return b.Finalize(), nil
}

// ToTree validates the document and builds the live link tree. Links may
// appear in any order; children are attached in document order.
func (d Document) ToTree() (*robot.LinkTree, error) {
	nodes := make(map[string]*robot.LinkNode, len(d.Links))
	for _, spec := range d.Links {
		if spec.Name == "" {
			return nil, fmt.Errorf("model %q: link with empty name", d.Name)
		}
		if _, exists := nodes[spec.Name]; exists {
			return nil, fmt.Errorf("model %q, link %q: %w", d.Name, spec.Name, ErrDuplicateLink)
		}
		l, err := spec.buildLink()
		if err != nil {
			return nil, err
		}
		nodes[spec.Name] = robot.NewLinkNode(l)
	}

	var root *robot.LinkNode
	for _, spec := range d.Links {
		if spec.Parent == "" {
			if root != nil {
				return nil, fmt.Errorf("model %q: %q and %q: %w",
					d.Name, root.Data.Name, spec.Name, ErrMultipleRoots)
			}
			root = nodes[spec.Name]
			continue
		}
		parent, ok := nodes[spec.Parent]
		if !ok {
			return nil, fmt.Errorf("model %q, link %q: parent %q: %w",
				d.Name, spec.Name, spec.Parent, ErrUnknownParent)
		}
		robot.SetParentChild(parent, nodes[spec.Name])
	}
	if root == nil {
		return nil, fmt.Errorf("model %q: %w", d.Name, ErrNoRoot)
	}

	return robot.NewLinkTree(d.Name, root), nil
}
