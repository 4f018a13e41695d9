package robot

import (
	"fmt"
	"slices"

	"github.com/kinetree/kinetree/pkg/spatial"
	"github.com/kinetree/kinetree/pkg/tree"
)

// KinematicChain is an ordered root-to-end path of link nodes, the unit of
// work handed to single-limb IK solvers.
//
// The chain shares its nodes with the tree it was derived from: joint
// angles set through either view are visible through the other. Transform
// is a base transform composed before the first link; it defaults to
// identity.
type KinematicChain struct {
	Name      string
	Transform spatial.Transform

	nodes []*LinkNode // root first, end last
}

// NewKinematicChain builds a chain from the tree root (or any ancestor
// acting as chain root) down to end, by walking end's ancestors and
// reversing into root-first order.
func NewKinematicChain(name string, end *LinkNode) *KinematicChain {
	nodes := tree.Ancestors(end)
	slices.Reverse(nodes)
	return &KinematicChain{
		Name:      name,
		Transform: spatial.Identity(),
		nodes:     nodes,
	}
}

// Nodes returns the chain's nodes in root-to-end order. The returned
// slice is the chain's own; do not modify it.
func (c *KinematicChain) Nodes() []*LinkNode { return c.nodes }

// EndTransform computes the pose of the chain's end: the base transform
// left-folded with each link's local transform in root-to-end order.
//
// The computation is self-contained - it neither reads nor writes the
// world-transform cache maintained by LinkTree.ComputeLinkTransforms, so
// a chain's answer does not depend on what the owning tree last computed.
func (c *KinematicChain) EndTransform() spatial.Transform {
	out := c.Transform
	for _, n := range c.nodes {
		out = out.Mul(n.Data.CalcTransform())
	}
	return out
}

// DOF returns the number of non-fixed joints on the chain.
func (c *KinematicChain) DOF() int {
	dof := 0
	for _, n := range c.nodes {
		if n.Data.HasJointAngle() {
			dof++
		}
	}
	return dof
}

// JointAngles returns the angles of the chain's non-fixed joints in chain
// order.
func (c *KinematicChain) JointAngles() []float64 {
	var out []float64
	for _, n := range c.nodes {
		if a, ok := n.Data.JointAngle(); ok {
			out = append(out, a)
		}
	}
	return out
}

// SetJointAngles assigns angles to the chain's non-fixed joints in chain
// order. Returns ErrSizeMismatch before any write when len(angles) does
// not match the chain's DOF; a per-joint failure aborts without rolling
// back earlier assignments, same as the tree-level operation.
func (c *KinematicChain) SetJointAngles(angles []float64) error {
	if len(angles) != c.DOF() {
		return fmt.Errorf("chain %q: got %d angles, want %d: %w",
			c.Name, len(angles), c.DOF(), ErrSizeMismatch)
	}
	i := 0
	for _, n := range c.nodes {
		if !n.Data.HasJointAngle() {
			continue
		}
		if err := n.Data.SetJointAngle(angles[i]); err != nil {
			return err
		}
		i++
	}
	return nil
}

// JointNames returns the names of the chain's non-fixed joints in chain
// order.
func (c *KinematicChain) JointNames() []string {
	var out []string
	for _, n := range c.nodes {
		if n.Data.HasJointAngle() {
			out = append(out, n.Data.JointName())
		}
	}
	return out
}

// End returns the chain's end node.
func (c *KinematicChain) End() *LinkNode { return c.nodes[len(c.nodes)-1] }
