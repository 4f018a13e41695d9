package robot

import (
	"errors"
	"fmt"

	"github.com/kinetree/kinetree/pkg/link"
	"github.com/kinetree/kinetree/pkg/spatial"
	"github.com/kinetree/kinetree/pkg/tree"
)

// ErrSizeMismatch is returned by SetJointAngles (tree and chain level)
// when the angle vector length does not match the degrees of freedom.
// The check happens before any assignment, so nothing is written.
var ErrSizeMismatch = errors.New("joint angle count does not match degrees of freedom")

// LinkNode is a tree node carrying a link.
type LinkNode = tree.Node[*link.Link]

// NewLinkNode wraps a link in an unlinked tree node.
func NewLinkNode(l *link.Link) *LinkNode { return tree.New(l) }

// SetParentChild links child under parent. Convenience re-export of
// [tree.SetParentChild] for mechanism construction.
func SetParentChild(parent, child *LinkNode) { tree.SetParentChild(parent, child) }

// LinkTree is a whole mechanism: the root link node plus a flattened
// pre-order listing of every node, captured once at construction.
// Adding or removing links after construction is unsupported.
type LinkTree struct {
	Name string

	root      *LinkNode
	flattened []*LinkNode
}

// NewLinkTree captures root and computes the flattened traversal order.
// O(n) in the number of nodes.
func NewLinkTree(name string, root *LinkNode) *LinkTree {
	return &LinkTree{
		Name:      name,
		root:      root,
		flattened: tree.Descendants(root),
	}
}

// Root returns the root node.
func (t *LinkTree) Root() *LinkNode { return t.root }

// Nodes returns all nodes in flattened pre-order (ancestor before
// descendant). The returned slice is the tree's own; do not modify it.
func (t *LinkTree) Nodes() []*LinkNode { return t.flattened }

// SetRootTransform overwrites the root link's base transform. Cached world
// transforms are not invalidated eagerly; the next ComputeLinkTransforms
// pass picks up the new base.
func (t *LinkTree) SetRootTransform(tf spatial.Transform) {
	t.root.Data.Transform = tf
}

// ComputeLinkTransforms computes the world transform of every node in
// flattened order and returns them in that order.
//
// Each node composes its parent's cached world transform (identity for the
// root, or when the parent has never been computed) with its own local
// transform, then caches the result. Because the flattened order puts
// every ancestor before its descendants, one linear pass suffices: total
// cost is O(n), not O(n*depth).
func (t *LinkTree) ComputeLinkTransforms() []spatial.Transform {
	out := make([]spatial.Transform, 0, len(t.flattened))
	for _, n := range t.flattened {
		parentWorld := spatial.Identity()
		if p, ok := n.Parent(); ok && p.Data.WorldCache != nil {
			parentWorld = *p.Data.WorldCache
		}
		world := parentWorld.Mul(n.Data.CalcTransform())
		n.Data.WorldCache = &world
		out = append(out, world)
	}
	return out
}

// DOF returns the mechanism's degrees of freedom: the number of links
// whose joint carries an angle.
func (t *LinkTree) DOF() int {
	dof := 0
	for _, n := range t.flattened {
		if n.Data.HasJointAngle() {
			dof++
		}
	}
	return dof
}

// JointAngles returns the current angles of the non-fixed joints in
// flattened order. Its length equals DOF().
func (t *LinkTree) JointAngles() []float64 {
	return FilterMapLinks(t, func(l *link.Link) (float64, bool) {
		return l.JointAngle()
	})
}

// SetJointAngles assigns angles to the non-fixed joints in flattened
// order. It returns ErrSizeMismatch (before writing anything) when
// len(angles) != DOF(). A per-joint limit violation aborts the loop and is
// returned; assignments made before the failing index remain applied -
// callers needing atomicity must snapshot JointAngles first.
func (t *LinkTree) SetJointAngles(angles []float64) error {
	if len(angles) != t.DOF() {
		return fmt.Errorf("tree %q: got %d angles, want %d: %w",
			t.Name, len(angles), t.DOF(), ErrSizeMismatch)
	}
	i := 0
	for _, n := range t.flattened {
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

// JointNames returns the names of the non-fixed joints in flattened order.
func (t *LinkTree) JointNames() []string {
	return FilterMapLinks(t, func(l *link.Link) (string, bool) {
		return l.JointName(), l.HasJointAngle()
	})
}

// AllJointNames returns the joint names of every link, fixed joints
// included, in flattened order.
func (t *LinkTree) AllJointNames() []string {
	return MapLinks(t, (*link.Link).JointName)
}

// MapLinks applies f to every link in flattened order and collects the
// results. Exposed for collaborators (IK solvers) needing arbitrary
// per-link projections.
func MapLinks[K any](t *LinkTree, f func(*link.Link) K) []K {
	out := make([]K, 0, len(t.flattened))
	for _, n := range t.flattened {
		out = append(out, f(n.Data))
	}
	return out
}

// FilterMapLinks applies f to every link in flattened order, keeping the
// results for which f reports true.
func FilterMapLinks[K any](t *LinkTree, f func(*link.Link) (K, bool)) []K {
	var out []K
	for _, n := range t.flattened {
		if v, ok := f(n.Data); ok {
			out = append(out, v)
		}
	}
	return out
}
