// Package tree provides a generic ordered tree with parent back-references
// and the traversal primitives the kinematics packages are built on.
//
// A [Node] owns its children (ordered) and holds a non-owning pointer to
// its parent. Multiple views (a whole-mechanism tree and any number of
// derived chains) may alias the same nodes; mutating a node's payload
// through one view is visible through all others. Nodes are not safe for
// concurrent use without external synchronization.
//
// Traversals are iterative, so arbitrarily deep mechanisms do not risk
// stack growth. They assume the structure is acyclic: a cyclic graph is a
// programming error the package does not detect.
package tree

// Node is a tree vertex carrying a payload of type T.
// Create nodes with [New] and link them with [SetParentChild].
type Node[T any] struct {
	Data T

	parent   *Node[T]
	children []*Node[T]
}

// New creates an unlinked node holding data.
func New[T any](data T) *Node[T] {
	return &Node[T]{Data: data}
}

// SetParentChild links child under parent, appending it to the parent's
// ordered children. A child must be linked at most once; re-linking an
// already-parented node corrupts the tree and is a programming error the
// package does not detect.
func SetParentChild[T any](parent, child *Node[T]) {
	child.parent = parent
	parent.children = append(parent.children, child)
}

// Parent returns the node's parent and true, or nil and false for a root.
func (n *Node[T]) Parent() (*Node[T], bool) {
	return n.parent, n.parent != nil
}

// Children returns the node's children in insertion order. The returned
// slice is the node's own; callers must not modify it.
func (n *Node[T]) Children() []*Node[T] { return n.children }

// IsLeaf reports whether the node has no children.
func (n *Node[T]) IsLeaf() bool { return len(n.children) == 0 }

// IsRoot reports whether the node has no parent.
func (n *Node[T]) IsRoot() bool { return n.parent == nil }

// MapAncestors applies f to n and every ancestor up to the root,
// in child-to-root order, and returns the results in that order.
// Callers needing root-first order reverse the result.
func MapAncestors[T, K any](n *Node[T], f func(*Node[T]) K) []K {
	var out []K
	for cur := n; cur != nil; cur = cur.parent {
		out = append(out, f(cur))
	}
	return out
}

// Ancestors returns n and every ancestor up to the root, child-to-root.
func Ancestors[T any](n *Node[T]) []*Node[T] {
	return MapAncestors(n, func(c *Node[T]) *Node[T] { return c })
}

// MapDescendants applies f to n and every descendant in pre-order and
// returns the results in visit order. A parent is always visited strictly
// before its children; siblings are visited in insertion order. This
// ordering is what makes single-pass transform propagation valid.
func MapDescendants[T, K any](n *Node[T], f func(*Node[T]) K) []K {
	var out []K
	stack := []*Node[T]{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, f(cur))
		// Push children in reverse so the first child is visited next.
		for i := len(cur.children) - 1; i >= 0; i-- {
			stack = append(stack, cur.children[i])
		}
	}
	return out
}

// Descendants returns n and every descendant in pre-order.
func Descendants[T any](n *Node[T]) []*Node[T] {
	return MapDescendants(n, func(c *Node[T]) *Node[T] { return c })
}
