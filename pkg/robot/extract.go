package robot

import (
	"errors"
	"fmt"
)

// ErrExhaustedAncestors is returned by [ExtractChains] when DOF-limited
// truncation walks past the tree root, i.e. a leaf does not have enough
// jointed ancestors to satisfy the limit.
var ErrExhaustedAncestors = errors.New("ran out of ancestors during DOF-limited truncation")

// DefaultMinJoints is the minimum number of non-fixed joints a chain must
// have to be emitted by [ExtractChains] when [ChainOptions.MinJoints] is
// zero. Shorter branches (grippers, sensor mounts, paired fingers) are
// rarely useful to a limb IK solver.
const DefaultMinJoints = 6

// ChainOptions configures [ExtractChains].
type ChainOptions struct {
	// DOFLimit caps the number of non-fixed joints per chain. Chains
	// exceeding it are truncated from the leaf end upward. Zero means
	// unlimited.
	DOFLimit int

	// MinJoints is the minimum number of non-fixed joints a chain must
	// have to be emitted. Zero selects DefaultMinJoints.
	MinJoints int
}

// ExtractChains decomposes a tree into named kinematic chains, one
// candidate per leaf, in the tree's flattened (leaf discovery) order.
//
// For each leaf:
//
//  1. Count the non-fixed joints on the leaf-to-root path, inclusive.
//  2. If that count exceeds the DOF limit, walk the candidate end node
//     upward from the leaf until enough jointed links have been shed;
//     passing a fixed joint does not consume the budget. Truncation drops
//     links from the leaf end, never more jointed links than required.
//  3. Skip the candidate when one ending at a link with the same name was
//     already considered (first leaf in flattened order wins, and a name
//     is consumed even when its chain is then dropped by the filter).
//  4. Build the chain from the tree root down to the candidate end node
//     and drop it when it has fewer than MinJoints non-fixed joints.
//
// Truncation assumes every leaf has enough jointed ancestors to satisfy
// the limit; if the walk reaches the root with budget remaining, a
// wrapped [ErrExhaustedAncestors] is returned.
func ExtractChains(t *LinkTree, opts ChainOptions) ([]*KinematicChain, error) {
	minJoints := opts.MinJoints
	if minJoints == 0 {
		minJoints = DefaultMinJoints
	}

	seen := map[string]bool{}
	var chains []*KinematicChain
	for _, leaf := range t.Nodes() {
		if !leaf.IsLeaf() {
			continue
		}

		dof := 0
		for cur := leaf; cur != nil; {
			if cur.Data.HasJointAngle() {
				dof++
			}
			cur, _ = cur.Parent()
		}

		end := leaf
		if opts.DOFLimit > 0 && dof > opts.DOFLimit {
			removeDOF := dof - opts.DOFLimit
			for removeDOF > 0 {
				parent, ok := end.Parent()
				if !ok {
					return nil, fmt.Errorf("tree %q, leaf %q: need %d more jointed ancestors: %w",
						t.Name, leaf.Data.Name, removeDOF, ErrExhaustedAncestors)
				}
				end = parent
				if end.Data.HasJointAngle() {
					removeDOF--
				}
			}
		}

		if seen[end.Data.Name] {
			continue
		}
		seen[end.Data.Name] = true

		kc := NewKinematicChain(end.Data.Name, end)
		if kc.DOF() >= minJoints {
			chains = append(chains, kc)
		}
	}
	return chains, nil
}

// CreateKinematicChains extracts chains with an unlimited DOF budget and
// the default minimum-joint filter.
func CreateKinematicChains(t *LinkTree) ([]*KinematicChain, error) {
	return ExtractChains(t, ChainOptions{})
}
