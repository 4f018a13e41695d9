// Package robot implements forward kinematics over a tree of links.
//
// A [LinkTree] owns the root of a mechanism's link tree and a flattened
// pre-order listing of all nodes, computed once at construction. The
// flattened order guarantees every node appears strictly after its parent,
// which lets [LinkTree.ComputeLinkTransforms] propagate world transforms in
// a single linear pass: each node composes its parent's cached world
// transform with its own local transform and caches the result for its
// children later in the same pass.
//
// A [KinematicChain] is a root-to-end path through the same nodes,
// typically produced by [ExtractChains] for consumption by per-limb
// inverse-kinematics solvers. Chains are views, not copies: setting joint
// angles through a chain is visible through the owning tree and vice
// versa.
//
// Neither type is safe for concurrent use without external
// synchronization, and multi-step mutations ([LinkTree.SetJointAngles])
// are not transactional - a mid-loop failure leaves earlier assignments
// applied.
package robot
