package robot

import (
	"errors"
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/kinetree/kinetree/pkg/spatial"
)

func TestChainLengthInvariant(t *testing.T) {
	_, nodes := buildArmTree()
	chain := NewKinematicChain("chain1", nodes["link3"])

	if got := len(chain.Nodes()); got != 4 {
		t.Fatalf("chain has %d nodes, want 4 (root to leaf inclusive)", got)
	}
	if chain.Nodes()[0] != nodes["link0"] || chain.End() != nodes["link3"] {
		t.Error("chain is not root-first")
	}
	// Every node on this path is jointed, so joint count == path length.
	if got := len(chain.JointAngles()); got != chain.DOF() || got != 4 {
		t.Errorf("len(JointAngles()) = %d, DOF() = %d, want 4", got, chain.DOF())
	}
}

func TestChainSetJointAngles(t *testing.T) {
	_, nodes := buildArmTree()
	chain := NewKinematicChain("chain1", nodes["link3"])

	want := []float64{0.1, 0.2, 0.3, 0.4}
	if err := chain.SetJointAngles(want); err != nil {
		t.Fatal(err)
	}
	got := chain.JointAngles()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("angle[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	err := chain.SetJointAngles([]float64{1, 2})
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("short vector: err = %v, want ErrSizeMismatch", err)
	}
}

func TestChainAliasesTree(t *testing.T) {
	tr, nodes := buildArmTree()
	chain := NewKinematicChain("chain1", nodes["link3"])

	// Set through the chain, observe through the tree.
	if err := chain.SetJointAngles([]float64{0.9, 0.8, 0.7, 0.6}); err != nil {
		t.Fatal(err)
	}
	treeAngles := tr.JointAngles() // flattened: j0 j1 j2 j3 j4 j5
	if treeAngles[0] != 0.9 || treeAngles[3] != 0.6 {
		t.Errorf("tree angles = %v, chain mutation not visible", treeAngles)
	}
	if treeAngles[4] != 0 || treeAngles[5] != 0 {
		t.Errorf("branch B angles = %v, want untouched", treeAngles[4:])
	}

	// And the other way around.
	if err := tr.SetJointAngles([]float64{0, 0, 0, 0, 0, 0}); err != nil {
		t.Fatal(err)
	}
	for i, a := range chain.JointAngles() {
		if a != 0 {
			t.Errorf("chain angle[%d] = %v after tree reset, want 0", i, a)
		}
	}
}

func TestEndTransformAtRest(t *testing.T) {
	_, nodes := buildArmTree()
	chain := NewKinematicChain("chain1", nodes["link3"])

	p := chain.EndTransform().Position()
	// Static offsets along branch A sum to (0, 0.4, 0.4).
	if math.Abs(p.Y-0.4) > tol || math.Abs(p.Z-0.4) > tol {
		t.Errorf("end position = %v, want y=0.4 z=0.4", p)
	}

	// Repeated evaluation of a rest pose is stable.
	q := chain.EndTransform().Position()
	if math.Abs(p.Z-q.Z) > tol {
		t.Error("repeated EndTransform disagrees")
	}
}

func TestEndTransformIgnoresWorldCache(t *testing.T) {
	tr, nodes := buildArmTree()
	chain := NewKinematicChain("chain1", nodes["link3"])

	want := chain.EndTransform()

	// Pollute the shared cache with a moved base, then restore the base.
	tr.SetRootTransform(spatial.Translation(v3.Vec{X: 99}))
	tr.ComputeLinkTransforms()
	tr.SetRootTransform(spatial.Translation(v3.Vec{Y: 0.1}))

	if got := chain.EndTransform(); !got.ApproxEqual(want, tol) {
		t.Error("EndTransform consulted the stale world cache")
	}
}

func TestChainBaseTransform(t *testing.T) {
	_, nodes := buildArmTree()
	chain := NewKinematicChain("chain1", nodes["link3"])
	chain.Transform = spatial.Translation(v3.Vec{X: 2})

	p := chain.EndTransform().Position()
	if math.Abs(p.X-2) > tol {
		t.Errorf("end x = %v, want 2 (base transform composed first)", p.X)
	}
}
