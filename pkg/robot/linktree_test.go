package robot

import (
	"errors"
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/kinetree/kinetree/pkg/link"
	"github.com/kinetree/kinetree/pkg/spatial"
)

const tol = 1e-9

func rotLink(name, joint string, translation v3.Vec) *LinkNode {
	return NewLinkNode(link.NewBuilder().
		Name(name).
		Translation(translation).
		Joint(joint, link.JointRotational, v3.Vec{Y: 1}).
		Finalize())
}

func fixedLink(name string, translation v3.Vec) *LinkNode {
	return NewLinkNode(link.NewBuilder().
		Name(name).
		Translation(translation).
		Finalize())
}

// buildArmTree builds the two-branch tree from the reference mechanism:
//
//	link0 ── link1 ── link2 ── link3   (branch A, all rotational about Y)
//	   └──── link4 ── link5            (branch B)
func buildArmTree() (*LinkTree, map[string]*LinkNode) {
	nodes := map[string]*LinkNode{
		"link0": rotLink("link0", "j0", v3.Vec{Y: 0.1}),
		"link1": rotLink("link1", "j1", v3.Vec{Y: 0.1, Z: 0.1}),
		"link2": rotLink("link2", "j2", v3.Vec{Y: 0.1, Z: 0.1}),
		"link3": rotLink("link3", "j3", v3.Vec{Y: 0.1, Z: 0.2}),
		"link4": rotLink("link4", "j4", v3.Vec{Y: 0.1, Z: 0.1}),
		"link5": rotLink("link5", "j5", v3.Vec{Y: 0.1, Z: 0.1}),
	}
	SetParentChild(nodes["link0"], nodes["link1"])
	SetParentChild(nodes["link1"], nodes["link2"])
	SetParentChild(nodes["link2"], nodes["link3"])
	SetParentChild(nodes["link0"], nodes["link4"])
	SetParentChild(nodes["link4"], nodes["link5"])
	return NewLinkTree("arm", nodes["link0"]), nodes
}

func TestFlattenedOrderAncestorFirst(t *testing.T) {
	tr, _ := buildArmTree()
	pos := map[*LinkNode]int{}
	for i, n := range tr.Nodes() {
		pos[n] = i
	}
	for _, n := range tr.Nodes() {
		if p, ok := n.Parent(); ok {
			if pos[p] >= pos[n] {
				t.Errorf("parent %q at %d not before child %q at %d",
					p.Data.Name, pos[p], n.Data.Name, pos[n])
			}
		}
	}
}

func TestDOFConsistency(t *testing.T) {
	tr, _ := buildArmTree()
	if got := tr.DOF(); got != 6 {
		t.Errorf("DOF() = %d, want 6", got)
	}
	if got := len(tr.JointAngles()); got != tr.DOF() {
		t.Errorf("len(JointAngles()) = %d, want DOF() = %d", got, tr.DOF())
	}
	if got := len(tr.JointNames()); got != tr.DOF() {
		t.Errorf("len(JointNames()) = %d, want DOF() = %d", got, tr.DOF())
	}
	if got := len(tr.AllJointNames()); got != len(tr.Nodes()) {
		t.Errorf("len(AllJointNames()) = %d, want node count %d", got, len(tr.Nodes()))
	}
}

func TestDOFSkipsFixedJoints(t *testing.T) {
	root := rotLink("base", "j_base", v3.Vec{})
	mount := fixedLink("mount", v3.Vec{Z: 0.05})
	wrist := rotLink("wrist", "j_wrist", v3.Vec{Z: 0.1})
	SetParentChild(root, mount)
	SetParentChild(mount, wrist)
	tr := NewLinkTree("mixed", root)

	if got := tr.DOF(); got != 2 {
		t.Errorf("DOF() = %d, want 2 (fixed joint skipped)", got)
	}
	names := tr.JointNames()
	if len(names) != 2 || names[0] != "j_base" || names[1] != "j_wrist" {
		t.Errorf("JointNames() = %v, want [j_base j_wrist]", names)
	}
	all := tr.AllJointNames()
	if len(all) != 3 || all[1] != "mount" {
		t.Errorf("AllJointNames() = %v, want fixed link included", all)
	}
}

func TestJointAnglesRoundTrip(t *testing.T) {
	tr, _ := buildArmTree()
	want := []float64{0.1, -0.2, 0.3, -0.4, 0.5, -0.6}
	if err := tr.SetJointAngles(want); err != nil {
		t.Fatalf("SetJointAngles: %v", err)
	}
	got := tr.JointAngles()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("angle[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSetJointAnglesSizeMismatch(t *testing.T) {
	tr, _ := buildArmTree()
	if err := tr.SetJointAngles([]float64{1, 2, 3, 1, 2, 3}); err != nil {
		t.Fatal(err)
	}

	before := tr.JointAngles()
	err := tr.SetJointAngles([]float64{0.1, 0.2})
	if !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("err = %v, want ErrSizeMismatch", err)
	}
	after := tr.JointAngles()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("angle[%d] changed from %v to %v on failed set", i, before[i], after[i])
		}
	}
}

func TestSetJointAnglesPartialApplyOnLimitFailure(t *testing.T) {
	root := rotLink("base", "j0", v3.Vec{})
	limited := NewLinkNode(link.NewBuilder().
		Name("elbow").
		Joint("j1", link.JointRotational, v3.Vec{Y: 1}).
		Limits(-1, 1).
		Finalize())
	SetParentChild(root, limited)
	tr := NewLinkTree("limited", root)

	err := tr.SetJointAngles([]float64{0.5, 5.0})
	if !errors.Is(err, link.ErrOutOfRange) {
		t.Fatalf("err = %v, want ErrOutOfRange", err)
	}
	// No rollback: the first assignment stays applied.
	got := tr.JointAngles()
	if got[0] != 0.5 {
		t.Errorf("angle[0] = %v, want 0.5 (applied before failure)", got[0])
	}
	if got[1] != 0 {
		t.Errorf("angle[1] = %v, want 0 (failing index untouched)", got[1])
	}
}

func TestComputeLinkTransformsSinglePass(t *testing.T) {
	tr, nodes := buildArmTree()
	got := tr.ComputeLinkTransforms()
	if len(got) != len(tr.Nodes()) {
		t.Fatalf("got %d transforms, want %d", len(got), len(tr.Nodes()))
	}

	// At rest every world transform is the composition of static offsets
	// along the path; verify one per branch against a manual fold.
	check := func(name string, wantZ, wantY float64) {
		t.Helper()
		cache := nodes[name].Data.WorldCache
		if cache == nil {
			t.Fatalf("%s: world cache not populated", name)
		}
		p := cache.Position()
		if math.Abs(p.Z-wantZ) > tol || math.Abs(p.Y-wantY) > tol {
			t.Errorf("%s world position = %v, want y=%v z=%v", name, p, wantY, wantZ)
		}
	}
	check("link0", 0, 0.1)
	check("link3", 0.4, 0.4)
	check("link5", 0.2, 0.3)

	// Repetition is stable for a rest pose.
	again := tr.ComputeLinkTransforms()
	for i := range got {
		if !got[i].ApproxEqual(again[i], tol) {
			t.Errorf("transform %d changed across repeated computation", i)
		}
	}
}

func TestComputeLinkTransformsUsesAngles(t *testing.T) {
	tr, nodes := buildArmTree()
	if err := tr.SetJointAngles([]float64{-0.5, -0.5, -0.5, -0.5, -0.5, -0.5}); err != nil {
		t.Fatal(err)
	}
	tr.ComputeLinkTransforms()

	rest, _ := buildArmTree()
	rest.ComputeLinkTransforms()

	moved := nodes["link3"].Data.WorldCache.Position()
	restPos := rest.Nodes()[3].Data.WorldCache.Position()
	if math.Abs(moved.Z-restPos.Z) < 1e-6 {
		t.Error("joint angles had no effect on downstream world transform")
	}
}

func TestSetRootTransform(t *testing.T) {
	tr, nodes := buildArmTree()
	tr.SetRootTransform(spatial.Translation(v3.Vec{X: 1}))
	tr.ComputeLinkTransforms()
	p := nodes["link0"].Data.WorldCache.Position()
	if math.Abs(p.X-1) > tol {
		t.Errorf("root world x = %v, want 1", p.X)
	}
	leaf := nodes["link3"].Data.WorldCache.Position()
	if math.Abs(leaf.X-1) > tol {
		t.Errorf("leaf world x = %v, want 1 (base offset propagates)", leaf.X)
	}
}

func TestMapLinks(t *testing.T) {
	tr, _ := buildArmTree()
	names := MapLinks(tr, func(l *link.Link) string { return l.Name })
	if len(names) != 6 || names[0] != "link0" || names[5] != "link5" {
		t.Errorf("MapLinks names = %v", names)
	}
	jointed := FilterMapLinks(tr, func(l *link.Link) (string, bool) {
		return l.Name, l.HasJointAngle()
	})
	if len(jointed) != 6 {
		t.Errorf("FilterMapLinks kept %d links, want 6", len(jointed))
	}
}
