package model

import (
	"errors"
	"testing"
)

func TestLoadTOML(t *testing.T) {
	tree, err := Load("testdata/arm.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if tree.Name != "test-arm" {
		t.Errorf("tree name = %q, want test-arm", tree.Name)
	}
	if got := len(tree.Nodes()); got != 4 {
		t.Errorf("node count = %d, want 4", got)
	}
	// wrist_mount has no joint entry and must count as fixed.
	if got := tree.DOF(); got != 3 {
		t.Errorf("DOF = %d, want 3", got)
	}
	names := tree.JointNames()
	want := []string{"j0", "j1", "j2"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("joint[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestLoadTOMLRespectsLimits(t *testing.T) {
	tree, err := Load("testdata/arm.toml")
	if err != nil {
		t.Fatal(err)
	}
	// j2 is limited to [0, 0.3]; j0 is unlimited.
	if err := tree.SetJointAngles([]float64{10, 1, 0.2}); err != nil {
		t.Errorf("angles within limits rejected: %v", err)
	}
	if err := tree.SetJointAngles([]float64{0, 0, 0.5}); err == nil {
		t.Error("angle beyond j2 limit accepted")
	}
}

func TestLoadURDF(t *testing.T) {
	tree, err := Load("testdata/arm.urdf")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if tree.Name != "urdf-arm" {
		t.Errorf("tree name = %q, want urdf-arm", tree.Name)
	}
	if got := len(tree.Nodes()); got != 4 {
		t.Errorf("node count = %d, want 4", got)
	}
	// revolute + continuous; the fixed tool joint carries no angle.
	if got := tree.DOF(); got != 2 {
		t.Errorf("DOF = %d, want 2", got)
	}
	if root := tree.Root().Data.Name; root != "base_link" {
		t.Errorf("root = %q, want base_link", root)
	}

	// continuous joints must not inherit limits.
	if err := tree.SetJointAngles([]float64{0.5, 100}); err != nil {
		t.Errorf("continuous joint rejected a large angle: %v", err)
	}
	// revolute limits apply.
	if err := tree.SetJointAngles([]float64{3.5, 0}); err == nil {
		t.Error("revolute joint accepted an angle beyond its limit")
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"robot.toml", "*model.TOMLLoader", false},
		{"robot.urdf", "*model.URDFLoader", false},
		{"robot.xml", "*model.URDFLoader", false},
		{"robot.yaml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			l, err := Detect(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Detect(%s) succeeded, want error", tt.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("Detect(%s): %v", tt.path, err)
			}
			switch l.(type) {
			case *TOMLLoader:
				if tt.want != "*model.TOMLLoader" {
					t.Errorf("got TOMLLoader, want %s", tt.want)
				}
			case *URDFLoader:
				if tt.want != "*model.URDFLoader" {
					t.Errorf("got URDFLoader, want %s", tt.want)
				}
			}
		})
	}
}

func TestToTreeValidation(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		wantErr error
	}{
		{
			name:    "NoRoot",
			doc:     Document{Name: "m", Links: []LinkSpec{{Name: "a", Parent: "b"}, {Name: "b", Parent: "a"}}},
			wantErr: ErrNoRoot,
		},
		{
			name: "MultipleRoots",
			doc: Document{Name: "m", Links: []LinkSpec{
				{Name: "a"}, {Name: "b"},
			}},
			wantErr: ErrMultipleRoots,
		},
		{
			name: "UnknownParent",
			doc: Document{Name: "m", Links: []LinkSpec{
				{Name: "a"}, {Name: "b", Parent: "nope"},
			}},
			wantErr: ErrUnknownParent,
		},
		{
			name: "DuplicateLink",
			doc: Document{Name: "m", Links: []LinkSpec{
				{Name: "a"}, {Name: "a", Parent: "a"},
			}},
			wantErr: ErrDuplicateLink,
		},
		{
			name: "BadJointType",
			doc: Document{Name: "m", Links: []LinkSpec{
				{Name: "a", Joint: &JointSpec{Name: "j", Type: "helical"}},
			}},
			wantErr: ErrUnknownJointType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.doc.ToTree()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ToTree() err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestToTreeChildOrder(t *testing.T) {
	doc := Document{Name: "m", Links: []LinkSpec{
		{Name: "root"},
		{Name: "x", Parent: "root", Joint: &JointSpec{Name: "jx", Type: "rotational", Axis: [3]float64{0, 1, 0}}},
		{Name: "y", Parent: "root", Joint: &JointSpec{Name: "jy", Type: "rotational", Axis: [3]float64{0, 1, 0}}},
	}}
	tree, err := doc.ToTree()
	if err != nil {
		t.Fatal(err)
	}
	names := tree.AllJointNames()
	if names[1] != "jx" || names[2] != "jy" {
		t.Errorf("flattened joints = %v, want document order preserved", names)
	}
}
