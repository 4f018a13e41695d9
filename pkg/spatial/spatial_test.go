package spatial

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

const tol = 1e-9

func TestIdentity(t *testing.T) {
	id := Identity()
	p := v3.Vec{X: 1, Y: 2, Z: 3}
	if got := id.Apply(p); got != p {
		t.Errorf("Identity().Apply(%v) = %v, want unchanged", p, got)
	}
	if pos := id.Position(); pos != (v3.Vec{}) {
		t.Errorf("Identity().Position() = %v, want origin", pos)
	}
}

func TestTranslationCompose(t *testing.T) {
	a := Translation(v3.Vec{X: 1})
	b := Translation(v3.Vec{Y: 2, Z: 3})

	got := a.Mul(b).Position()
	want := v3.Vec{X: 1, Y: 2, Z: 3}
	if math.Abs(got.X-want.X) > tol || math.Abs(got.Y-want.Y) > tol || math.Abs(got.Z-want.Z) > tol {
		t.Errorf("composed position = %v, want %v", got, want)
	}
}

func TestRotationAboutY(t *testing.T) {
	// Quarter turn about Y maps +X to -Z.
	r := Rotation(v3.Vec{Y: 1}, math.Pi/2)
	got := r.Apply(v3.Vec{X: 1})
	want := v3.Vec{Z: -1}
	if math.Abs(got.X-want.X) > tol || math.Abs(got.Y-want.Y) > tol || math.Abs(got.Z-want.Z) > tol {
		t.Errorf("rotated point = %v, want %v", got, want)
	}
}

func TestMulOrder(t *testing.T) {
	// Translate then rotate is not rotate then translate.
	r := Rotation(v3.Vec{Z: 1}, math.Pi/2)
	tr := Translation(v3.Vec{X: 1})

	// r.Mul(tr): translation applied first, then rotated into +Y.
	got := r.Mul(tr).Position()
	if math.Abs(got.X) > tol || math.Abs(got.Y-1) > tol {
		t.Errorf("r*tr origin = %v, want (0,1,0)", got)
	}

	// tr.Mul(r): rotation first (origin fixed), then translated.
	got = tr.Mul(r).Position()
	if math.Abs(got.X-1) > tol || math.Abs(got.Y) > tol {
		t.Errorf("tr*r origin = %v, want (1,0,0)", got)
	}
}

func TestApproxEqual(t *testing.T) {
	a := Translation(v3.Vec{X: 1}).Mul(Rotation(v3.Vec{Y: 1}, 0.3))
	b := Translation(v3.Vec{X: 1}).Mul(Rotation(v3.Vec{Y: 1}, 0.3))
	if !a.ApproxEqual(b, tol) {
		t.Error("identical transforms reported unequal")
	}
	c := Translation(v3.Vec{X: 1.001}).Mul(Rotation(v3.Vec{Y: 1}, 0.3))
	if a.ApproxEqual(c, tol) {
		t.Error("distinct transforms reported equal")
	}
}
