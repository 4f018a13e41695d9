package store

import (
	"context"
	"errors"
	"testing"

	"github.com/kinetree/kinetree/pkg/model"
)

func testDoc(name string) *model.Document {
	return &model.Document{
		Name: name,
		Links: []model.LinkSpec{
			{Name: "base"},
			{Name: "arm", Parent: "base", Translation: [3]float64{0, 0, 0.1}},
		},
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.Get(ctx, "arm"); !errors.Is(err, ErrModelNotFound) {
		t.Fatalf("Get(absent) = %v, want ErrModelNotFound", err)
	}
	if err := s.Put(ctx, testDoc("arm")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	doc, err := s.Get(ctx, "arm")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if doc.Name != "arm" || len(doc.Links) != 2 {
		t.Errorf("Get returned %q with %d links, want arm with 2", doc.Name, len(doc.Links))
	}
}

func TestMemoryStoreListSorted(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for _, name := range []string{"zeta", "arm", "midge"} {
		if err := s.Put(ctx, testDoc(name)); err != nil {
			t.Fatalf("Put(%s): %v", name, err)
		}
	}
	names, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"arm", "midge", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("List = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("List[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Put(ctx, testDoc("arm")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Delete(ctx, "arm"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "arm"); !errors.Is(err, ErrModelNotFound) {
		t.Errorf("Delete(absent) = %v, want ErrModelNotFound", err)
	}
	if _, err := s.Get(ctx, "arm"); !errors.Is(err, ErrModelNotFound) {
		t.Errorf("Get after Delete = %v, want ErrModelNotFound", err)
	}
}

func TestMemoryStorePutReplaces(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Put(ctx, testDoc("arm")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	updated := testDoc("arm")
	updated.Links = updated.Links[:1]
	if err := s.Put(ctx, updated); err != nil {
		t.Fatalf("Put(update): %v", err)
	}
	doc, err := s.Get(ctx, "arm")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(doc.Links) != 1 {
		t.Errorf("Get returned %d links after replace, want 1", len(doc.Links))
	}
}
