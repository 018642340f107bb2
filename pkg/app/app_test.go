package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/routines/pkg/routine"
	"tableflip.dev/routines/pkg/store"
)

func newService(t *testing.T, seed routine.Collection) (*Service, *store.Memory) {
	t.Helper()
	mem := store.NewMemory("", nil)
	if seed != nil {
		if err := mem.Save(context.Background(), seed); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	now := time.UnixMilli(1714546800000)
	svc := &Service{
		Storage: mem,
		Clock:   func() time.Time { return now },
	}
	return svc, mem
}

func seed() routine.Collection {
	return routine.Collection{
		{ID: "1", Name: "Run", Datetime: "2024-05-01T07:00"},
		{ID: "2", Name: "Read", Datetime: "2024-05-01T20:00"},
	}
}

func TestAddAppendsWithUniqueID(t *testing.T) {
	ctx := context.Background()
	prior := seed()
	prior = append(prior, routine.Routine{ID: "1714546800000", Name: "Clash", Datetime: "2024-05-03T10:00"})
	svc, _ := newService(t, prior)

	r, err := svc.Add(ctx, routine.Fields{Name: "  Piano ", Datetime: "2024-05-02T09:00", Student: "Ana", HasStudent: true})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if r.Name != "Piano" || r.StudentName != "Ana" {
		t.Fatalf("unexpected routine %#v", r)
	}
	for _, p := range prior {
		if p.ID == r.ID {
			t.Fatalf("id %s collides with existing routine", r.ID)
		}
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := append(prior.Clone(), r)
	if diff := cmp.Diff(want, all); diff != "" {
		t.Fatalf("collection mismatch (-want +got):\n%s", diff)
	}
}

func TestAddWithoutStudentFieldOmitsIt(t *testing.T) {
	svc, mem := newService(t, nil)
	if _, err := svc.Add(context.Background(), routine.Fields{Name: "Run", Datetime: "2024-05-01T07:00", Student: "ignored"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	raw, _ := mem.Raw()
	if got := string(raw); got != `[{"id":"1714546800000","name":"Run","datetime":"2024-05-01T07:00"}]` {
		t.Fatalf("unexpected stored content %s", got)
	}
}

func TestAddRejectsInvalid(t *testing.T) {
	svc, mem := newService(t, seed())
	for _, f := range []routine.Fields{
		{Name: "", Datetime: "2024-05-01T07:00"},
		{Name: "Run", Datetime: "  "},
		{Name: "Run", Datetime: "someday"},
	} {
		if _, err := svc.Add(context.Background(), f); !errors.Is(err, ErrInvalid) {
			t.Fatalf("expected ErrInvalid for %#v, got %v", f, err)
		}
	}
	if mem.Saves != 1 {
		t.Fatalf("invalid adds must not write, saves=%d", mem.Saves)
	}
}

func TestUpdateInPlace(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, seed())

	r, err := svc.Update(ctx, "2", routine.Fields{Name: "Write", Datetime: "2024-05-01T21:00"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if r.ID != "2" || r.Name != "Write" {
		t.Fatalf("unexpected routine %#v", r)
	}
	all, _ := svc.List(ctx)
	if all[1].Name != "Write" || all[0].Name != "Run" {
		t.Fatalf("update should keep position, got %#v", all)
	}
}

func TestMissingIDLeavesCollectionUnchanged(t *testing.T) {
	ctx := context.Background()
	svc, mem := newService(t, seed())
	before, _ := mem.Raw()

	if _, err := svc.Update(ctx, "nope", routine.Fields{Name: "X", Datetime: "2024-05-01T07:00"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Remove(ctx, "nope"); err != nil {
		t.Fatalf("Remove of unknown id should be a no-op, got %v", err)
	}
	after, _ := mem.Raw()
	if string(before) != string(after) {
		t.Fatalf("collection changed:\n%s\n%s", before, after)
	}
	if mem.Saves != 1 {
		t.Fatalf("expected no writes beyond the seed, saves=%d", mem.Saves)
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, seed())
	if err := svc.Remove(ctx, "1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	all, _ := svc.List(ctx)
	if len(all) != 1 || all[0].ID != "2" {
		t.Fatalf("unexpected collection %#v", all)
	}
	if _, err := svc.Get(ctx, "1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected removed routine to be gone, got %v", err)
	}
}

func TestNoStorage(t *testing.T) {
	svc := &Service{}
	if _, err := svc.List(context.Background()); !errors.Is(err, ErrNoStorage) {
		t.Fatalf("expected ErrNoStorage, got %v", err)
	}
}
