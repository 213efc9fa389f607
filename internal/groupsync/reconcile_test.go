package groupsync

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
)

type fakeDirectory struct {
	members map[string][]string

	failInsert map[string]bool
	failRemove map[string]bool

	inserts []string
	removes []string
	listErr error
}

func (f *fakeDirectory) ListMembers(_ context.Context, group string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.members[group], nil
}

func (f *fakeDirectory) InsertMember(_ context.Context, group, email string) error {
	if f.failInsert[email] {
		return fmt.Errorf("directory said no: %s", email)
	}
	f.inserts = append(f.inserts, email)
	return nil
}

func (f *fakeDirectory) RemoveMember(_ context.Context, group, email string) error {
	if f.failRemove[email] {
		return fmt.Errorf("directory said no: %s", email)
	}
	f.removes = append(f.removes, email)
	return nil
}

func TestReconcileNoOpWhenConverged(t *testing.T) {
	dir := &fakeDirectory{members: map[string][]string{
		"rd@groups.example.com": {"A@X.com", "b@x.com"},
	}}
	required := NormalizeSet([]string{"a@x.com", "B@x.com"})

	rep, err := Reconcile(context.Background(), dir, "rd@groups.example.com", required)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if !rep.UpToDate {
		t.Error("expected UpToDate report")
	}
	if len(dir.inserts) != 0 || len(dir.removes) != 0 {
		t.Errorf("no mutation calls expected: inserts=%v removes=%v", dir.inserts, dir.removes)
	}
}

func TestReconcileAppliesDiff(t *testing.T) {
	dir := &fakeDirectory{members: map[string][]string{
		"g": {"b@x.com", "c@x.com"},
	}}
	required := NormalizeSet([]string{"a@x.com", "b@x.com"})

	rep, err := Reconcile(context.Background(), dir, "g", required)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if !reflect.DeepEqual(rep.Added, []string{"a@x.com"}) {
		t.Errorf("Added = %v", rep.Added)
	}
	if !reflect.DeepEqual(rep.Removed, []string{"c@x.com"}) {
		t.Errorf("Removed = %v", rep.Removed)
	}
	if rep.UpToDate {
		t.Error("report should not be UpToDate")
	}
}

func TestReconcileOneFailureDoesNotAbortBatch(t *testing.T) {
	dir := &fakeDirectory{
		members:    map[string][]string{"g": {"x@x.com", "y@x.com"}},
		failInsert: map[string]bool{"b@x.com": true},
		failRemove: map[string]bool{"x@x.com": true},
	}
	required := NormalizeSet([]string{"a@x.com", "b@x.com", "c@x.com"})

	rep, err := Reconcile(context.Background(), dir, "g", required)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	// a and c still added despite b failing; y still removed despite x failing.
	if !reflect.DeepEqual(rep.Added, []string{"a@x.com", "c@x.com"}) {
		t.Errorf("Added = %v", rep.Added)
	}
	if !reflect.DeepEqual(rep.Removed, []string{"y@x.com"}) {
		t.Errorf("Removed = %v", rep.Removed)
	}
	if len(rep.Failed) != 2 {
		t.Fatalf("Failed = %+v", rep.Failed)
	}
	ops := map[string]string{}
	for _, f := range rep.Failed {
		ops[f.Email] = f.Op
	}
	if ops["b@x.com"] != "add" || ops["x@x.com"] != "remove" {
		t.Errorf("failure ops = %v", ops)
	}
}

func TestReconcileListFailureAborts(t *testing.T) {
	dir := &fakeDirectory{listErr: errors.New("boom")}
	_, err := Reconcile(context.Background(), dir, "g", NormalizeSet([]string{"a@x.com"}))
	if err == nil {
		t.Fatal("expected error when listing fails")
	}
}

func TestReconcileIdempotent(t *testing.T) {
	dir := &fakeDirectory{members: map[string][]string{"g": {"b@x.com"}}}
	required := NormalizeSet([]string{"a@x.com", "b@x.com"})

	if _, err := Reconcile(context.Background(), dir, "g", required); err != nil {
		t.Fatalf("first pass: %v", err)
	}
	// Simulate the directory having converged.
	dir.members["g"] = []string{"a@x.com", "b@x.com"}
	dir.inserts = nil

	rep, err := Reconcile(context.Background(), dir, "g", required)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if !rep.UpToDate || len(dir.inserts) != 0 {
		t.Error("second pass must be a no-op")
	}
}
