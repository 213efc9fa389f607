package groupsync

import (
	"reflect"
	"testing"
	"time"

	"hr-ops/internal/roster"
)

func TestNormalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"A@X.com", "a@x.com"},
		{"  user@example.com  ", "user@example.com"},
		{"MIXED.Case@Example.COM", "mixed.case@example.com"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDiffEqualSetsIsEmpty(t *testing.T) {
	required := NormalizeSet([]string{"a@x.com", "b@x.com"})
	current := NormalizeSet([]string{"B@X.com", " a@x.com "})

	toAdd, toRemove := Diff(required, current)
	if len(toAdd) != 0 || len(toRemove) != 0 {
		t.Errorf("expected empty diff, got add=%v remove=%v", toAdd, toRemove)
	}
}

func TestDiff(t *testing.T) {
	required := NormalizeSet([]string{"A@X.com", "b@x.com"})
	current := NormalizeSet([]string{"b@x.com", "c@x.com"})

	toAdd, toRemove := Diff(required, current)
	if !reflect.DeepEqual(toAdd, []string{"a@x.com"}) {
		t.Errorf("toAdd = %v, want [a@x.com]", toAdd)
	}
	if !reflect.DeepEqual(toRemove, []string{"c@x.com"}) {
		t.Errorf("toRemove = %v, want [c@x.com]", toRemove)
	}
}

func TestDiffOrderIndependent(t *testing.T) {
	a := NormalizeSet([]string{"a@x.com", "b@x.com", "c@x.com"})
	b := NormalizeSet([]string{"c@x.com", "a@x.com", "b@x.com"})

	add1, rem1 := Diff(a, b)
	add2, rem2 := Diff(b, a)
	if len(add1) != 0 || len(rem1) != 0 || len(add2) != 0 || len(rem2) != 0 {
		t.Error("identical sets in any order must produce an empty diff")
	}
}

func TestNormalizeSetDropsBlanks(t *testing.T) {
	set := NormalizeSet([]string{"a@x.com", "", "   "})
	if len(set) != 1 {
		t.Errorf("expected 1 entry, got %v", set)
	}
}

func TestRequiredMembers(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	today := day(2025, 6, 15)

	rows := []roster.Employee{
		{Department: "研發部", Email: "Active@X.com", HireDate: day(2024, 1, 1)},
		{Department: "研發部", Email: "leaving-today@x.com", HireDate: day(2024, 1, 1), EndDate: today, EndDateRaw: "2025/6/15"},
		{Department: "研發部", Email: "gone@x.com", HireDate: day(2024, 1, 1), EndDate: day(2025, 6, 14), EndDateRaw: "2025/6/14"},
		{Department: "業務部", Email: "future@x.com", HireDate: day(2025, 7, 1)},
		{Department: "業務部", Email: "sales@x.com", HireDate: day(2025, 6, 15)},
		{Department: "", Email: "nodept@x.com", HireDate: day(2024, 1, 1)},
		{Department: "研發部", Email: "", HireDate: day(2024, 1, 1)},
	}

	got := RequiredMembers(rows, today)

	rd := got["研發部"]
	if !rd["active@x.com"] {
		t.Error("active employee missing, normalization should lowercase")
	}
	if !rd["leaving-today@x.com"] {
		t.Error("end date equal to today still counts as active")
	}
	if rd["gone@x.com"] {
		t.Error("employee with past end date must be excluded")
	}
	if len(rd) != 2 {
		t.Errorf("研發部 = %v", rd)
	}

	sa := got["業務部"]
	if sa["future@x.com"] {
		t.Error("future hire must be excluded")
	}
	if !sa["sales@x.com"] {
		t.Error("hire date equal to today counts as active")
	}
}
