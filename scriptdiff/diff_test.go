package scriptdiff

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDiff(t *testing.T) {
	from := []string{
		"(set-logic QF_BV)",
		"(declare-fun x () Bool)",
		"(assert x)",
	}
	to := []string{
		"(set-logic QF_BV)",
		"(declare-fun x () Bool)",
		"(declare-fun y () Bool)",
		"(assert (and x y))",
	}
	got := Diff(from, to)
	want := []Op{
		{Type: OpEqual, Lines: []string{"(set-logic QF_BV)", "(declare-fun x () Bool)"}},
		{Type: OpDelete, Lines: []string{"(assert x)"}},
		{Type: OpInsert, Lines: []string{"(declare-fun y () Bool)", "(assert (and x y))"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Diff() mismatch (-want +got):\n%s", diff)
	}
}

func TestEqual(t *testing.T) {
	a := []string{"(assert true)"}
	if !Equal(a, []string{"(assert true)"}) {
		t.Error("Equal() = false on identical scripts")
	}
	if Equal(a, []string{"(assert false)"}) {
		t.Error("Equal() = true on differing scripts")
	}
	if !Equal(nil, nil) {
		t.Error("Equal() = false on two empty scripts")
	}
}

func TestFormat(t *testing.T) {
	ops := []Op{
		{Type: OpEqual, Lines: []string{"(set-logic ALL)"}},
		{Type: OpDelete, Lines: []string{"(assert x)"}},
		{Type: OpInsert, Lines: []string{"(assert y)"}},
	}
	got := Format(ops)
	want := strings.Join([]string{
		"  (set-logic ALL)",
		"- (assert x)",
		"+ (assert y)",
	}, "\n") + "\n"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}
