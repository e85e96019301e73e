package emit

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/provekit/smtgen/graph"
	"github.com/provekit/smtgen/kind"
)

// quantSnap is forall i, exists e(i): e(i) + i equals i.
func quantSnap() *graph.Snapshot {
	return &graph.Snapshot{
		Kinds:   []*kind.Kind{w8},
		Foralls: []graph.Input{{SV: sv(1, w8), Name: "i"}},
		Skolems: []graph.Input{{SV: sv(2, w8), Name: "e"}},
		Assigns: []graph.Assign{
			{SV: sv(3, w8), Node: graph.Node{
				Op: graph.OpPlus, Args: []graph.SV{sv(1, w8), sv(2, w8)},
			}},
			{SV: sv(4, kind.Bool), Node: graph.Node{
				Op: graph.OpEqual, Args: []graph.SV{sv(3, w8), sv(1, w8)},
			}},
		},
		Goal: sv(4, kind.Bool),
		Cfg:  graph.Config{Caps: allCaps()},
	}
}

func TestBatchQuantified(t *testing.T) {
	got, err := Batch(quantSnap())
	if err != nil {
		t.Fatalf("Batch() error: %v", err)
	}
	want := []string{
		"(set-option :produce-models true)",
		"; logic: bitvector problem",
		"(set-logic BV)",
		"(declare-fun e ((_ BitVec 8)) (_ BitVec 8))",
		"(assert (forall ((i (_ BitVec 8)))",
		"  (let ((s3 (bvadd i (e i))))",
		"    (let ((s4 (= s3 i)))",
		"      s4",
		"))))",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Batch() mismatch (-want +got):\n%s", diff)
	}
}

func TestBatchQuantifiedBalanced(t *testing.T) {
	got, err := Batch(quantSnap())
	if err != nil {
		t.Fatalf("Batch() error: %v", err)
	}
	depth := 0
	for _, ln := range got {
		depth += strings.Count(ln, "(") - strings.Count(ln, ")")
	}
	if depth != 0 {
		t.Errorf("script delimiters unbalanced by %d:\n%s", depth, strings.Join(got, "\n"))
	}
}

// A definition not touching the frontier stays outside the binder.
func TestBatchQuantifiedPreSplit(t *testing.T) {
	snap := quantSnap()
	snap.Inputs = []graph.Input{{SV: sv(5, w8), Name: "c"}}
	snap.Assigns = append([]graph.Assign{
		{SV: sv(6, w8), Node: graph.Node{
			Op: graph.OpTimes, Args: []graph.SV{sv(5, w8), sv(5, w8)},
		}},
	}, snap.Assigns...)
	got, err := Batch(snap)
	if err != nil {
		t.Fatalf("Batch() error: %v", err)
	}
	if !contains(got, "(define-fun s6 () (_ BitVec 8) (bvmul c c))") {
		t.Errorf("frontier-free definition pushed inside the binder:\n%s", strings.Join(got, "\n"))
	}
}

func TestBatchQuantifiedSymbolicTable(t *testing.T) {
	snap := quantSnap()
	snap.Tables = []graph.Table{{
		ID: 0, ArgKind: kind.Bool, ResKind: w8,
		Elems: []graph.SV{sv(2, w8), sv(2, w8)},
	}}
	got, err := Batch(snap)
	if err != nil {
		t.Fatalf("Batch() error: %v", err)
	}
	if !contains(got, "(declare-fun table0 ((_ BitVec 8) Bool) (_ BitVec 8))") {
		t.Fatalf("table signature not extended with the frontier:\n%s", strings.Join(got, "\n"))
	}
	// The element equalities live inside the binder.
	joined := strings.Join(got, "\n")
	if !strings.Contains(joined, "(= (table0 i false) (e i))") {
		t.Errorf("missing skolemized element equality:\n%s", joined)
	}
	depth := 0
	for _, ln := range got {
		depth += strings.Count(ln, "(") - strings.Count(ln, ")")
	}
	if depth != 0 {
		t.Errorf("script delimiters unbalanced by %d", depth)
	}
}

func TestBatchNamedQuantifiedError(t *testing.T) {
	snap := quantSnap()
	snap.Constraints = []graph.Constraint{
		{Attrs: []graph.Attr{{Name: "lbl"}}, Val: sv(4, kind.Bool)},
	}
	_, err := Batch(snap)
	if !errors.Is(err, ErrNamedQuantified) {
		t.Fatalf("Batch() error = %v, want ErrNamedQuantified", err)
	}
	for _, want := range []string{"i", "lbl"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestBatchSoftQuantifiedError(t *testing.T) {
	snap := quantSnap()
	snap.Constraints = []graph.Constraint{
		{Soft: true, Val: sv(4, kind.Bool)},
	}
	_, err := Batch(snap)
	if !errors.Is(err, ErrSoftQuantified) {
		t.Fatalf("Batch() error = %v, want ErrSoftQuantified", err)
	}
}

func TestBatchQuantifiedArrayInitError(t *testing.T) {
	snap := quantSnap()
	init := sv(3, w8) // defined from the frontier, not a literal
	snap.Arrays = []graph.Array{
		{ID: 0, Domain: w8, Range: w8, Hist: graph.FreeArray, Init: &init},
	}
	_, err := Batch(snap)
	if !errors.Is(err, ErrNotSupported) {
		t.Errorf("Batch() error = %v, want ErrNotSupported", err)
	}
}
