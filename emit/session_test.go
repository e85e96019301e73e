package emit

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/provekit/smtgen/graph"
	"github.com/provekit/smtgen/kind"
	"github.com/provekit/smtgen/solver"
)

func TestSessionBaseMatchesBatch(t *testing.T) {
	batch, err := Batch(baseSnap())
	if err != nil {
		t.Fatalf("Batch() error: %v", err)
	}
	_, base, err := NewSession(baseSnap())
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	if diff := cmp.Diff(batch, base); diff != "" {
		t.Errorf("base script differs from batch (-batch +session):\n%s", diff)
	}
}

func TestSessionExtend(t *testing.T) {
	s, _, err := NewSession(baseSnap())
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	delta := &graph.Delta{
		Inputs: []graph.Input{{SV: sv(10, w8), Name: "y"}},
		Assigns: []graph.Assign{
			{SV: sv(11, kind.Bool), Node: graph.Node{
				Op: graph.OpEqual, Args: []graph.SV{sv(10, w8), sv(2, w8)},
			}},
		},
		Constraints: []graph.Constraint{{Val: sv(11, kind.Bool)}},
	}
	got, err := s.Extend(delta)
	if err != nil {
		t.Fatalf("Extend() error: %v", err)
	}
	want := []string{
		"(declare-fun y () (_ BitVec 8))",
		"(define-fun s11 () Bool (= y s2))",
		"(assert s11)",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extend() mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionExtendOptions(t *testing.T) {
	s, _, err := NewSession(baseSnap())
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	delta := &graph.Delta{
		Options: []solver.Option{
			{Keyword: ":pp.decimal", Value: "true"},
			{Keyword: solver.DiagnosticOutput, Value: `"a.log"`},
			{Keyword: solver.DiagnosticOutput, Value: `"b.log"`},
		},
		Inputs:      []graph.Input{{SV: sv(10, w8), Name: "y"}},
		Constraints: []graph.Constraint{{Val: sv(3, kind.Bool)}},
	}
	got, err := s.Extend(delta)
	if err != nil {
		t.Fatalf("Extend() error: %v", err)
	}
	want := []string{
		"(set-option :pp.decimal true)",
		`(set-option :diagnostic-output-channel "b.log")`,
		"(declare-fun y () (_ BitVec 8))",
		"(assert s3)",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extend() mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionNeverRedeclares(t *testing.T) {
	day := kind.User("Weekday", "mon", "tue")
	base := baseSnap()
	base.Kinds = append(base.Kinds, day, kind.Tuple(w8, kind.Bool))
	base.Inputs = append(base.Inputs,
		graph.Input{SV: sv(20, day), Name: "d"},
		graph.Input{SV: sv(21, kind.Tuple(w8, kind.Bool)), Name: "p"},
	)
	s, baseLines, err := NewSession(base)
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	if !contains(baseLines, "(declare-datatype Weekday ((mon) (tue)))") {
		t.Fatalf("base script missing the enumeration:\n%s", strings.Join(baseLines, "\n"))
	}

	delta := &graph.Delta{
		Kinds:  []*kind.Kind{day, kind.Tuple(w8, kind.Bool)},
		Inputs: []graph.Input{{SV: sv(22, day), Name: "d2"}},
	}
	got, err := s.Extend(delta)
	if err != nil {
		t.Fatalf("Extend() error: %v", err)
	}
	for _, ln := range got {
		if strings.Contains(ln, "declare-datatype") || strings.Contains(ln, "declare-sort") {
			t.Errorf("sort re-declared in extension: %q", ln)
		}
	}
	if !contains(got, "(declare-fun d2 () Weekday)") {
		t.Errorf("new input not declared:\n%s", strings.Join(got, "\n"))
	}
}

func TestSessionNewSortInExtension(t *testing.T) {
	s, _, err := NewSession(baseSnap())
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	pair := kind.Tuple(w8, w8)
	delta := &graph.Delta{
		Kinds:  []*kind.Kind{pair},
		Inputs: []graph.Input{{SV: sv(30, pair), Name: "p"}},
	}
	got, err := s.Extend(delta)
	if err != nil {
		t.Fatalf("Extend() error: %v", err)
	}
	if !contains(got, "(declare-datatypes ((Tup2 2)) ((par (T1 T2) ((mk-tup2 (tup2.p1 T1) (tup2.p2 T2))))))") {
		t.Fatalf("new tuple arity not declared:\n%s", strings.Join(got, "\n"))
	}

	// The second extension must not repeat it.
	again, err := s.Extend(&graph.Delta{
		Kinds:  []*kind.Kind{pair},
		Inputs: []graph.Input{{SV: sv(31, pair), Name: "q"}},
	})
	if err != nil {
		t.Fatalf("Extend() error: %v", err)
	}
	for _, ln := range again {
		if strings.Contains(ln, "declare-datatypes") {
			t.Errorf("tuple datatype re-declared: %q", ln)
		}
	}
}

func TestSessionQuantifiedBaseRejected(t *testing.T) {
	snap := quantSnap()
	_, _, err := NewSession(snap)
	if !errors.Is(err, ErrNotSupported) {
		t.Errorf("NewSession() error = %v, want ErrNotSupported", err)
	}
}

func TestSessionHelperRejected(t *testing.T) {
	s, _, err := NewSession(baseSnap())
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	delta := &graph.Delta{
		Kinds:  []*kind.Kind{kind.String},
		Inputs: []graph.Input{{SV: sv(40, kind.String), Name: "s"}},
		Assigns: []graph.Assign{
			{SV: sv(41, kind.String), Node: graph.Node{
				Op: graph.OpStrReverse, Args: []graph.SV{sv(40, kind.String)},
			}},
		},
	}
	_, err = s.Extend(delta)
	if !errors.Is(err, ErrNotSupported) {
		t.Errorf("Extend() error = %v, want ErrNotSupported", err)
	}
}

func TestSessionHelperReuse(t *testing.T) {
	base := &graph.Snapshot{
		Kinds:  []*kind.Kind{kind.String},
		Inputs: []graph.Input{{SV: sv(1, kind.String), Name: "s"}},
		Assigns: []graph.Assign{
			{SV: sv(2, kind.String), Node: graph.Node{
				Op: graph.OpStrReverse, Args: []graph.SV{sv(1, kind.String)},
			}},
			{SV: sv(3, kind.Bool), Node: graph.Node{
				Op: graph.OpEqual, Args: []graph.SV{sv(1, kind.String), sv(2, kind.String)},
			}},
		},
		Goal: sv(3, kind.Bool),
		Cfg:  graph.Config{Caps: allCaps()},
	}
	s, _, err := NewSession(base)
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	delta := &graph.Delta{
		Inputs: []graph.Input{{SV: sv(10, kind.String), Name: "u"}},
		Assigns: []graph.Assign{
			{SV: sv(11, kind.String), Node: graph.Node{
				Op: graph.OpStrReverse, Args: []graph.SV{sv(10, kind.String)},
			}},
		},
	}
	got, err := s.Extend(delta)
	if err != nil {
		t.Fatalf("Extend() error: %v", err)
	}
	if !contains(got, "(define-fun s11 () String (str.rev u))") {
		t.Errorf("existing helper not reused:\n%s", strings.Join(got, "\n"))
	}
	for _, ln := range got {
		if strings.Contains(ln, "define-fun-rec") {
			t.Errorf("helper re-defined in extension: %q", ln)
		}
	}
}

func TestSessionUnmetCaps(t *testing.T) {
	snap := baseSnap()
	caps := allCaps()
	caps.DataTypes = false
	snap.Cfg.Caps = caps
	s, _, err := NewSession(snap)
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	delta := &graph.Delta{
		Kinds:  []*kind.Kind{kind.Tuple(w8, w8)},
		Inputs: []graph.Input{{SV: sv(50, kind.Tuple(w8, w8)), Name: "p"}},
	}
	_, err = s.Extend(delta)
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("Extend() error = %v, want ErrUnsupported", err)
	}
}

func TestSessionConstsOnce(t *testing.T) {
	s, _, err := NewSession(baseSnap())
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	delta := &graph.Delta{
		Consts: map[int]*graph.Literal{60: graph.LitBV(w8, 1)},
	}
	got, err := s.Extend(delta)
	if err != nil {
		t.Fatalf("Extend() error: %v", err)
	}
	if !contains(got, "(define-fun s60 () (_ BitVec 8) #b00000001)") {
		t.Fatalf("new constant not declared:\n%s", strings.Join(got, "\n"))
	}
	again, err := s.Extend(&graph.Delta{
		Consts: map[int]*graph.Literal{60: graph.LitBV(w8, 1)},
	})
	if err != nil {
		t.Fatalf("Extend() error: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("known constant re-declared:\n%s", strings.Join(again, "\n"))
	}
}
