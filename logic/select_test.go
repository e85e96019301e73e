package logic

import (
	"errors"
	"strings"
	"testing"

	"github.com/provekit/smtgen/graph"
	"github.com/provekit/smtgen/kind"
	"github.com/provekit/smtgen/solver"
)

func allCaps() solver.Caps {
	return solver.Caps{
		DataTypes:       true,
		Sets:            true,
		BitVectors:      true,
		PseudoBooleans:  true,
		IntToBV:         true,
		Distinct:        true,
		DirectAccessors: true,
		DefineFun:       true,
	}
}

func snapOf(kinds ...*kind.Kind) *graph.Snapshot {
	return &graph.Snapshot{Kinds: kinds, Cfg: graph.Config{Caps: allCaps()}}
}

func TestSelect(t *testing.T) {
	w8 := kind.BV(false, 8)
	tests := []struct {
		name string
		snap *graph.Snapshot
		want string
	}{
		{"pure bitvector", snapOf(w8), "QF_BV"},
		{"pure boolean", snapOf(kind.Bool), "QF_BV"},
		{"integers force universal", snapOf(w8, kind.Integer), "ALL"},
		{"rationals force universal", snapOf(kind.Rational), "ALL"},
		{"reals force universal", snapOf(kind.Real), "ALL"},
		{"user sorts force universal", snapOf(kind.User("S")), "ALL"},
		{"tuples force universal", snapOf(kind.Tuple(w8, w8)), "ALL"},
		{"strings force universal", snapOf(kind.String), "ALL"},
		{"floats", snapOf(kind.Double), "QF_FP"},
		{"floats with bitvectors", snapOf(kind.Double, w8), "QF_BVFP"},
		{"rounding mode alone", snapOf(kind.RoundingMode), "QF_FP"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Of(tt.snap)
			got, err := Select(tt.snap, f, tt.snap.Cfg.Caps)
			if err != nil {
				t.Fatalf("Select() error: %v", err)
			}
			if got.Name != tt.want {
				t.Errorf("Select() = %s (%s), want %s", got.Name, got.Reason, tt.want)
			}
		})
	}
}

func TestSelectAssembly(t *testing.T) {
	w8 := kind.BV(false, 8)
	base := func() *graph.Snapshot { return snapOf(w8) }

	withUF := base()
	withUF.Uninterps = []graph.Uninterp{{Name: "f", Args: []*kind.Kind{w8}, Res: w8}}

	withTable := base()
	withTable.Tables = []graph.Table{{ID: 0, ArgKind: w8, ResKind: w8}}

	withArray := base()
	withArray.Arrays = []graph.Array{{ID: 0, Domain: w8, Range: w8}}

	withAll := base()
	withAll.Uninterps = withUF.Uninterps
	withAll.Arrays = withArray.Arrays

	quantified := base()
	quantified.Foralls = []graph.Input{{SV: graph.SV{ID: 1, Kind: w8}, Name: "x"}}

	axiomatized := base()
	axiomatized.Axioms = []graph.Axiom{{Name: "ax", Lines: []string{"(assert true)"}}}

	floatAxioms := snapOf(kind.Double)
	floatAxioms.Axioms = axiomatized.Axioms

	floatForalls := snapOf(kind.Double)
	floatForalls.Foralls = []graph.Input{{SV: graph.SV{ID: 1, Kind: kind.Double}, Name: "x"}}

	tests := []struct {
		name string
		snap *graph.Snapshot
		want string
	}{
		{"uninterpreted functions", withUF, "QF_UFBV"},
		{"tables count as functions", withTable, "QF_UFBV"},
		{"arrays", withArray, "QF_ABV"},
		{"arrays and functions", withAll, "QF_AUFBV"},
		{"quantified drops the prefix", quantified, "BV"},
		{"axioms drop the prefix", axiomatized, "BV"},
		{"axioms keep floats quantifier free", floatAxioms, "QF_FP"},
		{"foralls quantify floats", floatForalls, "FP"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Of(tt.snap)
			got, err := Select(tt.snap, f, tt.snap.Cfg.Caps)
			if err != nil {
				t.Fatalf("Select() error: %v", err)
			}
			if got.Name != tt.want {
				t.Errorf("Select() = %s, want %s", got.Name, tt.want)
			}
		})
	}
}

func TestSelectOverride(t *testing.T) {
	snap := snapOf(kind.Integer)
	snap.Cfg.LogicOverrides = []string{"QF_LIA"}
	got, err := Select(snap, Of(snap), snap.Cfg.Caps)
	if err != nil {
		t.Fatalf("Select() error: %v", err)
	}
	if got.Name != "QF_LIA" {
		t.Errorf("Select() = %s, want the override verbatim", got.Name)
	}

	snap.Cfg.LogicOverrides = []string{"QF_LIA", "QF_BV"}
	_, err = Select(snap, Of(snap), snap.Cfg.Caps)
	if !errors.Is(err, ErrOverride) {
		t.Fatalf("Select() error = %v, want ErrOverride", err)
	}
	for _, want := range []string{"2", "QF_LIA", "QF_BV"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("override error %q does not mention %q", err, want)
		}
	}
}

func TestSelectUnmet(t *testing.T) {
	caps := allCaps()
	caps.DataTypes = false
	caps.Sets = false
	snap := snapOf(kind.Tuple(kind.Bool, kind.Bool), kind.Set(kind.Bool))
	snap.Cfg.Caps = caps
	_, err := Select(snap, Of(snap), caps)
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Select() error = %v, want ErrUnsupported", err)
	}
	for _, want := range []string{"algebraic data types", "sets"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("unmet error %q does not mention %q", err, want)
		}
	}
}

func TestSelectInteractive(t *testing.T) {
	snap := snapOf(kind.BV(false, 8))
	snap.Cfg.Interactive = true
	got, err := Select(snap, Of(snap), snap.Cfg.Caps)
	if err != nil {
		t.Fatalf("Select() error: %v", err)
	}
	if got.Name != Universal {
		t.Errorf("Select() = %s, want %s for interactive sessions", got.Name, Universal)
	}
}

func TestUniversalReasonPrecedence(t *testing.T) {
	f := Features{Integers: true, Strings: true, Overflows: true}
	reason, ok := f.universalReason()
	if !ok || reason != "unbounded integers" {
		t.Errorf("universalReason() = %q, want the highest-precedence reason", reason)
	}
	f = Features{Strings: true, Overflows: true}
	reason, _ = f.universalReason()
	if reason != "strings" {
		t.Errorf("universalReason() = %q, want %q", reason, "strings")
	}
}

// Merging a delta's features never loses a requirement already seen.
func TestMergeMonotone(t *testing.T) {
	f := Features{Integers: true, Sets: true}
	f.Merge(Features{Strings: true})
	if !f.Integers || !f.Sets || !f.Strings {
		t.Errorf("Merge() dropped a flag: %+v", f)
	}
}
