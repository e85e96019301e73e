package graph

import (
	"github.com/provekit/smtgen/kind"
	"github.com/provekit/smtgen/solver"
)

// Input is a named free variable. Inputs listed in Snapshot.Foralls are
// bound by the single universal binder; inputs listed in Skolems are
// existentials nested inside that binder and are declared as functions
// of the forall variables.
type Input struct {
	SV   SV
	Name string
}

// Table is a memoized lookup function over an ordered element list.
type Table struct {
	ID      int
	ArgKind *kind.Kind
	ResKind *kind.Kind
	Elems   []SV
}

type ArrayHist int

const (
	FreeArray ArrayHist = iota
	MutateArray
	MergeArray
)

// Array is a mutable-array history node. Arrays form their own
// dependency chain by id: Base, Then and Else reference earlier ids.
type Array struct {
	ID     int
	Domain *kind.Kind
	Range  *kind.Kind
	Hist   ArrayHist

	// FreeArray: optional constant initializer.
	Init *SV

	// MutateArray
	Base  int
	Index SV
	Value SV

	// MergeArray
	Cond       SV
	Then, Else int
}

// Uninterp is an uninterpreted symbol with a function signature. A
// zero-length Args slice declares a constant.
type Uninterp struct {
	Name string
	Args []*kind.Kind
	Res  *kind.Kind
}

// Axiom is a raw user-supplied script fragment.
type Axiom struct {
	Name       string
	Definition bool // definition rather than unverified axiom
	Lines      []string
}

// Attr is a constraint attribute; Name carries provenance for named
// assertions.
type Attr struct {
	Name string
}

// Constraint is one (is-soft, attributes, signed literal) triple.
// Negated records that the literal's negation must be asserted.
type Constraint struct {
	Soft    bool
	Weight  int // soft only; 0 means unweighted
	Attrs   []Attr
	Negated bool
	Val     SV
}

func (c *Constraint) Names() []string {
	var res []string
	for _, a := range c.Attrs {
		if a.Name != "" {
			res = append(res, a.Name)
		}
	}
	return res
}

type QueryMode int

const (
	Satisfiability QueryMode = iota
	Validity
)

// Config is the per-query configuration record.
type Config struct {
	RoundingMode   string
	Options        []solver.Option
	LogicOverrides []string
	Interactive    bool
	Caps           solver.Caps
}

// Snapshot is the immutable input handed to the batch driver. The
// translator only reads it.
type Snapshot struct {
	Comments []string
	Mode     QueryMode

	Kinds   []*kind.Kind
	Assigns []Assign
	Consts  map[int]*Literal

	Inputs   []Input
	Foralls  []Input
	Skolems  []Input
	Trackers []Input

	Tables    []Table
	Arrays    []Array
	Uninterps []Uninterp
	Axioms    []Axiom

	Constraints []Constraint
	Goal        SV

	Cfg Config
}

// Delta is the smaller snapshot handed to the incremental driver: only
// entities new since the previous call. It never carries a forall
// frontier.
type Delta struct {
	Kinds   []*kind.Kind
	Assigns []Assign
	Consts  map[int]*Literal

	// Options carries solver settings newly required by this delta;
	// settings already sent with the base are not repeated here.
	Options []solver.Option

	Inputs    []Input
	Tables    []Table
	Arrays    []Array
	Uninterps []Uninterp

	Constraints []Constraint
}
