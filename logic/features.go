package logic

import (
	"github.com/provekit/smtgen/graph"
	"github.com/provekit/smtgen/kind"
	"github.com/provekit/smtgen/solver"
)

// Features are the boolean flags derived from one scan over the kind
// set and the operation graph.
type Features struct {
	Integers     bool // unbounded integers
	Reals        bool
	Rationals    bool
	Floats       bool
	RoundingMode bool
	UserSorts    bool // any user sort other than the rounding mode sort
	BitVectors   bool
	NonBVArrays  bool // arrays not indexed by a bitvector
	ArrayInits   bool // array literal initializers
	Overflows    bool // overflow-check operators
	Lists        bool
	Sets         bool
	Tuples       bool
	Sums         bool
	Maybes       bool
	Chars        bool
	Strings      bool
	Regexes      bool
}

// Of scans a full snapshot.
func Of(snap *graph.Snapshot) Features {
	return scan(snap.Kinds, snap.Assigns, snap.Arrays)
}

// OfDelta scans an incremental delta.
func OfDelta(d *graph.Delta) Features {
	return scan(d.Kinds, d.Assigns, d.Arrays)
}

func scan(kinds []*kind.Kind, assigns []graph.Assign, arrays []graph.Array) Features {
	f := Features{}
	for _, k := range kinds {
		k.Walk(func(kk *kind.Kind) bool {
			f.addKind(kk)
			return true
		})
	}
	for i := range assigns {
		switch assigns[i].Node.Op {
		case graph.OpAddOverflow, graph.OpSubOverflow, graph.OpMulOverflow:
			f.Overflows = true
		case graph.OpRegexMatch:
			f.Regexes = true
		}
	}
	for i := range arrays {
		arr := &arrays[i]
		if arr.Domain.Type != kind.BVType {
			f.NonBVArrays = true
		}
		if arr.Hist == graph.FreeArray && arr.Init != nil {
			f.ArrayInits = true
		}
	}
	return f
}

func (f *Features) addKind(k *kind.Kind) {
	switch k.Type {
	case kind.IntegerType:
		f.Integers = true
	case kind.RealType:
		f.Reals = true
	case kind.RationalType:
		f.Rationals = true
	case kind.FloatType:
		f.Floats = true
	case kind.BVType:
		f.BitVectors = true
	case kind.UserType:
		if k.IsRoundingMode() {
			f.RoundingMode = true
		} else {
			f.UserSorts = true
		}
	case kind.ListType:
		f.Lists = true
	case kind.SetType:
		f.Sets = true
	case kind.TupleType:
		f.Tuples = true
	case kind.EitherType:
		f.Sums = true
	case kind.MaybeType:
		f.Maybes = true
	case kind.CharType:
		f.Chars = true
	case kind.StringType:
		f.Strings = true
	}
}

// Merge folds other into f, used by the incremental session to grow
// its view of required features.
func (f *Features) Merge(other Features) {
	f.Integers = f.Integers || other.Integers
	f.Reals = f.Reals || other.Reals
	f.Rationals = f.Rationals || other.Rationals
	f.Floats = f.Floats || other.Floats
	f.RoundingMode = f.RoundingMode || other.RoundingMode
	f.UserSorts = f.UserSorts || other.UserSorts
	f.BitVectors = f.BitVectors || other.BitVectors
	f.NonBVArrays = f.NonBVArrays || other.NonBVArrays
	f.ArrayInits = f.ArrayInits || other.ArrayInits
	f.Overflows = f.Overflows || other.Overflows
	f.Lists = f.Lists || other.Lists
	f.Sets = f.Sets || other.Sets
	f.Tuples = f.Tuples || other.Tuples
	f.Sums = f.Sums || other.Sums
	f.Maybes = f.Maybes || other.Maybes
	f.Chars = f.Chars || other.Chars
	f.Strings = f.Strings || other.Strings
	f.Regexes = f.Regexes || other.Regexes
}

// universalReason returns the first feature forcing the universal
// logic, in the fixed precedence order the selector documents.
func (f Features) universalReason() (string, bool) {
	switch {
	case f.Integers:
		return "unbounded integers", true
	case f.Rationals:
		return "rationals", true
	case f.Reals:
		return "reals", true
	case f.UserSorts:
		return "user sorts", true
	case f.NonBVArrays:
		return "non-bitvector arrays", true
	case f.Tuples:
		return "tuples", true
	case f.Sums:
		return "sum types", true
	case f.Maybes:
		return "optional types", true
	case f.Sets:
		return "sets", true
	case f.Lists:
		return "lists", true
	case f.Chars:
		return "characters", true
	case f.Strings:
		return "strings", true
	case f.Regexes:
		return "regular expressions", true
	case f.ArrayInits:
		return "array initializers", true
	case f.Overflows:
		return "overflow checks", true
	}
	return "", false
}

// Unmet lists every feature the capability record cannot serve. Only
// features with no fallback encoding appear here; pseudo-booleans,
// int-to-bitvector casts and distinctness all have reductions.
func (f Features) Unmet(caps solver.Caps) []string {
	var res []string
	needDT := f.Tuples || f.Sums || f.Maybes || f.Rationals
	if needDT && !caps.DataTypes {
		res = append(res, "algebraic data types")
	}
	if f.Sets && !caps.Sets {
		res = append(res, "sets")
	}
	if f.BitVectors && !caps.BitVectors {
		res = append(res, "bitvectors")
	}
	return res
}
