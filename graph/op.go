package graph

import "fmt"

// Op tags an operation node. The argument conventions for each tag are
// documented next to it; immediates (widths, indices, bounds, weights)
// ride in Node.Nums, never as argument SVs.
type Op int

const (
	// Arithmetic.
	OpPlus Op = iota
	OpMinus
	OpTimes
	OpUNeg
	OpAbs
	OpQuot // truncating division (bitvectors)
	OpRem  // remainder
	OpDiv  // floor / real / rounding-mode division by kind class
	OpMod

	// Comparison.
	OpEqual
	OpNotEqual
	OpLessThan
	OpLessEq
	OpGreaterThan
	OpGreaterEq

	// Boolean.
	OpAnd
	OpOr
	OpXor
	OpNot
	OpImplies
	OpIte // Args[0] condition, Args[1] then, Args[2] else

	// Bitvector structure. OpExtract: Nums = [hi, lo]. OpRol/OpRor:
	// Nums = [k].
	OpShl
	OpShr
	OpSar
	OpRol
	OpRor
	OpExtract
	OpJoin
	OpBAnd
	OpBOr
	OpBXor
	OpBNot

	// Overflow checks. Nums = [1] for signed, [0] for unsigned.
	OpAddOverflow
	OpSubOverflow
	OpMulOverflow

	// OpCast converts Args[0] to Node.CastTo.
	OpCast

	// OpLookup reads table Nums[0]; Args = [index, fallback].
	OpLookup

	// OpArrRead reads array Nums[0] at Args[0].
	OpArrRead

	// OpApply calls uninterpreted symbol Node.Name on Args.
	OpApply

	// Tuples. OpTupleProj: Nums = [i] (1-based), Args = [tuple].
	OpTupleCon
	OpTupleProj

	// Optionals.
	OpNothing
	OpJust
	OpMaybeVal
	OpIsJust

	// Eithers.
	OpLeft
	OpRight
	OpFromLeft
	OpFromRight
	OpIsLeft

	// Strings and characters.
	OpStrLen
	OpStrConcat
	OpStrSubstr
	OpStrAt
	OpStrContains
	OpStrReverse

	// Sequences (lists).
	OpSeqLen
	OpSeqConcat
	OpSeqUnit
	OpSeqNth
	OpSeqContains
	OpSeqReverse

	// Sets.
	OpSetMember
	OpSetInsert
	OpSetUnion
	OpSetIntersect
	OpSetComplement

	// OpRegexMatch: Args = [string]; Node.Name holds the regular
	// expression in solver syntax.
	OpRegexMatch

	// Pseudo-boolean constraints over boolean Args. Nums = [k] for the
	// unweighted forms, [k, w1, ..., wn] for the weighted forms.
	OpAtMost
	OpAtLeast
	OpExactly
	OpWeightedAtMost
	OpWeightedAtLeast
	OpWeightedExactly
)

var opNames = map[Op]string{
	OpPlus:            "plus",
	OpMinus:           "minus",
	OpTimes:           "times",
	OpUNeg:            "uneg",
	OpAbs:             "abs",
	OpQuot:            "quot",
	OpRem:             "rem",
	OpDiv:             "div",
	OpMod:             "mod",
	OpEqual:           "equal",
	OpNotEqual:        "not-equal",
	OpLessThan:        "less-than",
	OpLessEq:          "less-eq",
	OpGreaterThan:     "greater-than",
	OpGreaterEq:       "greater-eq",
	OpAnd:             "and",
	OpOr:              "or",
	OpXor:             "xor",
	OpNot:             "not",
	OpImplies:         "implies",
	OpIte:             "ite",
	OpShl:             "shl",
	OpShr:             "shr",
	OpSar:             "sar",
	OpRol:             "rol",
	OpRor:             "ror",
	OpExtract:         "extract",
	OpJoin:            "join",
	OpBAnd:            "bit-and",
	OpBOr:             "bit-or",
	OpBXor:            "bit-xor",
	OpBNot:            "bit-not",
	OpAddOverflow:     "add-overflow",
	OpSubOverflow:     "sub-overflow",
	OpMulOverflow:     "mul-overflow",
	OpCast:            "cast",
	OpLookup:          "lookup",
	OpArrRead:         "array-read",
	OpApply:           "apply",
	OpTupleCon:        "tuple-con",
	OpTupleProj:       "tuple-proj",
	OpNothing:         "nothing",
	OpJust:            "just",
	OpMaybeVal:        "maybe-val",
	OpIsJust:          "is-just",
	OpLeft:            "left",
	OpRight:           "right",
	OpFromLeft:        "from-left",
	OpFromRight:       "from-right",
	OpIsLeft:          "is-left",
	OpStrLen:          "str-len",
	OpStrConcat:       "str-concat",
	OpStrSubstr:       "str-substr",
	OpStrAt:           "str-at",
	OpStrContains:     "str-contains",
	OpStrReverse:      "str-reverse",
	OpSeqLen:          "seq-len",
	OpSeqConcat:       "seq-concat",
	OpSeqUnit:         "seq-unit",
	OpSeqNth:          "seq-nth",
	OpSeqContains:     "seq-contains",
	OpSeqReverse:      "seq-reverse",
	OpSetMember:       "set-member",
	OpSetInsert:       "set-insert",
	OpSetUnion:        "set-union",
	OpSetIntersect:    "set-intersect",
	OpSetComplement:   "set-complement",
	OpRegexMatch:      "regex-match",
	OpAtMost:          "at-most",
	OpAtLeast:         "at-least",
	OpExactly:         "exactly",
	OpWeightedAtMost:  "weighted-at-most",
	OpWeightedAtLeast: "weighted-at-least",
	OpWeightedExactly: "weighted-exactly",
}

func (o Op) String() string {
	if n, ok := opNames[o]; ok {
		return n
	}
	return fmt.Sprintf("<err: %d is not an op>", int(o))
}
