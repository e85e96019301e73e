package graph

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/provekit/smtgen/kind"
)

// Literal is a concrete value attached to an SV by the constants map.
// Which field is meaningful depends on Kind.Type. Rationals are kept
// unreduced: Num/Den are stored exactly as constructed and must never
// be compared structurally.
type Literal struct {
	Kind *kind.Kind

	Bool     bool
	Int      *big.Int // IntegerType and BVType
	Num, Den *big.Int // RationalType
	Float    float64  // FloatType and RealType
	Str      string   // CharType, StringType and enum constructor names
	Elems    []*Literal
}

func LitBool(v bool) *Literal {
	return &Literal{Kind: kind.Bool, Bool: v}
}

func LitInt(v int64) *Literal {
	return &Literal{Kind: kind.Integer, Int: big.NewInt(v)}
}

func LitBV(k *kind.Kind, v int64) *Literal {
	return &Literal{Kind: k, Int: big.NewInt(v)}
}

func LitReal(v float64) *Literal {
	return &Literal{Kind: kind.Real, Float: v}
}

func LitFloat(k *kind.Kind, v float64) *Literal {
	return &Literal{Kind: k, Float: v}
}

func LitRat(num, den int64) *Literal {
	return &Literal{Kind: kind.Rational, Num: big.NewInt(num), Den: big.NewInt(den)}
}

func LitChar(c rune) *Literal {
	return &Literal{Kind: kind.Char, Str: string(c)}
}

func LitString(v string) *Literal {
	return &Literal{Kind: kind.String, Str: v}
}

func (l *Literal) IsTrue() bool {
	return l.Kind.Type == kind.BoolType && l.Bool
}

func (l *Literal) IsFalse() bool {
	return l.Kind.Type == kind.BoolType && !l.Bool
}

func (l *Literal) String() string {
	switch l.Kind.Type {
	case kind.BoolType:
		return strconv.FormatBool(l.Bool)
	case kind.IntegerType, kind.BVType:
		return l.Int.String()
	case kind.RationalType:
		return fmt.Sprintf("%s/%s", l.Num, l.Den)
	case kind.RealType, kind.FloatType:
		return strconv.FormatFloat(l.Float, 'f', -1, 64)
	case kind.CharType, kind.StringType:
		return strconv.Quote(l.Str)
	default:
		return fmt.Sprintf("<%s literal>", l.Kind)
	}
}
