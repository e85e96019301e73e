package emit

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/provekit/smtgen/graph"
	"github.com/provekit/smtgen/kind"
)

// Symbol naming. Program variables are s<id>, tables table<id>, arrays
// array_<id>; inputs and trackers keep their registered names.

func svName(id int) string {
	return fmt.Sprintf("s%d", id)
}

func tableName(id int) string {
	return fmt.Sprintf("table%d", id)
}

func arrayName(id int) string {
	return fmt.Sprintf("array_%d", id)
}

func tupleSort(arity int) string {
	return fmt.Sprintf("Tup%d", arity)
}

func tupleCtor(arity int) string {
	return fmt.Sprintf("mk-tup%d", arity)
}

func tupleProj(arity, i int) string {
	return fmt.Sprintf("tup%d.p%d", arity, i)
}

// smtSort renders the sort text for a kind. Characters are length-one
// strings, sets are boolean-ranged arrays, lists are sequences.
func smtSort(k *kind.Kind) string {
	switch k.Type {
	case kind.BoolType:
		return "Bool"
	case kind.BVType:
		return fmt.Sprintf("(_ BitVec %d)", k.Width)
	case kind.IntegerType:
		return "Int"
	case kind.RealType:
		return "Real"
	case kind.FloatType:
		return fmt.Sprintf("(_ FloatingPoint %d %d)", k.EB, k.SB)
	case kind.RationalType:
		return "Rational"
	case kind.CharType, kind.StringType:
		return "String"
	case kind.ListType:
		return fmt.Sprintf("(Seq %s)", smtSort(k.Elem))
	case kind.SetType:
		return fmt.Sprintf("(Array %s Bool)", smtSort(k.Elem))
	case kind.TupleType:
		if len(k.Kinds) == 0 {
			return tupleSort(0)
		}
		elems := make([]string, len(k.Kinds))
		for i, e := range k.Kinds {
			elems[i] = smtSort(e)
		}
		return fmt.Sprintf("(%s %s)", tupleSort(len(k.Kinds)), strings.Join(elems, " "))
	case kind.MaybeType:
		return fmt.Sprintf("(Opt %s)", smtSort(k.Elem))
	case kind.EitherType:
		return fmt.Sprintf("(Sum %s %s)", smtSort(k.Left), smtSort(k.Right))
	case kind.UserType:
		return k.Name
	default:
		panic("kind type")
	}
}

// quoteSMT renders a string literal, doubling embedded quotes per the
// solver input language.
func quoteSMT(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// bvLit renders v as a binary bitvector literal of the given width,
// reducing modulo 2^width so negative values take their two's
// complement form.
func bvLit(v *big.Int, width int) string {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(width))
	red := new(big.Int).Mod(v, mod)
	text := red.Text(2)
	if pad := width - len(text); pad > 0 {
		text = strings.Repeat("0", pad) + text
	}
	return "#b" + text
}

func intLit(v *big.Int) string {
	if v.Sign() < 0 {
		return fmt.Sprintf("(- %s)", new(big.Int).Neg(v))
	}
	return v.String()
}

func realLit(v float64) string {
	text := fmt.Sprintf("%v", v)
	if !strings.ContainsAny(text, ".eE") {
		text += ".0"
	}
	if strings.HasPrefix(text, "-") {
		return fmt.Sprintf("(- %s)", text[1:])
	}
	return text
}

// smtLit renders a literal in the sort demanded by its kind. rm is the
// rounding mode used for floating literals.
func smtLit(l *graph.Literal, rm string) string {
	k := l.Kind
	switch k.Type {
	case kind.BoolType:
		if l.Bool {
			return "true"
		}
		return "false"
	case kind.BVType:
		return bvLit(l.Int, k.Width)
	case kind.IntegerType:
		return intLit(l.Int)
	case kind.RealType:
		return realLit(l.Float)
	case kind.FloatType:
		return fmt.Sprintf("((_ to_fp %d %d) %s %s)", k.EB, k.SB, rm, realLit(l.Float))
	case kind.RationalType:
		return fmt.Sprintf("(mk-rat %s %s)", intLit(l.Num), intLit(l.Den))
	case kind.CharType, kind.StringType:
		return quoteSMT(l.Str)
	case kind.ListType:
		res := fmt.Sprintf("(as seq.empty %s)", smtSort(k))
		for i := len(l.Elems) - 1; i >= 0; i-- {
			res = fmt.Sprintf("(seq.++ (seq.unit %s) %s)", smtLit(l.Elems[i], rm), res)
		}
		return res
	case kind.SetType:
		res := fmt.Sprintf("((as const %s) false)", smtSort(k))
		for _, e := range l.Elems {
			res = fmt.Sprintf("(store %s %s true)", res, smtLit(e, rm))
		}
		return res
	case kind.TupleType:
		if len(l.Elems) == 0 {
			return tupleCtor(0)
		}
		parts := make([]string, len(l.Elems))
		for i, e := range l.Elems {
			parts[i] = smtLit(e, rm)
		}
		return fmt.Sprintf("((as %s %s) %s)",
			tupleCtor(len(l.Elems)), smtSort(k), strings.Join(parts, " "))
	case kind.MaybeType:
		if len(l.Elems) == 0 {
			return fmt.Sprintf("(as opt.none %s)", smtSort(k))
		}
		return fmt.Sprintf("((as opt.some %s) %s)", smtSort(k), smtLit(l.Elems[0], rm))
	case kind.UserType:
		return l.Str
	default:
		panic("kind type")
	}
}

// zeroValue is the default literal text for a kind, used as the range
// guard fallback and the total-match filler for accessors.
func zeroValue(k *kind.Kind, rm string) (string, error) {
	switch k.Type {
	case kind.BoolType:
		return "false", nil
	case kind.BVType:
		return bvLit(big.NewInt(0), k.Width), nil
	case kind.IntegerType:
		return "0", nil
	case kind.RealType:
		return "0.0", nil
	case kind.FloatType:
		return fmt.Sprintf("((_ to_fp %d %d) %s 0.0)", k.EB, k.SB, rm), nil
	case kind.RationalType:
		return "(mk-rat 0 1)", nil
	case kind.CharType:
		return quoteSMT("\x00"), nil
	case kind.StringType:
		return quoteSMT(""), nil
	case kind.ListType:
		return fmt.Sprintf("(as seq.empty %s)", smtSort(k)), nil
	case kind.SetType:
		return fmt.Sprintf("((as const %s) false)", smtSort(k)), nil
	case kind.TupleType:
		if len(k.Kinds) == 0 {
			return tupleCtor(0), nil
		}
		parts := make([]string, len(k.Kinds))
		for i, e := range k.Kinds {
			v, err := zeroValue(e, rm)
			if err != nil {
				return "", err
			}
			parts[i] = v
		}
		return fmt.Sprintf("((as %s %s) %s)",
			tupleCtor(len(k.Kinds)), smtSort(k), strings.Join(parts, " ")), nil
	case kind.MaybeType:
		return fmt.Sprintf("(as opt.none %s)", smtSort(k)), nil
	case kind.EitherType:
		left, err := zeroValue(k.Left, rm)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("((as sum.left %s) %s)", smtSort(k), left), nil
	case kind.UserType:
		if k.IsEnum() {
			return k.Ctors[0], nil
		}
		return "", fmt.Errorf("%w: no default value for sort %s", ErrInternal, k)
	default:
		return "", fmt.Errorf("%w: no default value for %s", ErrInternal, k)
	}
}
