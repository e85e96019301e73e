package kind

import (
	"fmt"
	"strings"
)

type Type int

const (
	BoolType Type = iota
	BVType
	IntegerType
	RealType
	FloatType
	RationalType
	CharType
	StringType
	ListType
	SetType
	TupleType
	MaybeType
	EitherType
	UserType
)

func (t Type) String() string {
	switch t {
	case BoolType:
		return "Bool"
	case BVType:
		return "BV"
	case IntegerType:
		return "Integer"
	case RealType:
		return "Real"
	case FloatType:
		return "Float"
	case RationalType:
		return "Rational"
	case CharType:
		return "Char"
	case StringType:
		return "String"
	case ListType:
		return "List"
	case SetType:
		return "Set"
	case TupleType:
		return "Tuple"
	case MaybeType:
		return "Maybe"
	case EitherType:
		return "Either"
	case UserType:
		return "User"
	default:
		return fmt.Sprintf("<err: %d is not a kind type>", t)
	}
}

// Kind is the sort tag attached to every symbolic value. It is a closed
// tagged union over the value sorts the translator understands; which
// payload fields are meaningful depends on Type. Kinds nest arbitrarily
// through Elem, Left/Right and Kinds.
type Kind struct {
	Type Type

	// BVType
	Signed bool
	Width  int

	// FloatType: exponent and significand bit counts.
	EB, SB int

	// ListType, SetType, MaybeType
	Elem *Kind

	// EitherType
	Left, Right *Kind

	// TupleType
	Kinds []*Kind

	// UserType; Ctors is non-nil for finite enumerations.
	Name  string
	Ctors []string
}

var (
	Bool     = &Kind{Type: BoolType}
	Integer  = &Kind{Type: IntegerType}
	Real     = &Kind{Type: RealType}
	Rational = &Kind{Type: RationalType}
	Char     = &Kind{Type: CharType}
	String   = &Kind{Type: StringType}

	Float32 = &Kind{Type: FloatType, EB: 8, SB: 24}
	Double  = &Kind{Type: FloatType, EB: 11, SB: 53}

	// RoundingMode is the built-in rounding mode sort; it is never
	// declared and does not count as a user sort for logic selection.
	RoundingMode = &Kind{Type: UserType, Name: RoundingModeName}
)

const RoundingModeName = "RoundingMode"

func BV(signed bool, width int) *Kind {
	return &Kind{Type: BVType, Signed: signed, Width: width}
}

func Float(eb, sb int) *Kind {
	return &Kind{Type: FloatType, EB: eb, SB: sb}
}

func List(elem *Kind) *Kind {
	return &Kind{Type: ListType, Elem: elem}
}

func Set(elem *Kind) *Kind {
	return &Kind{Type: SetType, Elem: elem}
}

func Tuple(kinds ...*Kind) *Kind {
	return &Kind{Type: TupleType, Kinds: kinds}
}

func Maybe(elem *Kind) *Kind {
	return &Kind{Type: MaybeType, Elem: elem}
}

func Either(left, right *Kind) *Kind {
	return &Kind{Type: EitherType, Left: left, Right: right}
}

func User(name string, ctors ...string) *Kind {
	return &Kind{Type: UserType, Name: name, Ctors: ctors}
}

// String renders a canonical form of the kind. The result doubles as
// the map key wherever kinds index sets, so two kinds are equal iff
// their strings are equal.
func (k *Kind) String() string {
	switch k.Type {
	case BoolType, IntegerType, RealType, RationalType, CharType, StringType:
		return k.Type.String()
	case BVType:
		if k.Signed {
			return fmt.Sprintf("SInt %d", k.Width)
		}
		return fmt.Sprintf("UInt %d", k.Width)
	case FloatType:
		return fmt.Sprintf("Float %d %d", k.EB, k.SB)
	case ListType:
		return fmt.Sprintf("(List %s)", k.Elem)
	case SetType:
		return fmt.Sprintf("(Set %s)", k.Elem)
	case TupleType:
		elems := make([]string, len(k.Kinds))
		for i, e := range k.Kinds {
			elems[i] = e.String()
		}
		return fmt.Sprintf("(Tuple %s)", strings.Join(elems, " "))
	case MaybeType:
		return fmt.Sprintf("(Maybe %s)", k.Elem)
	case EitherType:
		return fmt.Sprintf("(Either %s %s)", k.Left, k.Right)
	case UserType:
		return k.Name
	default:
		panic("kind type")
	}
}

func (k *Kind) Equal(o *Kind) bool {
	if k == o {
		return true
	}
	if k == nil || o == nil {
		return false
	}
	return k.String() == o.String()
}

// IsRoundingMode reports whether k is the built-in rounding mode sort.
func (k *Kind) IsRoundingMode() bool {
	return k.Type == UserType && k.Name == RoundingModeName
}

// IsEnum reports whether k is a user sort with a finite enumeration of
// named constructors.
func (k *Kind) IsEnum() bool {
	return k.Type == UserType && len(k.Ctors) > 0
}
