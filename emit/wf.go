package emit

import (
	"fmt"
	"strings"

	"github.com/provekit/smtgen/kind"
)

// Well-formedness constraints. A character value must be a length-one
// string; a rational's denominator must be positive. The constraint is
// injected by one generic recursive walk over the kind shape; if no
// character or rational occurs anywhere in the shape, nothing is
// emitted.

func needsWF(k *kind.Kind) bool {
	return k.Contains(func(kk *kind.Kind) bool {
		return kk.Type == kind.CharType || kk.Type == kind.RationalType
	})
}

// wfConstraint returns the constraint text for value expression v of
// kind k, or "" when the shape needs none.
func (st *state) wfConstraint(k *kind.Kind, v string) string {
	if !needsWF(k) {
		return ""
	}
	return st.wfWalk(k, v, 0)
}

func (st *state) wfWalk(k *kind.Kind, v string, depth int) string {
	switch k.Type {
	case kind.CharType:
		return fmt.Sprintf("(= 1 (str.len %s))", v)
	case kind.RationalType:
		return fmt.Sprintf("(> (rat.den %s) 0)", v)
	case kind.ListType:
		// For every index of the sequence.
		idx := fmt.Sprintf("wf!%d", depth)
		inner := st.wfWalk(k.Elem, fmt.Sprintf("(seq.nth %s %s)", v, idx), depth+1)
		return fmt.Sprintf("(forall ((%s Int)) (=> (and (<= 0 %s) (< %s (seq.len %s))) %s))",
			idx, idx, idx, v, inner)
	case kind.SetType:
		// For every member of the set.
		el := fmt.Sprintf("wf!%d", depth)
		inner := st.wfWalk(k.Elem, el, depth+1)
		return fmt.Sprintf("(forall ((%s %s)) (=> (select %s %s) %s))",
			el, smtSort(k.Elem), v, el, inner)
	case kind.TupleType:
		var parts []string
		for i, e := range k.Kinds {
			if !needsWF(e) {
				continue
			}
			proj, err := st.projTuple(k, i+1, v)
			if err != nil {
				continue
			}
			parts = append(parts, st.wfWalk(e, proj, depth))
		}
		if len(parts) == 1 {
			return parts[0]
		}
		return fmt.Sprintf("(and %s)", strings.Join(parts, " "))
	case kind.MaybeType:
		val, err := st.maybeVal(k, v)
		if err != nil {
			return "true"
		}
		return fmt.Sprintf("(=> ((_ is opt.some) %s) %s)", v, st.wfWalk(k.Elem, val, depth))
	case kind.EitherType:
		var parts []string
		if needsWF(k.Left) {
			val, err := st.fromEither(k, true, v)
			if err == nil {
				parts = append(parts, fmt.Sprintf("(=> ((_ is sum.left) %s) %s)",
					v, st.wfWalk(k.Left, val, depth)))
			}
		}
		if needsWF(k.Right) {
			val, err := st.fromEither(k, false, v)
			if err == nil {
				parts = append(parts, fmt.Sprintf("(=> ((_ is sum.right) %s) %s)",
					v, st.wfWalk(k.Right, val, depth)))
			}
		}
		if len(parts) == 1 {
			return parts[0]
		}
		return fmt.Sprintf("(and %s)", strings.Join(parts, " "))
	default:
		// Scalar without characters or rationals inside; the callers
		// prune these via needsWF.
		return "true"
	}
}

// assertWF emits the well-formedness assertion for a declared symbol.
// args carries the symbol's argument sorts; functions get a universal
// wrapper over fresh variables applied to the symbol.
func (st *state) assertWF(name string, args []string, k *kind.Kind) {
	if !needsWF(k) {
		return
	}
	v := name
	if len(args) > 0 {
		binds := make([]string, len(args))
		vars := make([]string, len(args))
		for i, s := range args {
			vars[i] = fmt.Sprintf("wfa!%d", i)
			binds[i] = fmt.Sprintf("(%s %s)", vars[i], s)
		}
		v = fmt.Sprintf("(%s %s)", name, strings.Join(vars, " "))
		st.addf("(assert (forall (%s) %s))",
			strings.Join(binds, " "), st.wfConstraint(k, v))
		return
	}
	st.addf("(assert %s)", st.wfConstraint(k, v))
}
