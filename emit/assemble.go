package emit

import (
	"fmt"
	"strings"

	"github.com/provekit/smtgen/graph"
	"github.com/provekit/smtgen/kind"
)

// Assertion assembly. Unnamed hard constraints and the goal are folded
// into one conjunction; a trivially-true conjunct is dropped, a
// trivially-false one collapses the whole assertion to false. Soft and
// named constraints are asserted separately and never participate in
// the fold.

// signedText renders a possibly-negated boolean literal. konst reports
// that the value is a known constant, in which case value carries it
// and text is unset.
func (st *state) signedText(v graph.SV, negated bool) (text string, konst bool, value bool) {
	if lit, ok := st.lit(v); ok && lit.Kind.Type == kind.BoolType {
		return "", true, lit.Bool != negated
	}
	text = st.ref(v)
	if negated {
		text = "(not " + text + ")"
	}
	return text, false, false
}

func (st *state) emitSoft(c *graph.Constraint) {
	text, konst, value := st.signedText(c.Val, c.Negated)
	if konst {
		if value {
			return
		}
		text = "false"
	}
	line := "(assert-soft " + text
	if c.Weight != 0 {
		line += fmt.Sprintf(" :weight %d", c.Weight)
	}
	if names := c.Names(); len(names) > 0 {
		line += " :id " + names[0]
	}
	st.add(line + ")")
}

func (st *state) emitNamed(c *graph.Constraint, names []string) {
	text, konst, value := st.signedText(c.Val, c.Negated)
	if konst {
		if value {
			text = "true"
		} else {
			text = "false"
		}
	}
	for _, nm := range names {
		st.addf("(assert (! %s :named %s))", text, nm)
	}
}

// fold collects the unnamed hard conjuncts plus the goal. collapse
// reports a trivially-false conjunct.
func (st *state) fold(constraints []graph.Constraint, goal graph.SV, mode graph.QueryMode) (parts []string, collapse bool) {
	conj := func(v graph.SV, negated bool) bool {
		text, konst, value := st.signedText(v, negated)
		if konst {
			return value
		}
		parts = append(parts, text)
		return true
	}
	for i := range constraints {
		c := &constraints[i]
		if c.Soft || len(c.Names()) > 0 {
			continue
		}
		if !conj(c.Val, c.Negated) {
			return nil, true
		}
	}
	if !conj(goal, mode == graph.Validity) {
		return nil, true
	}
	return parts, false
}

func combined(parts []string) string {
	switch len(parts) {
	case 0:
		return "true"
	case 1:
		return parts[0]
	default:
		return "(and " + strings.Join(parts, " ") + ")"
	}
}

func (st *state) assemble(snap *graph.Snapshot) error {
	for i := range snap.Constraints {
		c := &snap.Constraints[i]
		if c.Soft {
			st.emitSoft(c)
		} else if names := c.Names(); len(names) > 0 {
			st.emitNamed(c, names)
		}
	}
	parts, collapse := st.fold(snap.Constraints, snap.Goal, snap.Mode)
	if collapse {
		st.add("(assert false)")
		return nil
	}
	body := combined(parts)
	if len(st.foralls) == 0 {
		st.add("(assert " + body + ")")
		return nil
	}
	return st.assembleQuantified(snap.Assigns, body)
}

// assembleQuantified wraps the combined assertion in the single
// universal binder. Assignments classified as post-quantifier become
// nested let bindings; the delayed skolem-table and deferred-array
// equalities are conjoined with the body inside the binder.
func (st *state) assembleQuantified(assigns []graph.Assign, body string) error {
	binds := make([]string, len(st.foralls))
	for i, fv := range st.foralls {
		binds[i] = fmt.Sprintf("(%s %s)", fv.Name, smtSort(fv.SV.Kind))
	}
	st.addf("(assert (forall (%s)", strings.Join(binds, " "))

	lets := 0
	for i := range assigns {
		sv := assigns[i].SV
		if !st.post[sv.ID] {
			continue
		}
		text, err := st.exprText(sv.Kind, &assigns[i].Node)
		if err != nil {
			return err
		}
		st.addf("%s(let ((%s %s))", strings.Repeat("  ", lets+1), svName(sv.ID), text)
		lets++
	}
	if len(st.qdelayed) > 0 {
		all := append([]string{}, st.qdelayed...)
		if body != "true" {
			all = append(all, body)
		}
		body = combined(all)
	}
	st.add(strings.Repeat("  ", lets+1) + body)
	st.add(strings.Repeat(")", lets+2))
	return nil
}
