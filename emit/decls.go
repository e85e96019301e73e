package emit

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/provekit/smtgen/graph"
	"github.com/provekit/smtgen/kind"
	"github.com/provekit/smtgen/logic"
	"github.com/provekit/smtgen/solver"
)

// Declaration emitters. Emission follows a strict order so that later
// sections may reference earlier ones and never the converse; the
// drivers call these in that order.

func (st *state) emitComments(comments []string) {
	for _, c := range comments {
		st.comment(c)
	}
}

func (st *state) emitSettings(opts []solver.Option) {
	st.add("(set-option :produce-models true)")
	for _, o := range solver.DedupOptions(opts) {
		st.add(o.Line())
	}
}

func (st *state) emitLogic(lg logic.Logic) {
	if lg.Reason != "" {
		st.comment("logic: " + lg.Reason)
	}
	st.addf("(set-logic %s)", lg.Name)
}

// emitUserSorts declares uninterpreted sorts and enumeration
// datatypes, skipping the built-in rounding mode sort. seen carries
// the sorts already declared in this session.
func (st *state) emitUserSorts(kinds []*kind.Kind, seen map[string]bool) {
	for _, k := range kinds {
		k.Walk(func(kk *kind.Kind) bool {
			if kk.Type != kind.UserType || kk.IsRoundingMode() || seen[kk.Name] {
				return true
			}
			seen[kk.Name] = true
			if kk.IsEnum() {
				ctors := make([]string, len(kk.Ctors))
				for i, c := range kk.Ctors {
					ctors[i] = "(" + c + ")"
				}
				st.addf("(declare-datatype %s (%s))", kk.Name, strings.Join(ctors, " "))
			} else {
				st.addf("(declare-sort %s 0)", kk.Name)
			}
			return true
		})
	}
}

// emitTupleDecls declares the tuple datatypes used, grouped by arity
// ascending. Arity 0 is the unit datatype; arity 1 never occurs.
func (st *state) emitTupleDecls(kinds []*kind.Kind, seen map[int]bool) error {
	arities := map[int]bool{}
	for _, k := range kinds {
		k.Walk(func(kk *kind.Kind) bool {
			if kk.Type == kind.TupleType && !seen[len(kk.Kinds)] {
				arities[len(kk.Kinds)] = true
			}
			return true
		})
	}
	ordered := make([]int, 0, len(arities))
	for n := range arities {
		ordered = append(ordered, n)
	}
	sort.Ints(ordered)
	for _, n := range ordered {
		seen[n] = true
		switch {
		case n == 0:
			st.addf("(declare-datatype %s ((%s)))", tupleSort(0), tupleCtor(0))
		case n == 1:
			return fmt.Errorf("%w: tuple of arity 1", ErrInternal)
		default:
			params := make([]string, n)
			fields := make([]string, n)
			for i := 0; i < n; i++ {
				params[i] = fmt.Sprintf("T%d", i+1)
				fields[i] = fmt.Sprintf("(%s T%d)", tupleProj(n, i+1), i+1)
			}
			st.addf("(declare-datatypes ((%s %d)) ((par (%s) ((%s %s)))))",
				tupleSort(n), n, strings.Join(params, " "),
				tupleCtor(n), strings.Join(fields, " "))
		}
	}
	return nil
}

func (st *state) emitMaybeDecl() {
	st.add("(declare-datatypes ((Opt 1)) ((par (T) ((opt.none) (opt.some (opt.val T))))))")
}

func (st *state) emitSumDecl() {
	st.add("(declare-datatypes ((Sum 2)) ((par (L R) ((sum.left (sum.from-left L)) (sum.right (sum.from-right R))))))")
}

// emitRationalDecls declares the rational datatype and its helper
// definitions. Rationals are kept unreduced, so every comparison and
// arithmetic operator is a cross-multiplication closed form; the
// positive-denominator well-formedness constraint makes the
// comparisons sound.
func (st *state) emitRationalDecls() {
	st.add("(declare-datatype Rational ((mk-rat (rat.num Int) (rat.den Int))))")
	st.add("(define-fun rat.eq ((a!r Rational) (b!r Rational)) Bool (= (* (rat.num a!r) (rat.den b!r)) (* (rat.num b!r) (rat.den a!r))))")
	st.add("(define-fun rat.lt ((a!r Rational) (b!r Rational)) Bool (< (* (rat.num a!r) (rat.den b!r)) (* (rat.num b!r) (rat.den a!r))))")
	st.add("(define-fun rat.leq ((a!r Rational) (b!r Rational)) Bool (<= (* (rat.num a!r) (rat.den b!r)) (* (rat.num b!r) (rat.den a!r))))")
	st.add("(define-fun rat.add ((a!r Rational) (b!r Rational)) Rational (mk-rat (+ (* (rat.num a!r) (rat.den b!r)) (* (rat.num b!r) (rat.den a!r))) (* (rat.den a!r) (rat.den b!r))))")
	st.add("(define-fun rat.sub ((a!r Rational) (b!r Rational)) Rational (mk-rat (- (* (rat.num a!r) (rat.den b!r)) (* (rat.num b!r) (rat.den a!r))) (* (rat.den a!r) (rat.den b!r))))")
	st.add("(define-fun rat.mul ((a!r Rational) (b!r Rational)) Rational (mk-rat (* (rat.num a!r) (rat.num b!r)) (* (rat.den a!r) (rat.den b!r))))")
}

// emitConsts declares literal constants in identifier order. The
// true/false literals are never declared, only inlined.
func (st *state) emitConsts(consts map[int]*graph.Literal, skip map[int]bool) {
	ids := make([]int, 0, len(consts))
	for id := range consts {
		if skip[id] {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		lit := consts[id]
		if lit.Kind.Type == kind.BoolType {
			continue
		}
		name := svName(id)
		text := smtLit(lit, st.rm)
		if st.caps.DefineFun {
			st.addf("(define-fun %s () %s %s)", name, smtSort(lit.Kind), text)
		} else {
			st.addf("(declare-fun %s () %s)", name, smtSort(lit.Kind))
			st.addf("(assert (= %s %s))", name, text)
		}
		st.assertWF(name, nil, lit.Kind)
	}
}

func (st *state) emitInputs(inputs []graph.Input) {
	for _, in := range inputs {
		st.addf("(declare-fun %s () %s)", in.Name, smtSort(in.SV.Kind))
		st.assertWF(in.Name, nil, in.SV.Kind)
	}
}

// emitSkolems declares skolemized inputs: functions of the enclosing
// universal variables.
func (st *state) emitSkolems(skolems []graph.Input) {
	sorts := st.forallSorts()
	for _, in := range skolems {
		st.addf("(declare-fun %s (%s) %s)",
			in.Name, strings.Join(sorts, " "), smtSort(in.SV.Kind))
		st.assertWF(in.Name, sorts, in.SV.Kind)
	}
}

func (st *state) emitTrackers(trackers []graph.Input) {
	for _, in := range trackers {
		st.addf("(declare-fun %s () %s) ; tracker", in.Name, smtSort(in.SV.Kind))
	}
}

func indexLit(argKind *kind.Kind, i int) (string, error) {
	switch argKind.Type {
	case kind.BoolType:
		if i == 0 {
			return "false", nil
		}
		return "true", nil
	case kind.BVType:
		return bvLit(big.NewInt(int64(i)), argKind.Width), nil
	case kind.IntegerType:
		return fmt.Sprintf("%d", i), nil
	case kind.UserType:
		if argKind.IsEnum() && i < len(argKind.Ctors) {
			return argKind.Ctors[i], nil
		}
	}
	return "", fmt.Errorf("%w: cannot index table by %s", ErrInternal, argKind)
}

// emitConstTables declares constant tables and asserts their
// initializers immediately; everything they need is literal.
func (st *state) emitConstTables(tables []graph.Table) error {
	for _, t := range tables {
		st.addf("(declare-fun %s (%s) %s)",
			tableName(t.ID), smtSort(t.ArgKind), smtSort(t.ResKind))
		for i, e := range t.Elems {
			idx, err := indexLit(t.ArgKind, i)
			if err != nil {
				return err
			}
			lit, ok := st.lit(e)
			if !ok {
				return fmt.Errorf("%w: constant table %d has a symbolic element", ErrInternal, t.ID)
			}
			st.addf("(assert (= %s %s))", st.tableCall(t.ID, idx), smtLit(lit, st.rm))
		}
	}
	return nil
}

// emitSymTables declares skolemized tables, their signature extended
// with the universal-variable types, and queues their element
// equalities for the delayed blocks.
func (st *state) emitSymTables(tables []graph.Table) error {
	sorts := st.forallSorts()
	for _, t := range tables {
		sig := append(append([]string{}, sorts...), smtSort(t.ArgKind))
		st.addf("(declare-fun %s (%s) %s)",
			tableName(t.ID), strings.Join(sig, " "), smtSort(t.ResKind))
		for i, e := range t.Elems {
			idx, err := indexLit(t.ArgKind, i)
			if err != nil {
				return err
			}
			eq := fmt.Sprintf("(= %s %s)", st.tableCall(t.ID, idx), st.ref(e))
			if len(st.foralls) > 0 {
				st.qdelayed = append(st.qdelayed, eq)
			} else {
				st.delayed = append(st.delayed, "(assert "+eq+")")
			}
		}
	}
	return nil
}

func (st *state) arraySort(arr *graph.Array) string {
	return fmt.Sprintf("(Array %s %s)", smtSort(arr.Domain), smtSort(arr.Range))
}

// arraySetupText renders the history equality for one array, or ""
// for a free array without initializer.
func (st *state) arraySetupText(arr *graph.Array) string {
	switch arr.Hist {
	case graph.FreeArray:
		if arr.Init == nil {
			return ""
		}
		init := st.ref(*arr.Init)
		if l, ok := st.lit(*arr.Init); ok {
			init = smtLit(l, st.rm)
		}
		return fmt.Sprintf("(= %s ((as const %s) %s))",
			st.arrayRef(arr.ID), st.arraySort(arr), init)
	case graph.MutateArray:
		return fmt.Sprintf("(= %s (store %s %s %s))",
			st.arrayRef(arr.ID), st.arrayRef(arr.Base), st.ref(arr.Index), st.ref(arr.Value))
	default:
		return fmt.Sprintf("(= %s (ite %s %s %s))",
			st.arrayRef(arr.ID), st.ref(arr.Cond), st.arrayRef(arr.Then), st.arrayRef(arr.Else))
	}
}

// emitArrays declares every array and asserts constant setups
// immediately. Setups of non-constant arrays are queued: flat asserts
// after the variable definitions, or conjuncts inside the binder for
// deferred arrays.
func (st *state) emitArrays(p *partition) {
	sorts := st.forallSorts()
	for _, arr := range p.constArrays {
		st.addf("(declare-fun %s () %s)", arrayName(arr.ID), st.arraySort(&arr))
		if eq := st.arraySetupText(&arr); eq != "" {
			st.addf("(assert %s)", eq)
		}
	}
	for _, arr := range p.symArrays {
		if st.defArrays[arr.ID] {
			st.addf("(declare-fun %s (%s) %s)",
				arrayName(arr.ID), strings.Join(sorts, " "), st.arraySort(&arr))
		} else {
			st.addf("(declare-fun %s () %s)", arrayName(arr.ID), st.arraySort(&arr))
		}
	}
}

// flushArraySetups renders the queued non-constant setups once the
// definitions they reference exist.
func (st *state) flushArraySetups(p *partition) {
	for _, arr := range p.symArrays {
		eq := st.arraySetupText(&arr)
		if eq == "" {
			continue
		}
		if st.defArrays[arr.ID] {
			st.qdelayed = append(st.qdelayed, eq)
		} else {
			st.add("(assert " + eq + ")")
		}
	}
}

func (st *state) emitUninterps(us []graph.Uninterp) {
	for _, u := range us {
		sorts := make([]string, len(u.Args))
		for i, a := range u.Args {
			sorts[i] = smtSort(a)
		}
		st.addf("(declare-fun %s (%s) %s)",
			u.Name, strings.Join(sorts, " "), smtSort(u.Res))
		st.assertWF(u.Name, sorts, u.Res)
	}
}

// emitHelpers prescans the assignment sequence and defines the
// auxiliary recursive helpers the translation will reference.
func (st *state) emitHelpers(assigns []graph.Assign) {
	for i := range assigns {
		n := assigns[i].Node
		if n.Op != graph.OpStrReverse && n.Op != graph.OpSeqReverse {
			continue
		}
		key := helperKey(n.Op, n.Args[0].Kind)
		if _, ok := st.helpers[key]; ok {
			continue
		}
		sym, lines := helperDef(n.Op, n.Args[0].Kind, len(st.helpers))
		st.helpers[key] = sym
		for _, ln := range lines {
			st.add(ln)
		}
	}
}

func (st *state) emitAxioms(axioms []graph.Axiom) {
	for _, ax := range axioms {
		if ax.Definition {
			st.comment("definition: " + ax.Name)
		} else {
			st.comment("axiom (unverified): " + ax.Name)
		}
		for _, ln := range ax.Lines {
			st.add(ln)
		}
	}
}

// emitDefinitions renders every pre-quantifier assignment. With
// define-fun support each assignment is one definition; without it the
// symbol is declared here and its equality queued for the delayed
// block.
func (st *state) emitDefinitions(assigns []graph.Assign) error {
	for i := range assigns {
		sv, n := assigns[i].SV, &assigns[i].Node
		if st.post[sv.ID] {
			continue
		}
		text, err := st.exprText(sv.Kind, n)
		if err != nil {
			return err
		}
		name := svName(sv.ID)
		if st.caps.DefineFun {
			st.addf("(define-fun %s () %s %s)", name, smtSort(sv.Kind), text)
		} else {
			st.addf("(declare-fun %s () %s)", name, smtSort(sv.Kind))
			st.delayed = append(st.delayed, fmt.Sprintf("(assert (= %s %s))", name, text))
		}
	}
	return nil
}

func (st *state) flushDelayed() {
	for _, ln := range st.delayed {
		st.add(ln)
	}
	st.delayed = nil
}
