package emit

import (
	"fmt"
	"strings"

	"github.com/provekit/smtgen/debug"
	"github.com/provekit/smtgen/graph"
	"github.com/provekit/smtgen/kind"
	"github.com/provekit/smtgen/logic"
	"github.com/provekit/smtgen/solver"
)

// Session is the incremental driver. The base snapshot is rendered
// once; each Extend renders only the delta, never re-declaring an
// entity the solver has already seen. Sessions exist for solvers kept
// alive across queries; a quantified base cannot be extended and is
// rejected up front.
type Session struct {
	st    *state
	feats logic.Features

	sorts      map[string]bool
	arities    map[int]bool
	maybeDecl  bool
	sumDecl    bool
	ratDecl    bool
	knownConst map[int]bool
}

// NewSession renders the base snapshot and returns the session along
// with the base script.
func NewSession(snap *graph.Snapshot) (*Session, []string, error) {
	if len(snap.Foralls) > 0 || len(snap.Skolems) > 0 {
		return nil, nil, fmt.Errorf("%w: incremental mode over a quantified base", ErrNotSupported)
	}
	st := newState(snap.Cfg.Caps, snap.Cfg.RoundingMode)
	st.load(snap)
	feats, err := st.emitFull(snap)
	if err != nil {
		return nil, nil, err
	}
	s := &Session{
		st:         st,
		feats:      feats,
		sorts:      map[string]bool{},
		arities:    map[int]bool{},
		maybeDecl:  feats.Maybes,
		sumDecl:    feats.Sums,
		ratDecl:    feats.Rationals,
		knownConst: map[int]bool{},
	}
	s.noteKinds(snap.Kinds)
	for id := range snap.Consts {
		s.knownConst[id] = true
	}
	lines := st.lines
	st.lines = nil
	return s, lines, nil
}

func (s *Session) noteKinds(kinds []*kind.Kind) {
	for _, k := range kinds {
		k.Walk(func(kk *kind.Kind) bool {
			switch kk.Type {
			case kind.UserType:
				if !kk.IsRoundingMode() {
					s.sorts[kk.Name] = true
				}
			case kind.TupleType:
				s.arities[len(kk.Kinds)] = true
			}
			return true
		})
	}
}

// Extend renders the delta as a list of commands to send to the live
// solver. The delta must stay within the base's solver capabilities
// and may not demand a recursive helper the base did not already
// define.
func (s *Session) Extend(d *graph.Delta) ([]string, error) {
	st := s.st
	st.lines = nil
	st.delayed = nil

	feats := logic.OfDelta(d)
	s.feats.Merge(feats)
	if unmet := s.feats.Unmet(st.caps); len(unmet) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, strings.Join(unmet, "; "))
	}
	if debug.Incr() {
		debug.Logf("extend: %d assigns, %d constraints", len(d.Assigns), len(d.Constraints))
	}

	if err := s.checkHelpers(d.Assigns); err != nil {
		return nil, err
	}

	// Settings first, so anything they enable precedes its first use.
	for _, o := range solver.DedupOptions(d.Options) {
		st.add(o.Line())
	}

	st.emitUserSorts(d.Kinds, s.sorts)
	if err := st.emitTupleDecls(d.Kinds, s.arities); err != nil {
		return nil, err
	}
	if feats.Maybes && !s.maybeDecl {
		st.emitMaybeDecl()
		s.maybeDecl = true
	}
	if feats.Sums && !s.sumDecl {
		st.emitSumDecl()
		s.sumDecl = true
	}
	if feats.Rationals && !s.ratDecl {
		st.emitRationalDecls()
		s.ratDecl = true
	}

	for id, lit := range d.Consts {
		st.consts[id] = lit
	}
	st.emitConsts(d.Consts, s.knownConst)
	for id := range d.Consts {
		s.knownConst[id] = true
	}

	for _, in := range d.Inputs {
		st.names[in.SV.ID] = in.Name
	}
	st.emitInputs(d.Inputs)

	for i := range d.Tables {
		st.tables[d.Tables[i].ID] = &d.Tables[i]
	}
	p, err := st.partition(d.Tables, d.Arrays, false)
	if err != nil {
		return nil, err
	}
	if err := st.emitConstTables(p.constTables); err != nil {
		return nil, err
	}
	if err := st.emitSymTables(p.symTables); err != nil {
		return nil, err
	}
	st.emitArrays(p)
	st.emitUninterps(d.Uninterps)

	for id, n := range graph.IndexAssigns(d.Assigns) {
		st.nodes[id] = n
	}
	if err := st.emitDefinitions(d.Assigns); err != nil {
		return nil, err
	}
	st.flushDelayed()
	st.flushArraySetups(p)

	s.assertDelta(d.Constraints)
	return st.lines, nil
}

// checkHelpers rejects deltas whose translation would require defining
// a recursive helper mid-session.
func (s *Session) checkHelpers(assigns []graph.Assign) error {
	for i := range assigns {
		n := assigns[i].Node
		if n.Op != graph.OpStrReverse && n.Op != graph.OpSeqReverse {
			continue
		}
		key := helperKey(n.Op, n.Args[0].Kind)
		if _, ok := s.st.helpers[key]; !ok {
			return fmt.Errorf("%w: operation %s needs a recursive helper not defined by the base query",
				ErrNotSupported, n.Op)
		}
	}
	return nil
}

// assertDelta asserts each incremental constraint on its own; there is
// no goal to conjoin with and no folding across calls.
func (s *Session) assertDelta(constraints []graph.Constraint) {
	st := s.st
	for i := range constraints {
		c := &constraints[i]
		if c.Soft {
			st.emitSoft(c)
			continue
		}
		if names := c.Names(); len(names) > 0 {
			st.emitNamed(c, names)
			continue
		}
		text, konst, value := st.signedText(c.Val, c.Negated)
		if konst {
			if value {
				continue
			}
			text = "false"
		}
		st.add("(assert " + text + ")")
	}
}
