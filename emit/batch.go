package emit

import (
	"fmt"
	"strings"

	"github.com/provekit/smtgen/debug"
	"github.com/provekit/smtgen/graph"
	"github.com/provekit/smtgen/logic"
)

// Batch translates a complete immutable snapshot into one script, a
// line per command. The caller owns the solver lifecycle; no check-sat
// is emitted.
func Batch(snap *graph.Snapshot) ([]string, error) {
	st := newState(snap.Cfg.Caps, snap.Cfg.RoundingMode)
	st.load(snap)
	if _, err := st.emitFull(snap); err != nil {
		return nil, err
	}
	return st.lines, nil
}

func (st *state) emitFull(snap *graph.Snapshot) (logic.Features, error) {
	if err := validateQuantified(snap); err != nil {
		return logic.Features{}, err
	}

	feats := logic.Of(snap)
	if debug.Features() {
		debug.Logf("features: %+v", feats)
	}
	lg, err := logic.Select(snap, feats, snap.Cfg.Caps)
	if err != nil {
		return feats, err
	}
	if debug.Logic() {
		debug.Logf("logic: %s (%s)", lg.Name, lg.Reason)
	}

	p, err := st.partition(snap.Tables, snap.Arrays, len(snap.Foralls) > 0)
	if err != nil {
		return feats, err
	}
	st.computePost(snap.Assigns)

	st.emitComments(snap.Comments)
	st.emitSettings(snap.Cfg.Options)
	st.emitLogic(lg)
	st.emitUserSorts(snap.Kinds, map[string]bool{})
	if err := st.emitTupleDecls(snap.Kinds, map[int]bool{}); err != nil {
		return feats, err
	}
	if feats.Maybes {
		st.emitMaybeDecl()
	}
	if feats.Sums {
		st.emitSumDecl()
	}
	if feats.Rationals {
		st.emitRationalDecls()
	}
	st.emitConsts(snap.Consts, nil)
	st.emitInputs(snap.Inputs)
	st.emitSkolems(snap.Skolems)
	st.emitTrackers(snap.Trackers)
	if err := st.emitConstTables(p.constTables); err != nil {
		return feats, err
	}
	if err := st.emitSymTables(p.symTables); err != nil {
		return feats, err
	}
	st.emitArrays(p)
	st.emitUninterps(snap.Uninterps)
	st.emitHelpers(snap.Assigns)
	st.emitAxioms(snap.Axioms)
	if err := st.emitDefinitions(snap.Assigns); err != nil {
		return feats, err
	}
	st.flushDelayed()
	st.flushArraySetups(p)
	if err := st.assemble(snap); err != nil {
		return feats, err
	}
	return feats, nil
}

// load populates the lookup maps from the snapshot.
func (st *state) load(snap *graph.Snapshot) {
	for id, n := range graph.IndexAssigns(snap.Assigns) {
		st.nodes[id] = n
	}
	for id, lit := range snap.Consts {
		st.consts[id] = lit
	}
	for _, in := range snap.Inputs {
		st.names[in.SV.ID] = in.Name
	}
	for _, in := range snap.Foralls {
		st.names[in.SV.ID] = in.Name
	}
	for _, in := range snap.Skolems {
		st.names[in.SV.ID] = in.Name
		st.skolems[in.SV.ID] = true
	}
	for _, in := range snap.Trackers {
		st.names[in.SV.ID] = in.Name
	}
	st.foralls = snap.Foralls
	for i := range snap.Tables {
		st.tables[snap.Tables[i].ID] = &snap.Tables[i]
	}
}

// validateQuantified rejects the constraint flavors that cannot
// coexist with a universal-variable set.
func validateQuantified(snap *graph.Snapshot) error {
	if len(snap.Foralls) == 0 {
		return nil
	}
	vars := make([]string, len(snap.Foralls))
	for i, fv := range snap.Foralls {
		vars[i] = fv.Name
	}
	var named, soft []string
	for i := range snap.Constraints {
		c := &snap.Constraints[i]
		if c.Soft {
			soft = append(soft, svName(c.Val.ID))
		}
		named = append(named, c.Names()...)
	}
	if len(named) > 0 {
		return fmt.Errorf("%w: universals [%s], names [%s]",
			ErrNamedQuantified, strings.Join(vars, " "), strings.Join(named, " "))
	}
	if len(soft) > 0 {
		return fmt.Errorf("%w: universals [%s], constraints [%s]",
			ErrSoftQuantified, strings.Join(vars, " "), strings.Join(soft, " "))
	}
	return nil
}

// computePost marks the assignments that must live inside the binder:
// anything transitively touching a forall variable, a skolemized
// input, a skolemized table or a deferred array.
func (st *state) computePost(assigns []graph.Assign) {
	if len(st.foralls) == 0 {
		return
	}
	tainted := map[int]bool{}
	for _, fv := range st.foralls {
		tainted[fv.SV.ID] = true
	}
	for id := range st.skolems {
		tainted[id] = true
	}
	for i := range assigns {
		sv, n := assigns[i].SV, &assigns[i].Node
		post := false
		for _, a := range n.Args {
			if tainted[a.ID] {
				post = true
			}
		}
		switch n.Op {
		case graph.OpLookup:
			if st.skolemTabs[n.Nums[0]] {
				post = true
			}
		case graph.OpArrRead:
			if st.defArrays[n.Nums[0]] {
				post = true
			}
		}
		if post {
			tainted[sv.ID] = true
			st.post[sv.ID] = true
		}
	}
}
