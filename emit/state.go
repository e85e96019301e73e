package emit

import (
	"fmt"
	"strings"

	"github.com/provekit/smtgen/graph"
	"github.com/provekit/smtgen/kind"
	"github.com/provekit/smtgen/solver"
)

// state carries the bookkeeping for one emission run. The batch driver
// builds it from a snapshot; the incremental session keeps its own
// accumulated copy across calls.
type state struct {
	caps solver.Caps
	rm   string

	nodes  map[int]*graph.Node
	consts map[int]*graph.Literal

	names   map[int]string
	skolems map[int]bool
	foralls []graph.Input

	tables     map[int]*graph.Table
	skolemTabs map[int]bool
	defArrays  map[int]bool // arrays carrying the frontier signature

	post map[int]bool // assigns living inside the binder

	helpers map[string]string // helper key -> declared symbol

	lines    []string
	delayed  []string
	qdelayed []string // conjuncts that must live inside the binder
}

func newState(caps solver.Caps, rm string) *state {
	if rm == "" {
		rm = "RNE"
	}
	return &state{
		caps:       caps,
		rm:         rm,
		nodes:      map[int]*graph.Node{},
		consts:     map[int]*graph.Literal{},
		names:      map[int]string{},
		skolems:    map[int]bool{},
		tables:     map[int]*graph.Table{},
		skolemTabs: map[int]bool{},
		defArrays:  map[int]bool{},
		post:       map[int]bool{},
		helpers:    map[string]string{},
	}
}

func (st *state) add(line string) {
	st.lines = append(st.lines, line)
}

func (st *state) addf(format string, args ...any) {
	st.lines = append(st.lines, fmt.Sprintf(format, args...))
}

func (st *state) comment(s string) {
	st.add("; " + s)
}

// ref renders an operand reference. The true/false literals are always
// inlined; forall variables and inputs go by name; a skolemized input
// under a non-empty frontier is an application of its function to the
// frontier variables; everything else is its program variable.
func (st *state) ref(sv graph.SV) string {
	if lit, ok := st.consts[sv.ID]; ok && lit.Kind.Type == kind.BoolType {
		if lit.Bool {
			return "true"
		}
		return "false"
	}
	if nm, ok := st.names[sv.ID]; ok {
		if st.skolems[sv.ID] && len(st.foralls) > 0 {
			return fmt.Sprintf("(%s %s)", nm, st.forallArgs())
		}
		return nm
	}
	return svName(sv.ID)
}

// lit resolves sv to its literal constant, if it has one.
func (st *state) lit(sv graph.SV) (*graph.Literal, bool) {
	l, ok := st.consts[sv.ID]
	return l, ok
}

func (st *state) forallArgs() string {
	parts := make([]string, len(st.foralls))
	for i, fv := range st.foralls {
		parts[i] = fv.Name
	}
	return strings.Join(parts, " ")
}

func (st *state) forallSorts() []string {
	res := make([]string, len(st.foralls))
	for i, fv := range st.foralls {
		res[i] = smtSort(fv.SV.Kind)
	}
	return res
}

// arrayRef renders a reference to an array entity; deferred arrays are
// applied to the frontier variables.
func (st *state) arrayRef(id int) string {
	if st.defArrays[id] {
		return fmt.Sprintf("(%s %s)", arrayName(id), st.forallArgs())
	}
	return arrayName(id)
}

// tableCall renders a lookup of table id at index text idx; skolemized
// tables receive the frontier variables as extra leading arguments.
func (st *state) tableCall(id int, idx string) string {
	if st.skolemTabs[id] && len(st.foralls) > 0 {
		return fmt.Sprintf("(%s %s %s)", tableName(id), st.forallArgs(), idx)
	}
	return fmt.Sprintf("(%s %s)", tableName(id), idx)
}
