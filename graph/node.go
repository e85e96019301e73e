package graph

import "github.com/provekit/smtgen/kind"

// SV references a node in the operation graph, carrying its kind.
// Identifiers are assigned in strictly increasing creation order and
// double as a topological order over the graph.
type SV struct {
	ID   int
	Kind *kind.Kind
}

// Node is one operation: an operator tag plus ordered SV operands.
// Nums carries integer immediates (extract bounds, rotation counts,
// table/array ids, pseudo-boolean bounds and weights); CastTo is the
// target kind for OpCast; Name is the symbol for OpApply and the
// pattern for OpRegexMatch.
type Node struct {
	Op     Op
	Args   []SV
	Nums   []int
	CastTo *kind.Kind
	Name   string
}

// Assign binds an SV to the node defining it. A program is an ordered
// sequence of assigns, already topologically sorted by identifier.
type Assign struct {
	SV   SV
	Node Node
}

// IndexAssigns builds the dense arena lookup from SV identifier to
// defining node.
func IndexAssigns(assigns []Assign) map[int]*Node {
	res := make(map[int]*Node, len(assigns))
	for i := range assigns {
		res[assigns[i].SV.ID] = &assigns[i].Node
	}
	return res
}
