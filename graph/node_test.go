package graph

import (
	"testing"

	"github.com/provekit/smtgen/kind"
)

func TestIndexAssigns(t *testing.T) {
	w8 := kind.BV(false, 8)
	assigns := []Assign{
		{SV: SV{ID: 3, Kind: kind.Bool}, Node: Node{
			Op:   OpLessThan,
			Args: []SV{{ID: 1, Kind: w8}, {ID: 2, Kind: w8}},
		}},
		{SV: SV{ID: 4, Kind: kind.Bool}, Node: Node{
			Op:   OpNot,
			Args: []SV{{ID: 3, Kind: kind.Bool}},
		}},
	}
	idx := IndexAssigns(assigns)
	if len(idx) != 2 {
		t.Fatalf("got %d entries, want 2", len(idx))
	}
	for i := range assigns {
		n, ok := idx[assigns[i].SV.ID]
		if !ok {
			t.Fatalf("id %d missing", assigns[i].SV.ID)
		}
		if n != &assigns[i].Node {
			t.Errorf("id %d: lookup does not point into the sequence", assigns[i].SV.ID)
		}
	}
	if idx[3].Op != OpLessThan || idx[4].Op != OpNot {
		t.Errorf("wrong nodes: %v %v", idx[3].Op, idx[4].Op)
	}
}
