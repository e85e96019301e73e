package emit

import (
	"fmt"

	"github.com/provekit/smtgen/debug"
	"github.com/provekit/smtgen/graph"
	"github.com/provekit/smtgen/kind"
)

// partition is the one-time constant/deferred classification of tables
// and arrays, done at emission time from the immutable snapshot. An
// entity is constant iff every element or history dependency resolves
// to a literal; no entity changes state afterwards.
type partition struct {
	constTables []graph.Table
	symTables   []graph.Table
	constArrays []graph.Array
	symArrays   []graph.Array
	constArr    map[int]bool
}

func (st *state) partition(tables []graph.Table, arrays []graph.Array, quantified bool) (*partition, error) {
	p := &partition{constArr: map[int]bool{}}
	for _, t := range tables {
		if st.tableConstant(&t) {
			p.constTables = append(p.constTables, t)
		} else {
			p.symTables = append(p.symTables, t)
			st.skolemTabs[t.ID] = true
		}
	}
	for _, arr := range arrays {
		constant, err := st.arrayConstant(&arr, p.constArr, quantified)
		if err != nil {
			return nil, err
		}
		if constant {
			p.constArr[arr.ID] = true
			p.constArrays = append(p.constArrays, arr)
		} else {
			p.symArrays = append(p.symArrays, arr)
			if quantified {
				st.defArrays[arr.ID] = true
			}
		}
	}
	if debug.Partition() {
		debug.Logf("partition: %d/%d constant tables, %d/%d constant arrays",
			len(p.constTables), len(tables), len(p.constArrays), len(arrays))
	}
	return p, nil
}

func (st *state) tableConstant(t *graph.Table) bool {
	for _, e := range t.Elems {
		if _, ok := st.lit(e); !ok {
			return false
		}
	}
	return true
}

func (st *state) arrayConstant(arr *graph.Array, constArr map[int]bool, quantified bool) (bool, error) {
	switch arr.Hist {
	case graph.FreeArray:
		if arr.Init == nil {
			return true, nil
		}
		if _, ok := st.lit(*arr.Init); ok {
			return true, nil
		}
		// Non-constant initializers are deliberately rejected in the
		// cases the one-time classification cannot resolve.
		if arr.Range.ContainsType(kind.CharType) {
			return false, fmt.Errorf("%w: non-constant initializer for character-element array %d",
				ErrNotSupported, arr.ID)
		}
		if quantified {
			return false, fmt.Errorf("%w: non-constant array initializer inside quantified context (array %d)",
				ErrNotSupported, arr.ID)
		}
		return false, nil
	case graph.MutateArray:
		if !constArr[arr.Base] {
			return false, nil
		}
		_, iOK := st.lit(arr.Index)
		_, vOK := st.lit(arr.Value)
		return iOK && vOK, nil
	case graph.MergeArray:
		if _, ok := st.lit(arr.Cond); !ok {
			return false, nil
		}
		return constArr[arr.Then] && constArr[arr.Else], nil
	default:
		return false, fmt.Errorf("%w: array %d has unknown history %d", ErrInternal, arr.ID, arr.Hist)
	}
}
