package emit

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/provekit/smtgen/graph"
	"github.com/provekit/smtgen/kind"
)

// class buckets kinds for operator dispatch, in the precedence order
// they are checked.
type class int

const (
	classBV class = iota
	classBool
	classInt
	classReal
	classRat
	classFloat
	classString // characters and strings
	classSeq
	classUser // uninterpreted sorts and remaining composites
	classUnknown
)

func classOf(k *kind.Kind) class {
	switch k.Type {
	case kind.BVType:
		return classBV
	case kind.BoolType:
		return classBool
	case kind.IntegerType:
		return classInt
	case kind.RealType:
		return classReal
	case kind.RationalType:
		return classRat
	case kind.FloatType:
		return classFloat
	case kind.CharType, kind.StringType:
		return classString
	case kind.ListType:
		return classSeq
	case kind.UserType, kind.SetType, kind.TupleType, kind.MaybeType, kind.EitherType:
		return classUser
	default:
		return classUnknown
	}
}

func encodingErr(op graph.Op, kinds ...*kind.Kind) error {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = k.String()
	}
	return fmt.Errorf("%w: no encoding for operator %s on %s",
		ErrInternal, op, strings.Join(parts, ", "))
}

// exprText renders the encoding for one operation node. res is the
// kind of the value the node defines; the kind class of the first
// operand picks the theory vocabulary.
func (st *state) exprText(res *kind.Kind, n *graph.Node) (string, error) {
	a := make([]string, len(n.Args))
	for i := range n.Args {
		a[i] = st.ref(n.Args[i])
	}
	var argKind *kind.Kind
	if len(n.Args) > 0 {
		argKind = n.Args[0].Kind
	} else {
		argKind = res
	}
	cls := classOf(argKind)
	if cls == classUnknown {
		return "", encodingErr(n.Op, argKind)
	}

	switch n.Op {
	case graph.OpPlus, graph.OpMinus, graph.OpTimes:
		return st.arith(n.Op, cls, argKind, a)
	case graph.OpUNeg:
		return st.uneg(cls, argKind, n.Op, a[0])
	case graph.OpAbs:
		return st.abs(cls, argKind, n.Op, a[0])
	case graph.OpQuot, graph.OpRem, graph.OpDiv, graph.OpMod:
		return st.divide(n.Op, cls, argKind, a)
	case graph.OpEqual:
		if cls == classFloat {
			return fmt.Sprintf("(fp.eq %s %s)", a[0], a[1]), nil
		}
		if cls == classRat {
			return fmt.Sprintf("(rat.eq %s %s)", a[0], a[1]), nil
		}
		return fmt.Sprintf("(= %s)", strings.Join(a, " ")), nil
	case graph.OpNotEqual:
		return st.distinct(cls, a), nil
	case graph.OpLessThan, graph.OpLessEq, graph.OpGreaterThan, graph.OpGreaterEq:
		return st.compare(n.Op, cls, argKind, a)

	case graph.OpAnd:
		return fmt.Sprintf("(and %s)", strings.Join(a, " ")), nil
	case graph.OpOr:
		return fmt.Sprintf("(or %s)", strings.Join(a, " ")), nil
	case graph.OpXor:
		if cls == classBV {
			return fmt.Sprintf("(bvxor %s)", strings.Join(a, " ")), nil
		}
		return fmt.Sprintf("(xor %s)", strings.Join(a, " ")), nil
	case graph.OpNot:
		return fmt.Sprintf("(not %s)", a[0]), nil
	case graph.OpImplies:
		return fmt.Sprintf("(=> %s %s)", a[0], a[1]), nil
	case graph.OpIte:
		return fmt.Sprintf("(ite %s %s %s)", a[0], a[1], a[2]), nil

	case graph.OpShl, graph.OpShr, graph.OpSar:
		if cls != classBV {
			return "", encodingErr(n.Op, argKind)
		}
		name := map[graph.Op]string{
			graph.OpShl: "bvshl", graph.OpShr: "bvlshr", graph.OpSar: "bvashr",
		}[n.Op]
		return fmt.Sprintf("(%s %s %s)", name, a[0], a[1]), nil
	case graph.OpRol, graph.OpRor:
		if cls != classBV {
			return "", encodingErr(n.Op, argKind)
		}
		name := "rotate_left"
		if n.Op == graph.OpRor {
			name = "rotate_right"
		}
		return fmt.Sprintf("((_ %s %d) %s)", name, n.Nums[0], a[0]), nil
	case graph.OpExtract:
		if cls != classBV {
			return "", encodingErr(n.Op, argKind)
		}
		return fmt.Sprintf("((_ extract %d %d) %s)", n.Nums[0], n.Nums[1], a[0]), nil
	case graph.OpJoin:
		if cls != classBV {
			return "", encodingErr(n.Op, argKind)
		}
		return fmt.Sprintf("(concat %s %s)", a[0], a[1]), nil
	case graph.OpBAnd, graph.OpBOr, graph.OpBXor:
		if cls != classBV {
			return "", encodingErr(n.Op, argKind)
		}
		name := map[graph.Op]string{
			graph.OpBAnd: "bvand", graph.OpBOr: "bvor", graph.OpBXor: "bvxor",
		}[n.Op]
		return fmt.Sprintf("(%s %s)", name, strings.Join(a, " ")), nil
	case graph.OpBNot:
		if cls != classBV {
			return "", encodingErr(n.Op, argKind)
		}
		return fmt.Sprintf("(bvnot %s)", a[0]), nil

	case graph.OpAddOverflow, graph.OpSubOverflow, graph.OpMulOverflow:
		if cls != classBV {
			return "", encodingErr(n.Op, argKind)
		}
		return st.overflow(n.Op, argKind, n.Nums[0] == 1, a)

	case graph.OpCast:
		return st.cast(argKind, n.CastTo, a[0])

	case graph.OpLookup:
		return st.lookup(n, a)

	case graph.OpArrRead:
		return fmt.Sprintf("(select %s %s)", st.arrayRef(n.Nums[0]), a[0]), nil

	case graph.OpApply:
		if len(a) == 0 {
			return n.Name, nil
		}
		return fmt.Sprintf("(%s %s)", n.Name, strings.Join(a, " ")), nil

	case graph.OpTupleCon:
		if len(a) == 0 {
			return tupleCtor(0), nil
		}
		return fmt.Sprintf("((as %s %s) %s)",
			tupleCtor(len(a)), smtSort(res), strings.Join(a, " ")), nil
	case graph.OpTupleProj:
		if argKind.Type != kind.TupleType {
			return "", encodingErr(n.Op, argKind)
		}
		return st.projTuple(argKind, n.Nums[0], a[0])

	case graph.OpNothing:
		return fmt.Sprintf("(as opt.none %s)", smtSort(res)), nil
	case graph.OpJust:
		return fmt.Sprintf("((as opt.some %s) %s)", smtSort(res), a[0]), nil
	case graph.OpMaybeVal:
		if argKind.Type != kind.MaybeType {
			return "", encodingErr(n.Op, argKind)
		}
		return st.maybeVal(argKind, a[0])
	case graph.OpIsJust:
		return fmt.Sprintf("((_ is opt.some) %s)", a[0]), nil

	case graph.OpLeft:
		return fmt.Sprintf("((as sum.left %s) %s)", smtSort(res), a[0]), nil
	case graph.OpRight:
		return fmt.Sprintf("((as sum.right %s) %s)", smtSort(res), a[0]), nil
	case graph.OpFromLeft, graph.OpFromRight:
		if argKind.Type != kind.EitherType {
			return "", encodingErr(n.Op, argKind)
		}
		return st.fromEither(argKind, n.Op == graph.OpFromLeft, a[0])
	case graph.OpIsLeft:
		return fmt.Sprintf("((_ is sum.left) %s)", a[0]), nil

	case graph.OpStrLen:
		return fmt.Sprintf("(str.len %s)", a[0]), nil
	case graph.OpStrConcat:
		return fmt.Sprintf("(str.++ %s)", strings.Join(a, " ")), nil
	case graph.OpStrSubstr:
		return fmt.Sprintf("(str.substr %s %s %s)", a[0], a[1], a[2]), nil
	case graph.OpStrAt:
		return fmt.Sprintf("(str.at %s %s)", a[0], a[1]), nil
	case graph.OpStrContains:
		return fmt.Sprintf("(str.contains %s %s)", a[0], a[1]), nil
	case graph.OpStrReverse, graph.OpSeqReverse:
		sym, ok := st.helpers[helperKey(n.Op, argKind)]
		if !ok {
			return "", fmt.Errorf("%w: recursive helper for %s not declared", ErrInternal, n.Op)
		}
		return fmt.Sprintf("(%s %s)", sym, a[0]), nil

	case graph.OpSeqLen:
		return fmt.Sprintf("(seq.len %s)", a[0]), nil
	case graph.OpSeqConcat:
		return fmt.Sprintf("(seq.++ %s)", strings.Join(a, " ")), nil
	case graph.OpSeqUnit:
		return fmt.Sprintf("(seq.unit %s)", a[0]), nil
	case graph.OpSeqNth:
		return fmt.Sprintf("(seq.nth %s %s)", a[0], a[1]), nil
	case graph.OpSeqContains:
		return fmt.Sprintf("(seq.contains %s %s)", a[0], a[1]), nil

	case graph.OpSetMember:
		return fmt.Sprintf("(select %s %s)", a[1], a[0]), nil
	case graph.OpSetInsert:
		return fmt.Sprintf("(store %s %s true)", a[1], a[0]), nil
	case graph.OpSetUnion:
		return fmt.Sprintf("((_ map or) %s %s)", a[0], a[1]), nil
	case graph.OpSetIntersect:
		return fmt.Sprintf("((_ map and) %s %s)", a[0], a[1]), nil
	case graph.OpSetComplement:
		return fmt.Sprintf("((_ map not) %s)", a[0]), nil

	case graph.OpRegexMatch:
		return fmt.Sprintf("(str.in_re %s %s)", a[0], n.Name), nil

	case graph.OpAtMost, graph.OpAtLeast, graph.OpExactly,
		graph.OpWeightedAtMost, graph.OpWeightedAtLeast, graph.OpWeightedExactly:
		return st.pseudoBool(n, a)

	default:
		return "", encodingErr(n.Op, argKind)
	}
}

func (st *state) arith(op graph.Op, cls class, k *kind.Kind, a []string) (string, error) {
	switch cls {
	case classBV:
		name := map[graph.Op]string{
			graph.OpPlus: "bvadd", graph.OpMinus: "bvsub", graph.OpTimes: "bvmul",
		}[op]
		return fmt.Sprintf("(%s %s)", name, strings.Join(a, " ")), nil
	case classInt, classReal:
		name := map[graph.Op]string{
			graph.OpPlus: "+", graph.OpMinus: "-", graph.OpTimes: "*",
		}[op]
		return fmt.Sprintf("(%s %s)", name, strings.Join(a, " ")), nil
	case classFloat:
		// Floating arithmetic threads the rounding mode on every
		// binary operator.
		name := map[graph.Op]string{
			graph.OpPlus: "fp.add", graph.OpMinus: "fp.sub", graph.OpTimes: "fp.mul",
		}[op]
		res := a[0]
		for _, b := range a[1:] {
			res = fmt.Sprintf("(%s %s %s %s)", name, st.rm, res, b)
		}
		return res, nil
	case classRat:
		name := map[graph.Op]string{
			graph.OpPlus: "rat.add", graph.OpMinus: "rat.sub", graph.OpTimes: "rat.mul",
		}[op]
		res := a[0]
		for _, b := range a[1:] {
			res = fmt.Sprintf("(%s %s %s)", name, res, b)
		}
		return res, nil
	default:
		return "", encodingErr(op, k)
	}
}

func (st *state) uneg(cls class, k *kind.Kind, op graph.Op, a string) (string, error) {
	switch cls {
	case classBV:
		return fmt.Sprintf("(bvneg %s)", a), nil
	case classInt, classReal:
		return fmt.Sprintf("(- %s)", a), nil
	case classFloat:
		return fmt.Sprintf("(fp.neg %s)", a), nil
	case classRat:
		return fmt.Sprintf("(mk-rat (- (rat.num %s)) (rat.den %s))", a, a), nil
	default:
		return "", encodingErr(op, k)
	}
}

// abs has four distinct encodings: native floating and integer
// primitives, a signed-compare conditional negate for bitvectors, and
// an unsigned-compare conditional negate for reals.
func (st *state) abs(cls class, k *kind.Kind, op graph.Op, a string) (string, error) {
	switch cls {
	case classFloat:
		return fmt.Sprintf("(fp.abs %s)", a), nil
	case classInt:
		return fmt.Sprintf("(abs %s)", a), nil
	case classBV:
		zero := bvLit(big.NewInt(0), k.Width)
		return fmt.Sprintf("(ite (bvslt %s %s) (bvneg %s) %s)", a, zero, a, a), nil
	case classReal:
		return fmt.Sprintf("(ite (< %s 0.0) (- %s) %s)", a, a, a), nil
	default:
		return "", encodingErr(op, k)
	}
}

func (st *state) divide(op graph.Op, cls class, k *kind.Kind, a []string) (string, error) {
	switch cls {
	case classBV:
		var name string
		switch {
		case op == graph.OpQuot || op == graph.OpDiv:
			name = "bvudiv"
			if k.Signed {
				name = "bvsdiv"
			}
		default:
			name = "bvurem"
			if k.Signed {
				name = "bvsrem"
			}
		}
		return fmt.Sprintf("(%s %s %s)", name, a[0], a[1]), nil
	case classInt:
		// Unbounded integers use floor division and modulo.
		name := "div"
		if op == graph.OpRem || op == graph.OpMod {
			name = "mod"
		}
		return fmt.Sprintf("(%s %s %s)", name, a[0], a[1]), nil
	case classReal:
		if op == graph.OpDiv || op == graph.OpQuot {
			return fmt.Sprintf("(/ %s %s)", a[0], a[1]), nil
		}
		return "", encodingErr(op, k)
	case classFloat:
		if op == graph.OpDiv || op == graph.OpQuot {
			return fmt.Sprintf("(fp.div %s %s %s)", st.rm, a[0], a[1]), nil
		}
		if op == graph.OpRem {
			return fmt.Sprintf("(fp.rem %s %s)", a[0], a[1]), nil
		}
		return "", encodingErr(op, k)
	case classRat:
		if op == graph.OpDiv || op == graph.OpQuot {
			return fmt.Sprintf("(rat.mul %s (mk-rat (rat.den %s) (rat.num %s)))",
				a[0], a[1], a[1]), nil
		}
		return "", encodingErr(op, k)
	default:
		return "", encodingErr(op, k)
	}
}

// distinct encodes inequality. Floating distinctness cannot use the
// native all-distinct primitive because of signed zeros and NaN, so it
// always reduces to pairwise negated floating equality; other classes
// reduce only when the backend lacks the primitive.
func (st *state) distinct(cls class, a []string) string {
	if cls != classFloat && st.caps.Distinct {
		return fmt.Sprintf("(distinct %s)", strings.Join(a, " "))
	}
	eq := "="
	if cls == classFloat {
		eq = "fp.eq"
	} else if cls == classRat {
		eq = "rat.eq"
	}
	var pairs []string
	for i := 0; i < len(a); i++ {
		for j := i + 1; j < len(a); j++ {
			pairs = append(pairs, fmt.Sprintf("(not (%s %s %s))", eq, a[i], a[j]))
		}
	}
	if len(pairs) == 1 {
		return pairs[0]
	}
	return fmt.Sprintf("(and %s)", strings.Join(pairs, " "))
}

func (st *state) compare(op graph.Op, cls class, k *kind.Kind, a []string) (string, error) {
	// Greater-than forms swap arguments of the less-than encodings so
	// each class needs only two primitives.
	swap := op == graph.OpGreaterThan || op == graph.OpGreaterEq
	strict := op == graph.OpLessThan || op == graph.OpGreaterThan
	x, y := a[0], a[1]
	if swap {
		x, y = y, x
	}
	switch cls {
	case classBV:
		name := "bvule"
		if k.Signed {
			name = "bvsle"
		}
		if strict {
			name = "bvult"
			if k.Signed {
				name = "bvslt"
			}
		}
		return fmt.Sprintf("(%s %s %s)", name, x, y), nil
	case classInt, classReal:
		name := "<="
		if strict {
			name = "<"
		}
		return fmt.Sprintf("(%s %s %s)", name, x, y), nil
	case classFloat:
		name := "fp.leq"
		if strict {
			name = "fp.lt"
		}
		return fmt.Sprintf("(%s %s %s)", name, x, y), nil
	case classRat:
		name := "rat.leq"
		if strict {
			name = "rat.lt"
		}
		return fmt.Sprintf("(%s %s %s)", name, x, y), nil
	case classString:
		name := "str.<="
		if strict {
			name = "str.<"
		}
		return fmt.Sprintf("(%s %s %s)", name, x, y), nil
	default:
		return "", encodingErr(op, k)
	}
}

// overflow encodes overflow-check predicates. Multiplication inverts
// the native no-overflow primitives, whose polarity is the opposite of
// ours; addition and subtraction widen by one bit and inspect the top
// bits, since no native primitive exists for them.
func (st *state) overflow(op graph.Op, k *kind.Kind, signed bool, a []string) (string, error) {
	w := k.Width
	if op == graph.OpMulOverflow {
		if signed {
			return fmt.Sprintf("(not (and (bvsmul_noovfl %s %s) (bvsmul_noudfl %s %s)))",
				a[0], a[1], a[0], a[1]), nil
		}
		return fmt.Sprintf("(not (bvumul_noovfl %s %s))", a[0], a[1]), nil
	}
	prim := "bvadd"
	if op == graph.OpSubOverflow {
		prim = "bvsub"
	}
	if signed {
		wide := fmt.Sprintf("(%s ((_ sign_extend 1) %s) ((_ sign_extend 1) %s))", prim, a[0], a[1])
		return fmt.Sprintf("(not (= ((_ extract %d %d) %s) ((_ extract %d %d) %s)))",
			w, w, wide, w-1, w-1, wide), nil
	}
	wide := fmt.Sprintf("(%s ((_ zero_extend 1) %s) ((_ zero_extend 1) %s))", prim, a[0], a[1])
	return fmt.Sprintf("(= #b1 ((_ extract %d %d) %s))", w, w, wide), nil
}

// cast follows a fixed table keyed on the (from, to) kind pair. Any
// cast touching a floating kind routes through a rounding-mode
// qualified floating cast.
func (st *state) cast(from, to *kind.Kind, a string) (string, error) {
	if from.Equal(to) {
		return a, nil
	}
	switch {
	case to.Type == kind.FloatType:
		if from.Type == kind.BVType && !from.Signed {
			return fmt.Sprintf("((_ to_fp_unsigned %d %d) %s %s)", to.EB, to.SB, st.rm, a), nil
		}
		return fmt.Sprintf("((_ to_fp %d %d) %s %s)", to.EB, to.SB, st.rm, a), nil
	case from.Type == kind.FloatType:
		switch to.Type {
		case kind.RealType:
			return fmt.Sprintf("(fp.to_real %s)", a), nil
		case kind.IntegerType:
			return fmt.Sprintf("(to_int (fp.to_real %s))", a), nil
		case kind.BVType:
			if to.Signed {
				return fmt.Sprintf("((_ fp.to_sbv %d) %s %s)", to.Width, st.rm, a), nil
			}
			return fmt.Sprintf("((_ fp.to_ubv %d) %s %s)", to.Width, st.rm, a), nil
		}
	case from.Type == kind.BVType && to.Type == kind.BVType:
		switch d := to.Width - from.Width; {
		case d == 0:
			return a, nil
		case d > 0:
			ext := "zero_extend"
			if from.Signed {
				ext = "sign_extend"
			}
			return fmt.Sprintf("((_ %s %d) %s)", ext, d, a), nil
		default:
			return fmt.Sprintf("((_ extract %d 0) %s)", to.Width-1, a), nil
		}
	case from.Type == kind.BVType && to.Type == kind.IntegerType:
		if !from.Signed {
			return fmt.Sprintf("(bv2nat %s)", a), nil
		}
		// Two's complement decomposition keyed on the sign bit.
		h := from.Width - 1
		span := new(big.Int).Lsh(big.NewInt(1), uint(from.Width))
		return fmt.Sprintf("(ite (= #b1 ((_ extract %d %d) %s)) (- (bv2nat %s) %s) (bv2nat %s))",
			h, h, a, a, span, a), nil
	case from.Type == kind.IntegerType && to.Type == kind.BVType:
		if st.caps.IntToBV {
			return fmt.Sprintf("((_ int2bv %d) %s)", to.Width, a), nil
		}
		return synthIntToBV(to.Width, a), nil
	case from.Type == kind.IntegerType && to.Type == kind.RealType:
		return fmt.Sprintf("(to_real %s)", a), nil
	case from.Type == kind.RealType && to.Type == kind.IntegerType:
		return fmt.Sprintf("(to_int %s)", a), nil
	}
	return "", fmt.Errorf("%w: no encoding for cast from %s to %s", ErrInternal, from, to)
}

// synthIntToBV builds an integer-to-bitvector conversion bit by bit
// for backends without the native primitive.
func synthIntToBV(width int, a string) string {
	bits := make([]string, width)
	for i := 0; i < width; i++ {
		pow := new(big.Int).Lsh(big.NewInt(1), uint(width-1-i))
		bits[i] = fmt.Sprintf("(ite (= 1 (mod (div %s %s) 2)) #b1 #b0)", a, pow)
	}
	if width == 1 {
		return bits[0]
	}
	return fmt.Sprintf("(concat %s)", strings.Join(bits, " "))
}

// lookup reads a memoized table: a direct call when the index domain
// cannot exceed the element count, otherwise guarded by an index range
// check against the fallback value.
func (st *state) lookup(n *graph.Node, a []string) (string, error) {
	tbl, ok := st.tables[n.Nums[0]]
	if !ok {
		return "", fmt.Errorf("%w: lookup of unknown table %d", ErrInternal, n.Nums[0])
	}
	call := st.tableCall(tbl.ID, a[0])
	count := len(tbl.Elems)
	idxKind := n.Args[0].Kind
	switch idxKind.Type {
	case kind.BoolType:
		if count >= 2 {
			return call, nil
		}
		if count == 1 {
			return fmt.Sprintf("(ite (not %s) %s %s)", a[0], call, a[1]), nil
		}
		return a[1], nil
	case kind.BVType:
		if idxKind.Width < 63 && count >= 1<<uint(idxKind.Width) {
			return call, nil
		}
		guard := fmt.Sprintf("(bvult %s %s)", a[0], bvLit(big.NewInt(int64(count)), idxKind.Width))
		return fmt.Sprintf("(ite %s %s %s)", guard, call, a[1]), nil
	case kind.UserType:
		if idxKind.IsEnum() && count >= len(idxKind.Ctors) {
			return call, nil
		}
	case kind.IntegerType:
		guard := fmt.Sprintf("(and (<= 0 %s) (< %s %d))", a[0], a[0], count)
		return fmt.Sprintf("(ite %s %s %s)", guard, call, a[1]), nil
	}
	return "", encodingErr(n.Op, idxKind)
}

func (st *state) projTuple(k *kind.Kind, i int, a string) (string, error) {
	arity := len(k.Kinds)
	if i < 1 || i > arity {
		return "", fmt.Errorf("%w: projection %d of %d-tuple", ErrInternal, i, arity)
	}
	if st.caps.DirectAccessors {
		return fmt.Sprintf("(%s %s)", tupleProj(arity, i), a), nil
	}
	vars := make([]string, arity)
	for j := range vars {
		vars[j] = fmt.Sprintf("x!%d", j+1)
	}
	return fmt.Sprintf("(match %s (((%s %s) x!%d)))",
		a, tupleCtor(arity), strings.Join(vars, " "), i), nil
}

func (st *state) maybeVal(k *kind.Kind, a string) (string, error) {
	if st.caps.DirectAccessors {
		return fmt.Sprintf("(opt.val %s)", a), nil
	}
	zero, err := zeroValue(k.Elem, st.rm)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(match %s ((opt.none %s) ((opt.some x!) x!)))", a, zero), nil
}

func (st *state) fromEither(k *kind.Kind, left bool, a string) (string, error) {
	acc := "sum.from-left"
	take, skip := "sum.left", "sum.right"
	want := k.Left
	if !left {
		acc = "sum.from-right"
		take, skip = "sum.right", "sum.left"
		want = k.Right
	}
	if st.caps.DirectAccessors {
		return fmt.Sprintf("(%s %s)", acc, a), nil
	}
	zero, err := zeroValue(want, st.rm)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(match %s (((%s x!) x!) ((%s y!) %s)))", a, take, skip, zero), nil
}

// pseudoBool encodes cardinality constraints: native syntax when the
// backend allows it, otherwise a weighted sum of conditional 0/1 terms
// compared against the bound.
func (st *state) pseudoBool(n *graph.Node, a []string) (string, error) {
	k := n.Nums[0]
	weighted := n.Op == graph.OpWeightedAtMost ||
		n.Op == graph.OpWeightedAtLeast || n.Op == graph.OpWeightedExactly
	weights := make([]int, len(a))
	for i := range weights {
		weights[i] = 1
	}
	if weighted {
		if len(n.Nums) != len(a)+1 {
			return "", fmt.Errorf("%w: %s with %d weights over %d arguments",
				ErrInternal, n.Op, len(n.Nums)-1, len(a))
		}
		copy(weights, n.Nums[1:])
	}
	if st.caps.PseudoBooleans {
		args := strings.Join(a, " ")
		if !weighted {
			switch n.Op {
			case graph.OpAtMost:
				return fmt.Sprintf("((_ at-most %d) %s)", k, args), nil
			case graph.OpAtLeast:
				return fmt.Sprintf("((_ at-least %d) %s)", k, args), nil
			case graph.OpExactly:
				return fmt.Sprintf("(and ((_ at-most %d) %s) ((_ at-least %d) %s))",
					k, args, k, args), nil
			}
		}
		wText := make([]string, len(weights))
		for i, w := range weights {
			wText[i] = fmt.Sprintf("%d", w)
		}
		prim := map[graph.Op]string{
			graph.OpWeightedAtMost:  "pble",
			graph.OpWeightedAtLeast: "pbge",
			graph.OpWeightedExactly: "pbeq",
		}[n.Op]
		return fmt.Sprintf("((_ %s %d %s) %s)", prim, k, strings.Join(wText, " "), args), nil
	}
	terms := make([]string, len(a))
	for i, b := range a {
		terms[i] = fmt.Sprintf("(ite %s %d 0)", b, weights[i])
	}
	sum := terms[0]
	if len(terms) > 1 {
		sum = fmt.Sprintf("(+ %s)", strings.Join(terms, " "))
	}
	cmp := "<="
	switch n.Op {
	case graph.OpAtLeast, graph.OpWeightedAtLeast:
		cmp = ">="
	case graph.OpExactly, graph.OpWeightedExactly:
		cmp = "="
	}
	return fmt.Sprintf("(%s %s %d)", cmp, sum, k), nil
}

// Auxiliary recursive helpers, synthesized on demand for operators
// with no native solver primitive.

func helperKey(op graph.Op, k *kind.Kind) string {
	if op == graph.OpStrReverse {
		return "str.rev"
	}
	return "seq.rev|" + k.String()
}

// helperDef returns the symbol and definition lines for one helper.
func helperDef(op graph.Op, k *kind.Kind, serial int) (string, []string) {
	if op == graph.OpStrReverse {
		sym := "str.rev"
		return sym, []string{
			fmt.Sprintf("(define-fun-rec %s ((s!r String)) String", sym),
			fmt.Sprintf("  (ite (= s!r \"\") s!r (str.++ (%s (str.substr s!r 1 (- (str.len s!r) 1))) (str.at s!r 0))))", sym),
		}
	}
	sort := smtSort(k)
	sym := fmt.Sprintf("seq.rev!%d", serial)
	empty := fmt.Sprintf("(as seq.empty %s)", sort)
	return sym, []string{
		fmt.Sprintf("(define-fun-rec %s ((s!r %s)) %s", sym, sort, sort),
		fmt.Sprintf("  (ite (= s!r %s) s!r (seq.++ (%s (seq.extract s!r 1 (- (seq.len s!r) 1))) (seq.extract s!r 0 1))))", sym, empty),
	}
}
