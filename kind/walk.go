package kind

// Walk visits k and then, if f returned true, every kind nested inside
// it, pre-order. Both the feature detector and the well-formedness
// constraint walk are built on this single recursion rather than
// special-casing each container.
func (k *Kind) Walk(f func(k *Kind) bool) {
	if !f(k) {
		return
	}
	switch k.Type {
	case ListType, SetType, MaybeType:
		k.Elem.Walk(f)
	case EitherType:
		k.Left.Walk(f)
		k.Right.Walk(f)
	case TupleType:
		for _, e := range k.Kinds {
			e.Walk(f)
		}
	}
}

// Contains reports whether any kind in k's shape satisfies f.
func (k *Kind) Contains(f func(k *Kind) bool) bool {
	found := false
	k.Walk(func(kk *Kind) bool {
		if f(kk) {
			found = true
		}
		return !found
	})
	return found
}

// ContainsType reports whether any kind in k's shape has type t.
func (k *Kind) ContainsType(t Type) bool {
	return k.Contains(func(kk *Kind) bool { return kk.Type == t })
}
