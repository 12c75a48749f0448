package value

import "strconv"

// Walk visits v and every value nested below it in depth-first pre-order.
// Array elements are visited in order; object members in key order.
//
// Walk does not track visited nodes. Decoded documents are trees, so it always
// terminates on them.
func Walk(v Value, visit func(Value)) {
	visit(v)
	switch v.kind {
	case KindArray:
		for _, item := range v.arr {
			Walk(item, visit)
		}
	case KindObject:
		for _, k := range v.obj.keys {
			Walk(v.obj.vals[k], visit)
		}
	}
}

// Equal reports whether a and b hold the same data. Object member order is
// ignored; array order is not. Numbers compare by literal text.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber, KindString:
		return a.text == b.text
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		for k, av := range a.obj.All() {
			bv, ok := b.obj.Get(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// At follows tokens from v: object members by key, array elements by decimal
// index. It reports false when any step is missing.
func At(v Value, tokens ...string) (Value, bool) {
	for _, tok := range tokens {
		switch v.kind {
		case KindObject:
			next, ok := v.obj.Get(tok)
			if !ok {
				return Value{}, false
			}
			v = next
		case KindArray:
			i, err := strconv.Atoi(tok)
			if err != nil || i < 0 || i >= len(v.arr) || tok != strconv.Itoa(i) {
				return Value{}, false
			}
			v = v.arr[i]
		default:
			return Value{}, false
		}
	}
	return v, true
}
