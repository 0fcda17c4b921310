package value

import "fmt"

// AsBool extracts a boolean. Fails with *TypeMismatchError on other variants.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, mismatch(KindBool, v.kind)
	}
	return v.data.(bool), nil
}

// AsInt extracts an integer.
func (v Value) AsInt() (int64, error) {
	if v.kind != KindInt {
		return 0, mismatch(KindInt, v.kind)
	}
	return v.data.(int64), nil
}

// AsFloat extracts a float. Integers widen; no other variant converts.
func (v Value) AsFloat() (float64, error) {
	switch v.kind {
	case KindFloat:
		return v.data.(float64), nil
	case KindInt:
		return float64(v.data.(int64)), nil
	default:
		return 0, mismatch(KindFloat, v.kind)
	}
}

// AsString extracts a string.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", mismatch(KindString, v.kind)
	}
	return v.data.(string), nil
}

// AsBytes extracts a byte slice copy.
func (v Value) AsBytes() ([]byte, error) {
	if v.kind != KindBytes {
		return nil, mismatch(KindBytes, v.kind)
	}
	b := v.data.([]byte)
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp, nil
}

// AsRange extracts the inclusive bounds of a range.
func (v Value) AsRange() (Span, error) {
	if v.kind != KindRange {
		return Span{}, mismatch(KindRange, v.kind)
	}
	return v.data.(Span), nil
}

// AsCallable extracts the opaque callable handle.
func (v Value) AsCallable() (Callable, error) {
	if v.kind != KindCallable {
		return nil, mismatch(KindCallable, v.kind)
	}
	return v.data.(Callable), nil
}

// Key returns the key of a Pair.
func (v Value) Key() (Value, error) {
	if v.kind != KindPair {
		return Value{}, mismatch(KindPair, v.kind)
	}
	return v.data.(pairData).key, nil
}

// Value returns the value of a Pair.
func (v Value) Value() (Value, error) {
	if v.kind != KindPair {
		return Value{}, mismatch(KindPair, v.kind)
	}
	return v.data.(pairData).val, nil
}

// Name returns the identifier of a Named value.
func (v Value) Name() (string, error) {
	if v.kind != KindNamed {
		return "", mismatch(KindNamed, v.kind)
	}
	return v.data.(namedData).name, nil
}

// Binding returns the value a Named binding carries.
func (v Value) Binding() (Value, error) {
	if v.kind != KindNamed {
		return Value{}, mismatch(KindNamed, v.kind)
	}
	return v.data.(namedData).val, nil
}

// Len returns the element count of a tuple, the byte length of a string or
// bytes value, or the cardinality of a range. Ranges wider than
// MaxRangeElements fail.
func (v Value) Len() (int, error) {
	switch v.kind {
	case KindTuple:
		return len(v.data.([]Value)), nil
	case KindString:
		return len(v.data.(string)), nil
	case KindBytes:
		return len(v.data.([]byte)), nil
	case KindRange:
		return v.data.(Span).Len()
	default:
		return 0, mismatch(KindTuple, v.kind)
	}
}

// At returns the i-th element of a tuple.
func (v Value) At(i int) (Value, error) {
	if v.kind != KindTuple {
		return Value{}, mismatch(KindTuple, v.kind)
	}
	elems := v.data.([]Value)
	if i < 0 || i >= len(elems) {
		return Value{}, fmt.Errorf("index %d out of range [0, %d)", i, len(elems))
	}
	return elems[i], nil
}

// Items returns a copy of a tuple's elements.
func (v Value) Items() ([]Value, error) {
	if v.kind != KindTuple {
		return nil, mismatch(KindTuple, v.kind)
	}
	elems := v.data.([]Value)
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return cp, nil
}

// Field resolves a tuple field by scanning its Named elements, unwrapping the
// match. Pair elements with a string key participate too, so a tuple of pairs
// doubles as a record. Lookup fails with *NameNotFoundError when nothing
// matches and *AmbiguousNameError when more than one element does.
func (v Value) Field(name string) (Value, error) {
	if v.kind != KindTuple {
		return Value{}, mismatch(KindTuple, v.kind)
	}
	var found Value
	count := 0
	for _, e := range v.data.([]Value) {
		switch e.kind {
		case KindNamed:
			n := e.data.(namedData)
			if n.name == name {
				found = n.val
				count++
			}
		case KindPair:
			p := e.data.(pairData)
			if p.key.kind == KindString && p.key.data.(string) == name {
				found = p.val
				count++
			}
		}
	}
	switch count {
	case 0:
		return Value{}, &NameNotFoundError{Name: name}
	case 1:
		return found, nil
	default:
		return Value{}, &AmbiguousNameError{Name: name, Count: count}
	}
}
