package value

import (
	"fmt"
	"math"
	"sort"
)

// FromGo converts a Go value into its Value representation. The mapping is
// lossless for every scalar kind: nil, bool, all integer widths, float32/64,
// string, and []byte round-trip through ToGo unchanged. Unsigned values above
// the int64 maximum fail rather than wrap. Slices become tuples,
// maps become tuples of pairs (keys sorted for determinism), and a Callable
// becomes an opaque callable handle. Values pass through as-is.
func FromGo(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case Callable:
		return Wrap(x), nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		if uint64(x) > math.MaxInt64 {
			return Value{}, fmt.Errorf("uint %d overflows the integer domain", x)
		}
		return Int(int64(x)), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		if x > math.MaxInt64 {
			return Value{}, fmt.Errorf("uint64 %d overflows the integer domain", x)
		}
		return Int(int64(x)), nil
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case string:
		return String(x), nil
	case []byte:
		return Bytes(x), nil
	case Span:
		return Range(x.Start, x.End), nil
	case []Value:
		return Tuple(x...), nil
	case []any:
		elems := make([]Value, len(x))
		for i, e := range x {
			ev, err := FromGo(e)
			if err != nil {
				return Value{}, err
			}
			elems[i] = ev
		}
		return Tuple(elems...), nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		elems := make([]Value, 0, len(keys))
		for _, k := range keys {
			ev, err := FromGo(x[k])
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, Pair(String(k), ev))
		}
		return Tuple(elems...), nil
	default:
		return Value{}, fmt.Errorf("cannot represent %T as a value", v)
	}
}

// ToGo converts a Value back into a plain Go value: scalars to their native
// types, tuples to []any, pairs and named bindings to a two-element [2]any,
// callables to the underlying Callable. Undefined maps to nil like Null.
func (v Value) ToGo() (any, error) {
	switch v.kind {
	case KindNull, KindUndefined:
		return nil, nil
	case KindBool:
		return v.data.(bool), nil
	case KindInt:
		return v.data.(int64), nil
	case KindFloat:
		return v.data.(float64), nil
	case KindString:
		return v.data.(string), nil
	case KindBytes:
		b, _ := v.AsBytes()
		return b, nil
	case KindRange:
		return v.data.(Span), nil
	case KindTuple:
		elems := v.data.([]Value)
		out := make([]any, len(elems))
		for i, e := range elems {
			g, err := e.ToGo()
			if err != nil {
				return nil, err
			}
			out[i] = g
		}
		return out, nil
	case KindPair:
		p := v.data.(pairData)
		k, err := p.key.ToGo()
		if err != nil {
			return nil, err
		}
		val, err := p.val.ToGo()
		if err != nil {
			return nil, err
		}
		return [2]any{k, val}, nil
	case KindNamed:
		n := v.data.(namedData)
		val, err := n.val.ToGo()
		if err != nil {
			return nil, err
		}
		return [2]any{n.name, val}, nil
	case KindCallable:
		return v.data.(Callable), nil
	}
	return nil, fmt.Errorf("cannot convert %s value", v.kind)
}
