package value

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the variant stored in a Value.
type Kind int

const (
	KindNull Kind = iota
	KindUndefined
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindRange
	KindTuple
	KindPair
	KindNamed
	KindCallable
)

var kindNames = [...]string{
	KindNull:      "null",
	KindUndefined: "undefined",
	KindBool:      "boolean",
	KindInt:       "integer",
	KindFloat:     "float",
	KindString:    "string",
	KindBytes:     "bytes",
	KindRange:     "range",
	KindTuple:     "tuple",
	KindPair:      "pair",
	KindNamed:     "named",
	KindCallable:  "callable",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Callable is an opaque, host-implemented capability invocable from script
// code. Implementations live in the hostcall package; the evaluator only sees
// this interface.
type Callable interface {
	// Name returns the diagnostic name used in error messages and traces.
	Name() string

	// Params returns the declared parameter list as a Tuple of Named values.
	Params() Value

	// Invoke calls the host code with the invocation record and raw
	// arguments. It may block; cancellation arrives through ctx.
	Invoke(ctx context.Context, self, args Value) (Value, error)
}

// Value is an immutable tagged union. The zero Value is Null.
type Value struct {
	kind Kind
	data any
}

// Span is the payload of a range Value. Both bounds are inclusive.
type Span struct {
	Start int64
	End   int64
}

// MaxRangeElements bounds how many elements a range may report or
// materialize. Spans wider than this fail instead of allocating.
const MaxRangeElements = 1 << 20

// Len returns the number of elements the span covers. An inverted span is
// empty. The unsigned subtraction keeps the width exact for extreme bounds,
// so a span like MinInt64..MaxInt64 fails the limit check instead of
// overflowing into a negative count.
func (s Span) Len() (int, error) {
	if s.End < s.Start {
		return 0, nil
	}
	width := uint64(s.End) - uint64(s.Start)
	if width >= MaxRangeElements {
		return 0, fmt.Errorf("range %d..%d exceeds %d elements", s.Start, s.End, int64(MaxRangeElements))
	}
	return int(width + 1), nil
}

type pairData struct {
	key Value
	val Value
}

type namedData struct {
	name string
	val  Value
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Undefined returns the undefined Value. It marks the absence of a default in
// parameter declarations and is distinct from Null.
func Undefined() Value { return Value{kind: KindUndefined} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, data: b} }

// Int returns an integer Value. The evaluator's numeric domain is int64.
func Int(i int64) Value { return Value{kind: KindInt, data: i} }

// Float returns a floating-point Value.
func Float(f float64) Value { return Value{kind: KindFloat, data: f} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, data: s} }

// Bytes returns a bytes Value. The slice is copied.
func Bytes(b []byte) Value {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Value{kind: KindBytes, data: cp}
}

// Range returns an inclusive integer range Value.
func Range(start, end int64) Value {
	return Value{kind: KindRange, data: Span{Start: start, End: end}}
}

// Tuple returns an ordered sequence Value. Elements may be Named, making the
// tuple addressable by field name as well as by position.
func Tuple(elems ...Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{kind: KindTuple, data: cp}
}

// Pair returns a key/value association. The tagged outcome convention uses a
// Pair of (Bool success, payload).
func Pair(key, val Value) Value {
	return Value{kind: KindPair, data: pairData{key: key, val: val}}
}

// Named tags a Value with a binding name. Unlike Pair the tag is an
// identifier, not a runtime Value; Named values compose into evaluation
// contexts and parameter lists.
func Named(name string, val Value) Value {
	return Value{kind: KindNamed, data: namedData{name: name, val: val}}
}

// Wrap returns an opaque callable Value around c.
func Wrap(c Callable) Value { return Value{kind: KindCallable, data: c} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// Predicates. All are total.

func (v Value) IsNull() bool      { return v.kind == KindNull }
func (v Value) IsUndefined() bool { return v.kind == KindUndefined }
func (v Value) IsBool() bool      { return v.kind == KindBool }
func (v Value) IsInt() bool       { return v.kind == KindInt }
func (v Value) IsFloat() bool     { return v.kind == KindFloat }
func (v Value) IsString() bool    { return v.kind == KindString }
func (v Value) IsBytes() bool     { return v.kind == KindBytes }
func (v Value) IsRange() bool     { return v.kind == KindRange }
func (v Value) IsTuple() bool     { return v.kind == KindTuple }
func (v Value) IsPair() bool      { return v.kind == KindPair }
func (v Value) IsNamed() bool     { return v.kind == KindNamed }
func (v Value) IsCallable() bool  { return v.kind == KindCallable }

// Equal reports deep structural equality. Callables compare by identity;
// every other variant compares recursively.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull, KindUndefined:
		return true
	case KindBool:
		return v.data.(bool) == other.data.(bool)
	case KindInt:
		return v.data.(int64) == other.data.(int64)
	case KindFloat:
		return v.data.(float64) == other.data.(float64)
	case KindString:
		return v.data.(string) == other.data.(string)
	case KindBytes:
		a, b := v.data.([]byte), other.data.([]byte)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	case KindRange:
		return v.data.(Span) == other.data.(Span)
	case KindTuple:
		a, b := v.data.([]Value), other.data.([]Value)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case KindPair:
		a, b := v.data.(pairData), other.data.(pairData)
		return a.key.Equal(b.key) && a.val.Equal(b.val)
	case KindNamed:
		a, b := v.data.(namedData), other.data.(namedData)
		return a.name == b.name && a.val.Equal(b.val)
	case KindCallable:
		return v.data.(Callable) == other.data.(Callable)
	}
	return false
}

// String renders the Value for display. Strings render raw; use Repr for a
// structural rendering with quoting.
func (v Value) String() string {
	if v.kind == KindString {
		return v.data.(string)
	}
	return v.Repr()
}

// Repr renders the Value structurally. Callables render as an opaque token.
func (v Value) Repr() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindBool:
		return strconv.FormatBool(v.data.(bool))
	case KindInt:
		return strconv.FormatInt(v.data.(int64), 10)
	case KindFloat:
		return strconv.FormatFloat(v.data.(float64), 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.data.(string))
	case KindBytes:
		return "bytes(" + strconv.Itoa(len(v.data.([]byte))) + ")"
	case KindRange:
		s := v.data.(Span)
		return strconv.FormatInt(s.Start, 10) + ".." + strconv.FormatInt(s.End, 10)
	case KindTuple:
		elems := v.data.([]Value)
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = e.Repr()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindPair:
		p := v.data.(pairData)
		return p.key.Repr() + " => " + p.val.Repr()
	case KindNamed:
		n := v.data.(namedData)
		return n.name + ": " + n.val.Repr()
	case KindCallable:
		return "callable<" + v.data.(Callable).Name() + ">"
	}
	return "unknown"
}
