package value

import (
	"errors"
	"math"
	"testing"
)

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		kind Kind
	}{
		{"null", Null(), KindNull},
		{"undefined", Undefined(), KindUndefined},
		{"bool", Bool(true), KindBool},
		{"int", Int(42), KindInt},
		{"float", Float(3.5), KindFloat},
		{"string", String("hi"), KindString},
		{"bytes", Bytes([]byte{1, 2}), KindBytes},
		{"range", Range(1, 10), KindRange},
		{"tuple", Tuple(Int(1)), KindTuple},
		{"pair", Pair(Int(1), Int(2)), KindPair},
		{"named", Named("x", Int(1)), KindNamed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.v.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", tt.v.Kind(), tt.kind)
			}
			if got := tt.v.IsInt(); got != (tt.kind == KindInt) {
				t.Errorf("IsInt() = %v", got)
			}
			if got := tt.v.IsPair(); got != (tt.kind == KindPair) {
				t.Errorf("IsPair() = %v", got)
			}
			if got := tt.v.IsTuple(); got != (tt.kind == KindTuple) {
				t.Errorf("IsTuple() = %v", got)
			}
		})
	}
}

func TestAccessorMismatch(t *testing.T) {
	s := String("hello")

	if s.IsInt() {
		t.Error("IsInt() on string should be false")
	}

	_, err := s.AsInt()
	var tm *TypeMismatchError
	if !errors.As(err, &tm) {
		t.Fatalf("AsInt on string: got %v, want TypeMismatchError", err)
	}
	if tm.Want != KindInt || tm.Got != KindString {
		t.Errorf("TypeMismatchError = want %v got %v", tm.Want, tm.Got)
	}
}

func TestPairAccessors(t *testing.T) {
	k, v := String("key"), Int(7)
	p := Pair(k, v)

	if !p.IsPair() {
		t.Fatal("IsPair() = false")
	}
	gotK, err := p.Key()
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	if !gotK.Equal(k) {
		t.Errorf("Key() = %v, want %v", gotK, k)
	}
	gotV, err := p.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if !gotV.Equal(v) {
		t.Errorf("Value() = %v, want %v", gotV, v)
	}

	if _, err := Int(1).Key(); err == nil {
		t.Error("Key on non-pair should fail")
	}
}

func TestNamedAccessors(t *testing.T) {
	n := Named("greeting", String("hi"))

	name, err := n.Name()
	if err != nil || name != "greeting" {
		t.Errorf("Name() = %q, %v", name, err)
	}
	b, err := n.Binding()
	if err != nil || !b.Equal(String("hi")) {
		t.Errorf("Binding() = %v, %v", b, err)
	}
	if _, err := String("x").Name(); err == nil {
		t.Error("Name on non-named should fail")
	}
}

func TestTupleFieldLookup(t *testing.T) {
	tup := Tuple(
		Named("a", Int(1)),
		Int(99),
		Named("b", String("two")),
	)

	got, err := tup.Field("b")
	if err != nil {
		t.Fatalf("Field(b): %v", err)
	}
	if !got.Equal(String("two")) {
		t.Errorf("Field(b) = %v", got)
	}

	_, err = tup.Field("missing")
	var nf *NameNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Field(missing): got %v, want NameNotFoundError", err)
	}
	if nf.Name != "missing" {
		t.Errorf("NameNotFoundError.Name = %q", nf.Name)
	}
}

func TestTupleFieldViaPairs(t *testing.T) {
	dict := Tuple(
		Pair(String("key1"), String("Hello")),
		Pair(String("key2"), String("World")),
	)

	got, err := dict.Field("key2")
	if err != nil {
		t.Fatalf("Field(key2): %v", err)
	}
	if !got.Equal(String("World")) {
		t.Errorf("Field(key2) = %v", got)
	}
}

func TestTupleFieldAmbiguous(t *testing.T) {
	tup := Tuple(Named("x", Int(1)), Named("x", Int(2)))

	_, err := tup.Field("x")
	var amb *AmbiguousNameError
	if !errors.As(err, &amb) {
		t.Fatalf("got %v, want AmbiguousNameError", err)
	}
	if amb.Count != 2 {
		t.Errorf("Count = %d, want 2", amb.Count)
	}
}

func TestTuplePositional(t *testing.T) {
	tup := Tuple(Int(10), Int(20), Int(30))

	n, err := tup.Len()
	if err != nil || n != 3 {
		t.Fatalf("Len() = %d, %v", n, err)
	}
	e, err := tup.At(1)
	if err != nil || !e.Equal(Int(20)) {
		t.Errorf("At(1) = %v, %v", e, err)
	}
	if _, err := tup.At(3); err == nil {
		t.Error("At(3) out of range should fail")
	}
	if _, err := tup.At(-1); err == nil {
		t.Error("At(-1) should fail")
	}
}

func TestRangeLen(t *testing.T) {
	tests := []struct {
		start, end int64
		want       int
	}{
		{1, 10, 10},
		{5, 5, 1},
		{10, 1, 0},
	}
	for _, tt := range tests {
		n, err := Range(tt.start, tt.end).Len()
		if err != nil || n != tt.want {
			t.Errorf("Range(%d,%d).Len() = %d, %v; want %d", tt.start, tt.end, n, err, tt.want)
		}
	}
}

func TestRangeLenLimit(t *testing.T) {
	n, err := Range(0, MaxRangeElements-1).Len()
	if err != nil || n != MaxRangeElements {
		t.Errorf("widest allowed span: Len() = %d, %v; want %d", n, err, MaxRangeElements)
	}

	over := []Span{
		{Start: 0, End: MaxRangeElements},
		{Start: 0, End: math.MaxInt64},
		{Start: math.MinInt64, End: math.MaxInt64},
	}
	for _, s := range over {
		if n, err := s.Len(); err == nil {
			t.Errorf("Span{%d, %d}.Len() = %d, want error", s.Start, s.End, n)
		}
	}
}

func TestEqualStructural(t *testing.T) {
	a := Tuple(Named("p", Pair(Int(1), String("x"))), Float(2.5))
	b := Tuple(Named("p", Pair(Int(1), String("x"))), Float(2.5))
	c := Tuple(Named("p", Pair(Int(1), String("y"))), Float(2.5))

	if !a.Equal(b) {
		t.Error("deep equal tuples not Equal")
	}
	if a.Equal(c) {
		t.Error("different tuples reported Equal")
	}
	if Int(1).Equal(Float(1)) {
		t.Error("int and float of same magnitude should differ")
	}
}

func TestRepr(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Null(), "null"},
		{Bool(true), "true"},
		{Int(-3), "-3"},
		{String("hi"), `"hi"`},
		{Range(1, 10), "1..10"},
		{Pair(String("ok"), Int(1)), `"ok" => 1`},
		{Named("x", Int(2)), "x: 2"},
		{Tuple(Int(1), Int(2)), "[1, 2]"},
	}
	for _, tt := range tests {
		if got := tt.v.Repr(); got != tt.want {
			t.Errorf("Repr() = %q, want %q", got, tt.want)
		}
	}

	if got := String("hi").String(); got != "hi" {
		t.Errorf("String() = %q, want raw string", got)
	}
}

func TestBytesImmutable(t *testing.T) {
	src := []byte{1, 2, 3}
	v := Bytes(src)
	src[0] = 9

	got, err := v.AsBytes()
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 1 {
		t.Error("Bytes aliased caller slice")
	}
	got[1] = 9
	again, _ := v.AsBytes()
	if again[1] != 2 {
		t.Error("AsBytes exposed internal slice")
	}
}
