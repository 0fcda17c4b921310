package interp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shallot-lang/shallot/value"
)

func run(t *testing.T, src string, bindings ...value.Value) value.Value {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, err := Run(context.Background(), prog, bindings, Config{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out
}

func wantSuccess(t *testing.T, out value.Value) value.Value {
	t.Helper()
	ok, payload, err := decompose(out)
	if err != nil {
		t.Fatalf("outcome not a tagged pair: %v", err)
	}
	if !ok {
		t.Fatalf("script raised: %v", payload)
	}
	return payload
}

func wantFailure(t *testing.T, out value.Value) value.Value {
	t.Helper()
	ok, payload, err := decompose(out)
	if err != nil {
		t.Fatalf("outcome not a tagged pair: %v", err)
	}
	if ok {
		t.Fatalf("expected failure, got success with %v", payload)
	}
	return payload
}

func TestReturnLiteral(t *testing.T) {
	payload := wantSuccess(t, run(t, `return 42;`))
	if !payload.Equal(value.Int(42)) {
		t.Errorf("payload = %v, want 42", payload)
	}
}

func TestNoReturnYieldsNull(t *testing.T) {
	payload := wantSuccess(t, run(t, `x := 1;`))
	if !payload.IsNull() {
		t.Errorf("payload = %v, want null", payload)
	}
}

func TestRangeElements(t *testing.T) {
	payload := wantSuccess(t, run(t, `return (1..10).elements();`))
	if !payload.IsTuple() {
		t.Fatalf("payload is %v, want tuple", payload.Kind())
	}
	n, _ := payload.Len()
	if n != 10 {
		t.Fatalf("len = %d, want 10", n)
	}
	for i := 0; i < 10; i++ {
		e, err := payload.At(i)
		if err != nil {
			t.Fatal(err)
		}
		if !e.Equal(value.Int(int64(i + 1))) {
			t.Errorf("element %d = %v, want %d", i, e, i+1)
		}
	}
}

func TestHugeRangeElementsFails(t *testing.T) {
	payload := wantFailure(t, run(t, `return (0..4611686018427387904).elements();`))
	s, err := payload.AsString()
	if err != nil {
		t.Fatalf("payload should be a string: %v", err)
	}
	if s == "" {
		t.Error("thrown value should name the offending range")
	}
}

func TestRangeElementsNearMaxInt(t *testing.T) {
	payload := wantSuccess(t, run(t,
		`return (9223372036854775800..9223372036854775807).elements();`))
	n, err := payload.Len()
	if err != nil {
		t.Fatal(err)
	}
	if n != 8 {
		t.Fatalf("len = %d, want 8", n)
	}
	last, _ := payload.At(7)
	if !last.Equal(value.Int(9223372036854775807)) {
		t.Errorf("last element = %v", last)
	}
}

func TestHugeRangeLengthFails(t *testing.T) {
	wantFailure(t, run(t, `return (0..9223372036854775807).length();`))
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		src  string
		want value.Value
	}{
		{`return 2 + 3 * 4;`, value.Int(14)},
		{`return (2 + 3) * 4;`, value.Int(20)},
		{`return 7 / 2;`, value.Int(3)},
		{`return 7 % 2;`, value.Int(1)},
		{`return 1.5 + 2;`, value.Float(3.5)},
		{`return -3;`, value.Int(-3)},
		{`return "foo" + "bar";`, value.String("foobar")},
		{`return 2 < 3;`, value.Bool(true)},
		{`return 2 == 2;`, value.Bool(true)},
		{`return "a" != "b";`, value.Bool(true)},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			payload := wantSuccess(t, run(t, tt.src))
			if !payload.Equal(tt.want) {
				t.Errorf("payload = %v, want %v", payload, tt.want)
			}
		})
	}
}

func TestAssignAndUse(t *testing.T) {
	payload := wantSuccess(t, run(t, `
		x := 3;
		y := x * x;
		return y + 1;
	`))
	if !payload.Equal(value.Int(10)) {
		t.Errorf("payload = %v, want 10", payload)
	}
}

func TestTupleAndFieldAccess(t *testing.T) {
	payload := wantSuccess(t, run(t, `
		point := [x: 3, y: 4];
		return point.x + point.y;
	`))
	if !payload.Equal(value.Int(7)) {
		t.Errorf("payload = %v, want 7", payload)
	}
}

func TestPairLiteral(t *testing.T) {
	payload := wantSuccess(t, run(t, `return "k" => 42;`))
	if !payload.IsPair() {
		t.Fatalf("payload is %v, want pair", payload.Kind())
	}
	k, _ := payload.Key()
	v, _ := payload.Value()
	if !k.Equal(value.String("k")) || !v.Equal(value.Int(42)) {
		t.Errorf("pair = %v => %v", k, v)
	}
}

func TestMethodBuiltins(t *testing.T) {
	tests := []struct {
		src  string
		want value.Value
	}{
		{`return [1, 2, 3].length();`, value.Int(3)},
		{`return ("a" => 1).key();`, value.String("a")},
		{`return ("a" => 1).value();`, value.Int(1)},
		{`return [10, 20, 30].at(1);`, value.Int(20)},
		{`return "hello".length();`, value.Int(5)},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			payload := wantSuccess(t, run(t, tt.src))
			if !payload.Equal(tt.want) {
				t.Errorf("payload = %v, want %v", payload, tt.want)
			}
		})
	}
}

func TestRaise(t *testing.T) {
	payload := wantFailure(t, run(t, `raise "boom";`))
	if !payload.Equal(value.String("boom")) {
		t.Errorf("payload = %v, want boom", payload)
	}
}

func TestRuntimeErrorBecomesThrown(t *testing.T) {
	payload := wantFailure(t, run(t, `return "a" * 2;`))
	s, err := payload.AsString()
	if err != nil {
		t.Fatalf("payload should be a string: %v", err)
	}
	if s == "" {
		t.Error("thrown value should carry a message")
	}
}

func TestDivisionByZero(t *testing.T) {
	wantFailure(t, run(t, `return 1 / 0;`))
}

func TestUndefinedIdentifier(t *testing.T) {
	payload := wantFailure(t, run(t, `return nope;`))
	s, _ := payload.AsString()
	if s == "" {
		t.Error("expected message naming the undefined identifier")
	}
}

func TestRequiredMissing(t *testing.T) {
	wantFailure(t, run(t, `@required add; return 1;`))
}

func TestRequiredPresent(t *testing.T) {
	payload := wantSuccess(t, run(t,
		`@required x; return x + 1;`,
		value.Named("x", value.Int(41))))
	if !payload.Equal(value.Int(42)) {
		t.Errorf("payload = %v, want 42", payload)
	}
}

func TestContextBindingVisible(t *testing.T) {
	payload := wantSuccess(t, run(t,
		`return greeting;`,
		value.Named("greeting", value.String("hi"))))
	if !payload.Equal(value.String("hi")) {
		t.Errorf("payload = %v", payload)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		`return 1 +;`,
		`x := ;`,
		`@bogus thing;`,
		`return "unterminated;`,
		`return (1;`,
		`return 1 return 2;`,
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			if _, err := Parse(src); err == nil {
				t.Errorf("Parse(%q) should fail", src)
			}
		})
	}
}

func TestComments(t *testing.T) {
	payload := wantSuccess(t, run(t, `
		// leading comment
		x := 1; // trailing comment
		return x;
	`))
	if !payload.Equal(value.Int(1)) {
		t.Errorf("payload = %v", payload)
	}
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib.sha")
	if err := os.WriteFile(lib, []byte(`return 40;`), 0o644); err != nil {
		t.Fatal(err)
	}

	prog, err := Parse(`@import base "lib.sha"; return base + 2;`)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Run(context.Background(), prog, nil, Config{WorkDir: dir})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	payload := wantSuccess(t, out)
	if !payload.Equal(value.Int(42)) {
		t.Errorf("payload = %v, want 42", payload)
	}
}

func TestImportMissingFileIsHostError(t *testing.T) {
	prog, err := Parse(`@import base "nope.sha"; return 1;`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Run(context.Background(), prog, nil, Config{WorkDir: t.TempDir()}); err == nil {
		t.Error("missing import file should be a host-level error")
	}
}

func TestImportWithoutWorkDirIsHostError(t *testing.T) {
	prog, err := Parse(`@import base "lib.sha"; return 1;`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Run(context.Background(), prog, nil, Config{}); err == nil {
		t.Error("import without a working directory should be a host-level error")
	}
}

func TestImportRaisePropagates(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.sha"), []byte(`raise "inner";`), 0o644); err != nil {
		t.Fatal(err)
	}

	prog, err := Parse(`@import base "bad.sha"; return 1;`)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Run(context.Background(), prog, nil, Config{WorkDir: dir})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	payload := wantFailure(t, out)
	if !payload.Equal(value.String("inner")) {
		t.Errorf("payload = %v, want inner", payload)
	}
}

func TestCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	prog, err := Parse(`return 1;`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Run(ctx, prog, nil, Config{}); err != context.Canceled {
		t.Errorf("got %v, want context.Canceled", err)
	}
}
