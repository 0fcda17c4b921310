package hostcall

import (
	"context"
	"testing"

	"github.com/shallot-lang/shallot/value"
)

func kvCall(t *testing.T, r *Registry, name string, args value.Value) (value.Value, error) {
	t.Helper()
	v, ok := r.Get(name)
	if !ok {
		t.Fatalf("%s not registered", name)
	}
	c, err := v.AsCallable()
	if err != nil {
		t.Fatalf("%s is not callable: %v", name, err)
	}
	return c.Invoke(context.Background(), value.Null(), args)
}

func TestKVSetGet(t *testing.T) {
	r := NewRegistry()
	NewKV().Register(r)

	if _, err := kvCall(t, r, "kv_set", value.Tuple(value.String("foo"), value.String("bar"))); err != nil {
		t.Fatalf("kv_set: %v", err)
	}

	got, err := kvCall(t, r, "kv_get", value.Tuple(value.String("foo")))
	if err != nil {
		t.Fatalf("kv_get: %v", err)
	}
	if !got.Equal(value.String("bar")) {
		t.Errorf("kv_get = %v, want bar", got)
	}
}

func TestKVGetDefault(t *testing.T) {
	r := NewRegistry()
	NewKV().Register(r)

	got, err := kvCall(t, r, "kv_get", value.Tuple(
		value.String("missing"),
		value.Named("default", value.String("fallback")),
	))
	if err != nil {
		t.Fatalf("kv_get: %v", err)
	}
	if !got.Equal(value.String("fallback")) {
		t.Errorf("kv_get = %v, want fallback", got)
	}
}

func TestKVGetMissing(t *testing.T) {
	r := NewRegistry()
	NewKV().Register(r)

	got, err := kvCall(t, r, "kv_get", value.Tuple(value.String("missing")))
	if err != nil {
		t.Fatalf("kv_get: %v", err)
	}
	if !got.IsNull() {
		t.Errorf("kv_get = %v, want null", got)
	}
}

func TestKVDelete(t *testing.T) {
	r := NewRegistry()
	NewKV().Register(r)

	kvCall(t, r, "kv_set", value.Tuple(value.String("foo"), value.Int(1)))
	kvCall(t, r, "kv_delete", value.Tuple(value.String("foo")))

	got, _ := kvCall(t, r, "kv_get", value.Tuple(value.String("foo")))
	if !got.IsNull() {
		t.Errorf("expected null after delete, got %v", got)
	}
}

func TestKVKeys(t *testing.T) {
	r := NewRegistry()
	NewKV().Register(r)

	for _, k := range []string{"a", "b", "c"} {
		kvCall(t, r, "kv_set", value.Tuple(value.String(k), value.Int(1)))
	}

	got, err := kvCall(t, r, "kv_keys", value.Null())
	if err != nil {
		t.Fatalf("kv_keys: %v", err)
	}
	n, err := got.Len()
	if err != nil || n != 3 {
		t.Errorf("kv_keys len = %d, %v; want 3", n, err)
	}
}

func TestRegistryOrderAndContext(t *testing.T) {
	r := NewRegistry()
	r.Register("b", value.Int(2))
	r.Register("a", value.Int(1))
	r.Register("b", value.Int(3)) // replace keeps position

	names := r.List()
	if len(names) != 2 || names[0] != "b" || names[1] != "a" {
		t.Fatalf("List() = %v, want [b a]", names)
	}

	ctx := r.Context()
	if len(ctx) != 2 {
		t.Fatalf("Context() len = %d", len(ctx))
	}
	if !ctx[0].Equal(value.Named("b", value.Int(3))) {
		t.Errorf("ctx[0] = %v", ctx[0])
	}
	if !ctx[1].Equal(value.Named("a", value.Int(1))) {
		t.Errorf("ctx[1] = %v", ctx[1])
	}
}
