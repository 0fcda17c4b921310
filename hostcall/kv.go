package hostcall

import (
	"context"
	"sync"
	"time"

	"github.com/shallot-lang/shallot/value"
)

// KV is an in-memory key/value store exposed to script code through adapters.
// One store may back multiple concurrent evaluations; access is synchronized
// here so the adapters stay reentrant.
type KV struct {
	mu   sync.RWMutex
	data map[string]value.Value
}

func NewKV() *KV {
	return &KV{data: make(map[string]value.Value)}
}

func (s *KV) get(ctx context.Context, self, args value.Value) (value.Value, error) {
	keyV, _ := args.Field("key")
	key, err := keyV.AsString()
	if err != nil {
		return value.Value{}, err
	}

	s.mu.RLock()
	v, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		def, _ := args.Field("default")
		return def, nil
	}
	return v, nil
}

func (s *KV) set(ctx context.Context, self, args value.Value) (value.Value, error) {
	keyV, _ := args.Field("key")
	key, err := keyV.AsString()
	if err != nil {
		return value.Value{}, err
	}
	v, _ := args.Field("value")

	s.mu.Lock()
	s.data[key] = v
	s.mu.Unlock()

	return value.Bool(true), nil
}

func (s *KV) delete(ctx context.Context, self, args value.Value) (value.Value, error) {
	keyV, _ := args.Field("key")
	key, err := keyV.AsString()
	if err != nil {
		return value.Value{}, err
	}

	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()

	return value.Bool(true), nil
}

func (s *KV) keys(ctx context.Context, self, args value.Value) (value.Value, error) {
	s.mu.RLock()
	out := make([]value.Value, 0, len(s.data))
	for k := range s.data {
		out = append(out, value.String(k))
	}
	s.mu.RUnlock()
	return value.Tuple(out...), nil
}

// Register exposes the store as kv_get, kv_set, kv_delete and kv_keys.
func (s *KV) Register(r *Registry) {
	r.Register("kv_get", WrapFunction(
		Params(Param("key"), ParamDefault("default", value.Null())),
		"kv_get", s.get))
	r.Register("kv_set", WrapFunction(
		Params(Param("key"), Param("value")),
		"kv_set", s.set))
	r.Register("kv_delete", WrapFunction(
		Params(Param("key")),
		"kv_delete", s.delete))
	r.Register("kv_keys", WrapFunction(
		Params(),
		"kv_keys", s.keys))
}

// TimeNow returns an adapter yielding the current Unix time in seconds as a
// float, matching the resolution scripts usually want for timing.
func TimeNow() value.Value {
	return WrapFunction(Params(), "time_now",
		func(ctx context.Context, self, args value.Value) (value.Value, error) {
			return value.Float(float64(time.Now().UnixNano()) / 1e9), nil
		})
}
