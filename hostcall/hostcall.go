package hostcall

import (
	"context"
	"fmt"

	"github.com/shallot-lang/shallot/value"
)

// Func is the host-side signature behind an adapter. self is the invocation
// record (the bound self object when one was supplied, Null otherwise) and
// args is the bound argument record: a Tuple of Named values, one per
// declared parameter, in declaration order.
type Func func(ctx context.Context, self, args value.Value) (value.Value, error)

// Option configures an adapter at wrap time.
type Option func(*adapter)

// WithSelf binds an explicit self object the adapter receives on every
// invocation instead of the caller-supplied one.
func WithSelf(self value.Value) Option {
	return func(a *adapter) {
		a.self = self
		a.hasSelf = true
	}
}

// WithCaptures attaches a capture list to the adapter. Reserved for calling
// conventions that close over evaluator state; carried but not interpreted.
func WithCaptures(captures value.Value) Option {
	return func(a *adapter) {
		a.captures = captures
	}
}

// Param declares a required parameter with no default.
func Param(name string) value.Value {
	return value.Named(name, value.Undefined())
}

// ParamDefault declares a parameter with a default applied when the caller
// omits it.
func ParamDefault(name string, def value.Value) value.Value {
	return value.Named(name, def)
}

// Params assembles a parameter declaration list.
func Params(params ...value.Value) value.Value {
	return value.Tuple(params...)
}

type adapter struct {
	name     string
	params   value.Value
	fn       Func
	async    bool
	self     value.Value
	hasSelf  bool
	captures value.Value
}

var _ value.Callable = (*adapter)(nil)

// WrapFunction wraps a synchronous host function as an opaque callable Value.
// params must be a Tuple of Named declarations (see Params). name is the
// diagnostic name reported in binding and call errors.
func WrapFunction(params value.Value, name string, fn Func, opts ...Option) value.Value {
	return wrap(params, name, fn, false, opts)
}

// WrapCoroutine wraps an asynchronous host function. Invocations run fn on a
// fresh goroutine; the caller suspends until the task resolves or its context
// is cancelled. A failing task surfaces at the resumption point exactly like
// a synchronous failure.
func WrapCoroutine(params value.Value, name string, fn Func, opts ...Option) value.Value {
	return wrap(params, name, fn, true, opts)
}

func wrap(params value.Value, name string, fn Func, async bool, opts []Option) value.Value {
	a := &adapter{
		name:   name,
		params: params,
		fn:     fn,
		async:  async,
	}
	for _, opt := range opts {
		opt(a)
	}
	return value.Wrap(a)
}

func (a *adapter) Name() string        { return a.name }
func (a *adapter) Params() value.Value { return a.params }

func (a *adapter) Invoke(ctx context.Context, self, args value.Value) (value.Value, error) {
	bound, err := bindArgs(a.params, args, a.name)
	if err != nil {
		return value.Value{}, err
	}

	if a.hasSelf {
		self = a.self
	}

	if !a.async {
		return a.call(ctx, self, bound)
	}

	type outcome struct {
		val value.Value
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := a.call(ctx, self, bound)
		done <- outcome{val: v, err: err}
	}()

	select {
	case <-ctx.Done():
		// The task sees the same ctx and winds down on its own; nothing
		// waits on it after this point.
		return value.Value{}, ctx.Err()
	case o := <-done:
		return o.val, o.err
	}
}

// call invokes the host function, converting a panic into an error so no
// host-side failure mode escapes the adapter boundary unobserved.
func (a *adapter) call(ctx context.Context, self, args value.Value) (res value.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic in host function: %v", a.name, r)
		}
	}()
	return a.fn(ctx, self, args)
}
