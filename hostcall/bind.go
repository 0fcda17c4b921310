package hostcall

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/shallot-lang/shallot/value"
)

// BindingError reports that the arguments a script passed could not be bound
// against an adapter's declared parameters. Adapter carries the diagnostic
// name so host logs can attribute the failure.
type BindingError struct {
	Adapter string
	Reason  error
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("%s: cannot bind arguments: %v", e.Adapter, e.Reason)
}

func (e *BindingError) Unwrap() error { return e.Reason }

func bindErr(adapter string, format string, args ...any) error {
	return &BindingError{Adapter: adapter, Reason: fmt.Errorf(format, args...)}
}

// bindArgs matches call arguments against a parameter declaration list and
// produces the bound argument record: a Tuple of Named values in declaration
// order. Positional arguments fill parameters left to right; Named arguments
// match by name and may appear in any order. Missing parameters take their
// declared default; a missing default-less parameter is a BindingError. All
// missing parameters are reported together.
func bindArgs(params, args value.Value, adapter string) (value.Value, error) {
	decls, err := params.Items()
	if err != nil {
		return value.Value{}, bindErr(adapter, "parameter declaration is not a tuple: %v", err)
	}

	names := make([]string, len(decls))
	defaults := make([]value.Value, len(decls))
	index := make(map[string]int, len(decls))
	for i, d := range decls {
		name, err := d.Name()
		if err != nil {
			return value.Value{}, bindErr(adapter, "parameter %d is not a named declaration: %v", i, err)
		}
		def, err := d.Binding()
		if err != nil {
			return value.Value{}, bindErr(adapter, "parameter %q: %v", name, err)
		}
		if _, dup := index[name]; dup {
			return value.Value{}, bindErr(adapter, "duplicate parameter %q", name)
		}
		names[i] = name
		defaults[i] = def
		index[name] = i
	}

	var incoming []value.Value
	switch {
	case args.IsNull(), args.IsUndefined():
		// No arguments.
	case args.IsTuple():
		incoming, _ = args.Items()
	default:
		// A bare value counts as a single positional argument.
		incoming = []value.Value{args}
	}

	bound := make([]value.Value, len(decls))
	filled := make([]bool, len(decls))
	next := 0

	for _, arg := range incoming {
		if arg.IsNamed() {
			name, _ := arg.Name()
			v, _ := arg.Binding()
			i, ok := index[name]
			if !ok {
				return value.Value{}, bindErr(adapter, "unknown parameter %q", name)
			}
			if filled[i] {
				return value.Value{}, bindErr(adapter, "parameter %q bound twice", name)
			}
			bound[i] = v
			filled[i] = true
			continue
		}

		for next < len(decls) && filled[next] {
			next++
		}
		if next >= len(decls) {
			return value.Value{}, bindErr(adapter, "too many arguments: expected %d", len(decls))
		}
		bound[next] = arg
		filled[next] = true
		next++
	}

	var missing error
	for i := range decls {
		if filled[i] {
			continue
		}
		if !defaults[i].IsUndefined() {
			bound[i] = defaults[i]
			filled[i] = true
			continue
		}
		missing = multierr.Append(missing, fmt.Errorf("missing required parameter %q", names[i]))
	}
	if missing != nil {
		return value.Value{}, &BindingError{Adapter: adapter, Reason: missing}
	}

	record := make([]value.Value, len(decls))
	for i := range decls {
		record[i] = value.Named(names[i], bound[i])
	}
	return value.Tuple(record...), nil
}
