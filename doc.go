// Package shallot provides a bidirectional bridge between Go hosts and the
// embedded shallot script evaluator.
//
// # Overview
//
// Scripts evaluate with zero ambient authority: every capability a script can
// reach arrives through a context of named values, typically host functions
// wrapped as callable adapters.
//
// # Basic Usage
//
//	eng := engine.New()
//
//	// Plain evaluation
//	res, _ := eng.EvaluateOrThrow(ctx, `return (1..10).elements();`)
//
//	// Exposing a host function
//	add := hostcall.WrapFunction(
//	    hostcall.Params(hostcall.Param("a"), hostcall.Param("b")),
//	    "add", addFn)
//	res, _ = eng.EvaluateOrThrow(ctx, `@required add; return add(3, 5);`,
//	    engine.WithContext(value.Named("add", add)))
//
// # Error Handling
//
// A script that raises surfaces as *engine.RuntimeFailure carrying the thrown
// value with its structure intact; a malformed evaluator outcome surfaces as
// *engine.ResultShapeError. Host functions that fail (or panic) become thrown
// script values rather than escaping as Go errors.
//
// See the [engine], [hostcall], and [value] packages for detailed API
// documentation.
package shallot
