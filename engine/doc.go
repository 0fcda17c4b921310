// Package engine embeds the shallot evaluator behind a host-facing facade.
//
// # Overview
//
// An Engine drives evaluations: it accepts script source, an optional working
// directory for imports, and an optional context of named values (typically
// hostcall adapters), and returns the evaluator's terminal value.
//
//	eng := engine.New()
//
//	out, err := eng.Evaluate(ctx, `return (1..10).elements();`)
//
// Evaluate returns the terminal outcome verbatim: a pair of (success flag,
// payload). Callers who want the thrown-error convention applied use
// EvaluateOrThrow, which unwraps the pair into a plain payload or a typed
// error:
//
//	res, err := eng.EvaluateOrThrow(ctx, src,
//	    engine.WithContext(value.Named("add", addAdapter)))
//	var rf *engine.RuntimeFailure
//	if errors.As(err, &rf) {
//	    // rf.Value is the thrown script value, structure intact
//	}
//
// A *RuntimeFailure means the script explicitly raised; a *ResultShapeError
// means the evaluator produced a malformed outcome. The two are distinct
// types so logs and tests never conflate "the script threw" with "the
// evaluator misbehaved".
//
// # Concurrency
//
// One call to Evaluate is one cooperative evaluation; the Engine itself is
// stateless between calls and safe for concurrent use. Context values and
// adapters may be shared across concurrent evaluations as long as any mutable
// state an adapter closes over is synchronized by the host.
package engine
