// Package hostcall wraps host Go functions so shallot script code can invoke
// them. An adapter declares its parameters up front, binds incoming script
// arguments against that declaration, runs the host code, and carries the
// result or failure back across the boundary as a value.
//
// Two flavors exist. WrapFunction adapts a synchronous function that runs to
// completion atomically from the evaluator's viewpoint. WrapCoroutine adapts
// host work that should run on its own goroutine; the calling evaluation
// suspends until the task resolves, and cancelling the evaluation's context
// cancels the task with it.
//
//	add := hostcall.WrapFunction(
//	    hostcall.Params(hostcall.Param("a"), hostcall.Param("b")),
//	    "add",
//	    func(ctx context.Context, self, args value.Value) (value.Value, error) {
//	        a, _ := args.Field("a")
//	        b, _ := args.Field("b")
//	        x, _ := a.AsInt()
//	        y, _ := b.AsInt()
//	        return value.Int(x + y), nil
//	    })
//
// Errors returned (or panics raised) by host code never escape into the
// evaluator as Go errors; the evaluator converts them into thrown script
// values so the script's own error path decides how to react.
package hostcall
