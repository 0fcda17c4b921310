// Package value defines the structured value representation shared between a
// Go host and the embedded shallot evaluator.
//
// A Value is a tagged union covering every shape the evaluator can produce or
// consume: scalars (null, undefined, bool, int, float, string, bytes), ranges,
// pairs, named bindings, tuples, and opaque callables. Values are immutable
// once constructed; every operation that would change a Value returns a new
// one instead.
//
// Predicates (IsInt, IsPair, ...) are total and never fail. Accessors (AsInt,
// Key, Field, ...) are partial: calling one on the wrong variant returns a
// *TypeMismatchError rather than a zero value, so conversion bugs surface at
// the call site.
//
//	v := value.Pair(value.String("ok"), value.Int(42))
//	k, _ := v.Key()     // String("ok")
//	p, _ := v.Value()   // Int(42)
//	n, _ := p.AsInt()   // 42
package value
