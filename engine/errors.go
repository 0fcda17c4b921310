package engine

import (
	"fmt"

	"github.com/shallot-lang/shallot/value"
)

// RuntimeFailure reports that the script explicitly raised. Value carries the
// thrown payload exactly as the script produced it; inspect its structure to
// diagnose the failure.
type RuntimeFailure struct {
	Value value.Value
}

func (e *RuntimeFailure) Error() string {
	return fmt.Sprintf("script raised: %s", e.Value.Repr())
}

// ResultShapeError reports a terminal value that violated the tagged-pair
// outcome convention. This is a structural contract violation by the
// evaluator, not a script error.
type ResultShapeError struct {
	Got value.Value
}

func (e *ResultShapeError) Error() string {
	return fmt.Sprintf("malformed evaluation outcome: expected (boolean, payload) pair, got %s", e.Got.Kind())
}
