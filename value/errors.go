package value

import "fmt"

// TypeMismatchError reports an accessor invoked on the wrong variant.
type TypeMismatchError struct {
	Want Kind
	Got  Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: want %s, got %s", e.Want, e.Got)
}

// NameNotFoundError reports a tuple field lookup for a name no Named element
// carries.
type NameNotFoundError struct {
	Name string
}

func (e *NameNotFoundError) Error() string {
	return fmt.Sprintf("name not found: %q", e.Name)
}

// AmbiguousNameError reports a tuple field lookup for a name carried by more
// than one Named element. Name-based lookup is only defined when names are
// unique within the tuple.
type AmbiguousNameError struct {
	Name  string
	Count int
}

func (e *AmbiguousNameError) Error() string {
	return fmt.Sprintf("ambiguous name: %q matches %d elements", e.Name, e.Count)
}

func mismatch(want, got Kind) error {
	return &TypeMismatchError{Want: want, Got: got}
}
