// Package numerr defines the recoverable error categories of the engine.
package numerr

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrRange = errors.New("out of range")
	ErrSort  = errors.New("invalid order")
	ErrSize  = errors.New("invalid size")
)

// Error carries a kind and the place where it was raised.
type Error struct {
	Kind  error
	Where string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, e.Where)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Range reports an argument outside the domain of a function.
func Range(where string) error {
	return &Error{Kind: ErrRange, Where: where}
}

// Sort reports input that is not ordered as required.
func Sort(where string) error {
	return &Error{Kind: ErrSort, Where: where}
}

// Size reports input of the wrong length.
func Size(where string) error {
	return &Error{Kind: ErrSize, Where: where}
}
