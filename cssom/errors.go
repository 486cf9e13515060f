package cssom

import (
	"errors"
	"fmt"
)

// ErrUnsupportedSelector flags selector syntax we do not implement, e.g.
// child combinators or attribute selectors.
var ErrUnsupportedSelector = errors.New("unsupported selector")

// ErrInvalidSelector flags an empty or malformed selector prelude.
var ErrInvalidSelector = errors.New("invalid selector")

// UnexpectedTokenError is returned for tokens outside the recognized grammar.
type UnexpectedTokenError struct {
	Token string
}

func (e UnexpectedTokenError) Error() string {
	return fmt.Sprintf("unexpected token %q", e.Token)
}

// UnsupportedPropertyError is returned by consumers which pre-validate
// property names. The parser itself accepts any name.
type UnsupportedPropertyError struct {
	Name string
}

func (e UnsupportedPropertyError) Error() string {
	return fmt.Sprintf("unsupported property %q", e.Name)
}

// InvalidPropertyValueError is returned when the values of a declaration
// cannot be interpreted for a property.
type InvalidPropertyValueError struct {
	Name string
}

func (e InvalidPropertyValueError) Error() string {
	return fmt.Sprintf("invalid value for property %q", e.Name)
}
