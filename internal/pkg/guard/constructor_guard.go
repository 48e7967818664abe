// Package guard provides the ConstructorGuard defensive-construction pattern.
// Embedding a ConstructorGuard in a struct makes zero-value instances
// distinguishable from instances created through their designated constructor,
// so domain objects can reject improperly constructed values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guarded object
// was not constructed properly and no specific error was supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks whether its enclosing object went through a constructor.
// The zero value fails validation; NewConstructorGuard produces a passing guard.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking an object as properly constructed.
// Call it inside the constructor of the guarded object.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was created through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
