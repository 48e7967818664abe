package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is.
var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrVersionIsInvalid  = errors.New("version is invalid")

	ErrPrecondition        = errors.New("precondition failed")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAuthorization       = errors.New("access denied")
	ErrExternalService     = errors.New("external service failed")
	ErrExpiredState        = errors.New("state expired")
)

// sanitize flattens multi-line values so error messages stay on one log line.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ObjectNotFoundError indicates that a requested object does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without a cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a provided value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without a cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates that a value lies outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without a cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s is %s, min value is %v, max value is %v (cause: %s)",
			ErrValueIsInvalid, sanitize(e.Value), e.ParamName, e.Min, e.Max, e.Cause)
	}
	return fmt.Sprintf("%s: %s is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, e.Min, e.Max)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError indicates that a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without a cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError indicates that an aggregate version check failed.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError wrapping an underlying cause.
func NewVersionIsInvalidError(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

// NewVersionIsInvalidErrorWithCause creates a VersionIsInvalidError without a cause.
func NewVersionIsInvalidErrorWithCause(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrVersionIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// PreconditionError indicates that a business precondition blocks the operation.
// The message names the unmet condition so the caller can act on it.
type PreconditionError struct {
	ParamName string
	Cause     error
}

// NewPreconditionError creates a PreconditionError without a cause.
func NewPreconditionError(paramName string) *PreconditionError {
	return &PreconditionError{ParamName: paramName}
}

// NewPreconditionErrorWithCause creates a PreconditionError wrapping an underlying cause.
func NewPreconditionErrorWithCause(paramName string, cause error) *PreconditionError {
	return &PreconditionError{ParamName: paramName, Cause: cause}
}

func (e *PreconditionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrPrecondition, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrPrecondition, e.ParamName)
}

func (e *PreconditionError) Unwrap() error {
	return ErrPrecondition
}

// InsufficientBalanceError indicates that an account balance cannot cover a charge.
// Required and Current are in yen so the caller can show the exact shortfall.
type InsufficientBalanceError struct {
	Required int64
	Current  int64
}

// NewInsufficientBalanceError creates an InsufficientBalanceError with the amounts involved.
func NewInsufficientBalanceError(required, current int64) *InsufficientBalanceError {
	return &InsufficientBalanceError{Required: required, Current: current}
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("%s: required %d, current %d", ErrInsufficientBalance, e.Required, e.Current)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}

// AuthorizationError indicates an attempt to act on another owner's object.
type AuthorizationError struct {
	ParamName string
	ID        any
}

// NewAuthorizationError creates an AuthorizationError for the named object.
func NewAuthorizationError(paramName string, id any) *AuthorizationError {
	return &AuthorizationError{ParamName: paramName, ID: id}
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrAuthorization, e.ParamName, sanitize(e.ID))
}

func (e *AuthorizationError) Unwrap() error {
	return ErrAuthorization
}

// ExternalServiceError indicates a failure in an upstream dependency.
type ExternalServiceError struct {
	Service string
	Cause   error
}

// NewExternalServiceError creates an ExternalServiceError naming the failed service.
func NewExternalServiceError(service string, cause error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Cause: cause}
}

func (e *ExternalServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrExternalService, e.Service, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrExternalService, e.Service)
}

func (e *ExternalServiceError) Unwrap() error {
	return ErrExternalService
}

// ExpiredStateError indicates an operation blocked by an expired state,
// such as a storage period that ran past its unpaid grace window.
type ExpiredStateError struct {
	ParamName string
	Cause     error
}

// NewExpiredStateError creates an ExpiredStateError without a cause.
func NewExpiredStateError(paramName string) *ExpiredStateError {
	return &ExpiredStateError{ParamName: paramName}
}

// NewExpiredStateErrorWithCause creates an ExpiredStateError wrapping an underlying cause.
func NewExpiredStateErrorWithCause(paramName string, cause error) *ExpiredStateError {
	return &ExpiredStateError{ParamName: paramName, Cause: cause}
}

func (e *ExpiredStateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrExpiredState, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrExpiredState, e.ParamName)
}

func (e *ExpiredStateError) Unwrap() error {
	return ErrExpiredState
}
