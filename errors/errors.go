// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrUndefinedAction is returned when an apply is requested without an action definition.
	ErrUndefinedAction = errors.New("action is not defined")

	// ErrArityExceeded is returned when an action is bound with more arguments than the configured maximum.
	ErrArityExceeded = errors.New("action arity exceeded")

	// ErrContinuationSpent is returned when a continuation is used after its ownership was transferred.
	ErrContinuationSpent = errors.New("continuation has already been transferred")

	// ErrUndefinedContinuation is returned when a continuation overload receives a nil continuation.
	ErrUndefinedContinuation = errors.New("continuation is not defined")

	// ErrTypeMismatch is returned when an action targets an incompatible component type.
	ErrTypeMismatch = errors.New("component type mismatch")

	// ErrForwardingLimit is returned when a parcel has been forwarded too many times.
	ErrForwardingLimit = errors.New("parcel forwarding limit reached")

	// ErrAddressNotFound is returned when a GID cannot be resolved to an address.
	ErrAddressNotFound = errors.New("address not found")

	// ErrActionNotFound is returned when a received action name is missing from the catalog.
	ErrActionNotFound = errors.New("action not found")

	// ErrActionAlreadyRegistered is returned when two definitions share a name in a catalog.
	ErrActionAlreadyRegistered = errors.New("action is already registered")

	// ErrTypeNotRegistered is returned when a Go type has no component type in the registry.
	ErrTypeNotRegistered = errors.New("component type is not registered")

	// ErrTypeAlreadyRegistered is returned when a Go type is registered twice.
	ErrTypeAlreadyRegistered = errors.New("component type is already registered")

	// ErrTransportStopped is returned when a parcel is handed to a transport that is not running.
	ErrTransportStopped = errors.New("transport is not running")

	// ErrLocalityNotFound is returned when a transport has no route to a locality.
	ErrLocalityNotFound = errors.New("locality not found")

	// ErrInboxFull is returned when a receiving inbox cannot take more parcels.
	ErrInboxFull = errors.New("inbox is full")

	// ErrInvalidArgument is returned when an action argument cannot be read as the requested type.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrRemoteDeliveryFailure is returned when the transport refuses a parcel.
	ErrRemoteDeliveryFailure = errors.New("remote delivery failed")

	// ErrInvalidParcel indicates that a parcel received from the network is malformed.
	ErrInvalidParcel = errors.New("invalid parcel")

	// ErrArgumentTypeNotRegistered is returned when an argument type is unknown to the parcel codec.
	ErrArgumentTypeNotRegistered = errors.New("argument type is not registered")

	// ErrExecutorStopped is returned when work is submitted to an executor that is not running.
	ErrExecutorStopped = errors.New("executor is not running")
)

func NewErrArityExceeded(arity, max int) error {
	return fmt.Errorf("(arity=%d, max=%d) %w", arity, max, ErrArityExceeded)
}

func NewErrActionNotFound(name string) error {
	return fmt.Errorf("(action=%s) %w", name, ErrActionNotFound)
}

func NewErrActionAlreadyRegistered(name string) error {
	return fmt.Errorf("(action=%s) %w", name, ErrActionAlreadyRegistered)
}

func NewErrAddressNotFound(gid string) error {
	return fmt.Errorf("(gid=%s) %w", gid, ErrAddressNotFound)
}

func NewErrTypeNotRegistered(typeName string) error {
	return fmt.Errorf("(type=%s) %w", typeName, ErrTypeNotRegistered)
}

func NewErrTypeAlreadyRegistered(typeName string) error {
	return fmt.Errorf("(type=%s) %w", typeName, ErrTypeAlreadyRegistered)
}

func NewErrInvalidArgument(index int, err error) error {
	return fmt.Errorf("(index=%d) %w: %w", index, ErrInvalidArgument, err)
}

func NewErrForwardingLimit(parcelID string, hops int) error {
	return fmt.Errorf("(parcel=%s, hops=%d) %w", parcelID, hops, ErrForwardingLimit)
}

func NewErrArgumentTypeNotRegistered(typeName string) error {
	return fmt.Errorf("(type=%s) %w", typeName, ErrArgumentTypeNotRegistered)
}

func NewErrLocalityNotFound(locality string) error {
	return fmt.Errorf("(locality=%s) %w", locality, ErrLocalityNotFound)
}

func NewRemoteDeliveryError(err error) error {
	return errors.Join(ErrRemoteDeliveryFailure, err)
}

func NewErrInvalidParcel(err error) error {
	return errors.Join(ErrInvalidParcel, err)
}

// TypeMismatchError reports an action bound to a target whose component type
// is neither its declared type nor derived from it.
type TypeMismatchError struct {
	Action   string
	Declared string
	Target   string
}

var _ error = (*TypeMismatchError)(nil)

func NewTypeMismatchError(action, declared, target string) *TypeMismatchError {
	return &TypeMismatchError{Action: action, Declared: declared, Target: target}
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("action=(%s) declared=(%s) target=(%s): %v", e.Action, e.Declared, e.Target, ErrTypeMismatch)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

type PanicError struct {
	err error
}

var _ error = (*PanicError)(nil)

func NewPanicError(err error) *PanicError {
	return &PanicError{err}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.err)
}

func (e *PanicError) Unwrap() error {
	return e.err
}

type InternalError struct {
	err error
}

var _ error = (*InternalError)(nil)

func NewInternalError(err error) *InternalError {
	return &InternalError{
		err: fmt.Errorf("internal error: %w", err),
	}
}

func (i *InternalError) Error() string {
	return i.err.Error()
}

func (i *InternalError) Unwrap() error {
	return i.err
}
