package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// DuplicateBookingError signals the student already holds a confirmed seat
// on the schedule.
type DuplicateBookingError struct {
	ScheduleID string
	StudentID  string
}

func (e DuplicateBookingError) Error() string {
	return "student already has a confirmed seat on this trip"
}

// CapacityError signals the bus assigned to the schedule is fully booked.
type CapacityError struct {
	ScheduleID string
	Capacity   int
}

func (e CapacityError) Error() string {
	return fmt.Sprintf("bus is full (capacity %d)", e.Capacity)
}

// AuthError is deliberately generic: callers must not be able to tell a
// missing identifier from a wrong password.
type AuthError struct {
	Err error
}

func (e AuthError) Error() string { return "invalid credentials" }

func (e AuthError) Unwrap() error { return e.Err }

// PersistenceError tags a failed gateway write with the subsystem it hit so
// the client notification can name it.
type PersistenceError struct {
	Subsystem string
	Err       error
}

func (e PersistenceError) Error() string {
	if e.Subsystem == "" {
		return "persistence failure"
	}
	return fmt.Sprintf("%s: persistence failure", e.Subsystem)
}

func (e PersistenceError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsDuplicateBooking(err error) bool {
	var target DuplicateBookingError
	return errors.As(err, &target)
}

func IsCapacity(err error) bool {
	var target CapacityError
	return errors.As(err, &target)
}

func IsAuth(err error) bool {
	var target AuthError
	return errors.As(err, &target)
}

func IsPersistence(err error) bool {
	var target PersistenceError
	return errors.As(err, &target)
}
