package services

import (
	"errors"
	"fmt"

	"roomledger/internal/repositories"
)

// Error classes. Every error returned by a service matches exactly one of
// these with errors.Is, or is a store failure.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

var (
	ErrRoomNotFound    = &classifiedError{msg: "room not found", class: ErrNotFound}
	ErrTenantNotFound  = &classifiedError{msg: "tenant not found", class: ErrNotFound}
	ErrDuplicateRoom   = &classifiedError{msg: "a room with this name already exists", class: ErrConflict}
	ErrDuplicateTenant = &classifiedError{msg: "a tenant with this aadhar number already exists", class: ErrConflict}
	ErrRoomOccupied    = &classifiedError{msg: "room still has tenants; empty the room before deleting it", class: ErrConflict}
)

type classifiedError struct {
	msg   string
	class error
}

func (e *classifiedError) Error() string { return e.msg }
func (e *classifiedError) Unwrap() error { return e.class }

// ValidationError names the request field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Message: err.Error()}
}

func invalidf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// mapTenantWriteError translates constraint violations raised by tenant
// inserts and updates.
func mapTenantWriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrForeignKeyViolation):
		return ErrRoomNotFound
	case errors.Is(err, repositories.ErrUniqueViolation):
		return ErrDuplicateTenant
	case errors.Is(err, repositories.ErrNotFound):
		return ErrTenantNotFound
	}
	return err
}

func mapRoomError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrRoomNotFound
	}
	return err
}
