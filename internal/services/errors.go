package services

import (
	"fmt"
	"strings"
)

// ValidationError reports required fields missing from a request.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

func NewMissingFieldsError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// ReferenceNotFoundError reports referenced ids that do not exist,
// listing every invalid id in the batch.
type ReferenceNotFoundError struct {
	Entity string
	IDs    []uint
}

func (e *ReferenceNotFoundError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("%s with ID %s does not exist", e.Entity, strings.Join(ids, ", "))
}

// CapacityExceededError reports a user already at the active-task limit.
type CapacityExceededError struct {
	UserID uint
	Limit  int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("user with ID %d already has %d active tasks", e.UserID, e.Limit)
}

// UniqueConstraintError reports a duplicate value for a unique column.
type UniqueConstraintError struct {
	Field string
	Value string
}

func (e *UniqueConstraintError) Error() string {
	return fmt.Sprintf("%s must be unique: %q is already taken", e.Field, e.Value)
}

// NotFoundError reports an entity id that does not exist.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Entity, e.ID)
}

// DataAccessError wraps an underlying store failure.
type DataAccessError struct {
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access error: %v", e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

func NewDataAccessError(err error) *DataAccessError {
	return &DataAccessError{Err: err}
}
