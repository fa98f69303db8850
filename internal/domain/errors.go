package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// NotFoundError is returned by repositories for ids they do not hold.
type NotFoundError struct {
	Entity string
	ID     uuid.UUID
}

func (e NotFoundError) Error() string {
	switch {
	case e.Entity == "":
		return "not found"
	case e.ID == uuid.Nil:
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e NotFoundError) Is(target error) bool {
	switch target.(type) {
	case NotFoundError, *NotFoundError:
		return true
	}
	return false
}

// DuplicateError is returned when an insert reuses an id already stored.
type DuplicateError struct {
	Entity string
	ID     uuid.UUID
}

func (e DuplicateError) Error() string {
	return fmt.Sprintf("%s %s already exists", e.Entity, e.ID)
}

func (e DuplicateError) Is(target error) bool {
	switch target.(type) {
	case DuplicateError, *DuplicateError:
		return true
	}
	return false
}

var (
	ErrNotFound  = NotFoundError{}
	ErrDuplicate = DuplicateError{}
)
