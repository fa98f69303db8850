package domain

import "github.com/google/uuid"

// Entity is anything managed through the generic CRUD pipeline.
// Identity is assigned once by the entity constructor and never changes.
type Entity interface {
	GetID() uuid.UUID
}

// EntityBase carries the identity shared by every entity.
type EntityBase struct {
	ID uuid.UUID `json:"id"`
}

func newEntityBase() EntityBase {
	return EntityBase{ID: uuid.New()}
}

func (e EntityBase) GetID() uuid.UUID {
	return e.ID
}
