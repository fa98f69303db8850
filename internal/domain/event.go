package domain

import (
	"time"

	"github.com/google/uuid"
)

type ChangeAction string

const (
	ChangeCreated ChangeAction = "created"
	ChangeUpdated ChangeAction = "updated"
	ChangeDeleted ChangeAction = "deleted"
)

// ChangeEvent is emitted after a mutation has been persisted.
type ChangeEvent struct {
	Entity string       `json:"entity"`
	Action ChangeAction `json:"action"`
	ID     uuid.UUID    `json:"id"`
	At     time.Time    `json:"at"`
}
