package models

import (
	"time"

	"github.com/google/uuid"
)

// Territory is a geographic canvassing unit subdivided into streets and
// properties. Name uniqueness is enforced at creation time only.
type Territory struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Region      string    `json:"region,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (t *Territory) GetID() string { return t.ID.String() }
