package models

import (
	"time"

	"github.com/google/uuid"
)

// Outing ("saída de campo") is a recurring scheduled group field-service
// activity. It is referenced by assignments, never owned by them.
type Outing struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Weekday   string    `json:"weekday"`    // lowercase English day name
	StartTime string    `json:"start_time"` // "HH:MM", 24h
	Leader    string    `json:"leader,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Outing) GetID() string { return o.ID.String() }
