package models

import (
	"time"

	"github.com/google/uuid"
)

// Street is a named stretch of a territory holding an ordered list of
// properties. Deleting the territory cascades here.
type Street struct {
	ID          uuid.UUID `json:"id"`
	TerritoryID uuid.UUID `json:"territory_id"`
	Name        string    `json:"name"`
	StreetType  string    `json:"street_type,omitempty"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s *Street) GetID() string { return s.ID.String() }
