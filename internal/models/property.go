package models

import (
	"time"

	"github.com/google/uuid"
)

type PropertyTypeName string

const (
	PropertyTypeResidential PropertyTypeName = "RESIDENTIAL"
	PropertyTypeCommercial  PropertyTypeName = "COMMERCIAL"
	PropertyTypeBuilding    PropertyTypeName = "BUILDING"
	PropertyTypeVillage     PropertyTypeName = "VILLAGE"
)

// ValidPropertyType reports whether t is one of the known property types.
func ValidPropertyType(t PropertyTypeName) bool {
	switch t {
	case PropertyTypeResidential, PropertyTypeCommercial, PropertyTypeBuilding, PropertyTypeVillage:
		return true
	}
	return false
}

// Property is a visitable address on a street. Number is the street-relative
// label ("123", "125-A"), not necessarily numeric.
type Property struct {
	ID           uuid.UUID        `json:"id"`
	StreetID     uuid.UUID        `json:"street_id"`
	Number       string           `json:"number"`
	PropertyType PropertyTypeName `json:"property_type"`
	Notes        string           `json:"notes,omitempty"`
	Position     int              `json:"position"`
	CreatedAt    time.Time        `json:"created_at"`
}

func (p *Property) GetID() string { return p.ID.String() }
