package models

import (
	"time"

	"github.com/google/uuid"
)

type VisitOutcomeType string

const (
	VisitOutcomePositive VisitOutcomeType = "POSITIVE"
	VisitOutcomeAbsent   VisitOutcomeType = "ABSENT"
	VisitOutcomeRefused  VisitOutcomeType = "REFUSED"
	VisitOutcomeOther    VisitOutcomeType = "OTHER"
)

// ValidVisitOutcome reports whether o is a known visit outcome.
func ValidVisitOutcome(o VisitOutcomeType) bool {
	switch o {
	case VisitOutcomePositive, VisitOutcomeAbsent, VisitOutcomeRefused, VisitOutcomeOther:
		return true
	}
	return false
}

// VisitRecord ("atendimento") is the outcome of visiting one property on one
// date. Records accumulate as history and are never implicitly deleted; the
// most recent record is the property's current state.
type VisitRecord struct {
	ID          uuid.UUID        `json:"id"`
	PropertyID  uuid.UUID        `json:"property_id"`
	StreetID    uuid.UUID        `json:"street_id"`
	TerritoryID uuid.UUID        `json:"territory_id"`
	VisitDate   time.Time        `json:"visit_date"`
	Outcome     VisitOutcomeType `json:"outcome"`
	Notes       string           `json:"notes,omitempty"`
	RecordedBy  string           `json:"recorded_by,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

func (v *VisitRecord) GetID() string { return v.ID.String() }
