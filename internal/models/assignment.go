package models

import (
	"time"

	"github.com/google/uuid"
)

type AssignmentStatusType string

const (
	AssignmentStatusActive    AssignmentStatusType = "ACTIVE"
	AssignmentStatusCompleted AssignmentStatusType = "COMPLETED"
)

type AssignmentOutcomeType string

const (
	AssignmentOutcomeComplete AssignmentOutcomeType = "COMPLETE"
	AssignmentOutcomePartial  AssignmentOutcomeType = "PARTIAL"
	AssignmentOutcomeProblems AssignmentOutcomeType = "PROBLEMS"
)

// ValidAssignmentOutcome reports whether o is a known completion outcome.
func ValidAssignmentOutcome(o AssignmentOutcomeType) bool {
	switch o {
	case AssignmentOutcomeComplete, AssignmentOutcomePartial, AssignmentOutcomeProblems:
		return true
	}
	return false
}

// Assignment binds a territory to a responsible person for a bounded time
// window, tied to an outing. Status only ever moves ACTIVE -> COMPLETED;
// at most one ACTIVE assignment may exist per territory at any time.
type Assignment struct {
	Versioned

	ID            uuid.UUID              `json:"id"`
	TerritoryID   uuid.UUID              `json:"territory_id"`
	OutingID      uuid.UUID              `json:"outing_id"`
	Responsible   string                 `json:"responsible"`
	AssignedDate  time.Time              `json:"assigned_date"`
	DueDate       time.Time              `json:"due_date"`
	Status        AssignmentStatusType   `json:"status"`
	CompletedDate *time.Time             `json:"completed_date,omitempty"`
	Outcome       *AssignmentOutcomeType `json:"outcome,omitempty"`
	Notes         string                 `json:"notes,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

func (a *Assignment) GetID() string { return a.ID.String() }

// Covers reports whether the assignment window includes the given date
// (date-only comparison).
func (a *Assignment) Covers(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	return !a.AssignedDate.After(d) && !a.DueDate.Before(d)
}

// OverdueAt reports whether an active assignment is past its expected return
// date. This is a read-time classification, never persisted.
func (a *Assignment) OverdueAt(today time.Time) bool {
	return a.Status == AssignmentStatusActive && a.DueDate.Before(today.Truncate(24*time.Hour))
}
