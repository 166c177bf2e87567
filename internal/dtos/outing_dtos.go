package dtos

import (
	"github.com/Rafium-MS/territorio-app/internal/models"
)

// ----------------------
// Requests
// ----------------------

type CreateOutingRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Weekday   string `json:"weekday" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	Leader    string `json:"leader" validate:"max=200"`
}

type UpdateOutingRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=200"`
	Weekday   *string `json:"weekday"`
	StartTime *string `json:"start_time"`
	Leader    *string `json:"leader" validate:"omitempty,max=200"`
}

// ----------------------
// Responses
// ----------------------

// NextOccurrenceDTO is one upcoming calendar date of a recurring outing.
type NextOccurrenceDTO struct {
	Outing models.Outing `json:"outing"`
	Date   string        `json:"date"` // YYYY-MM-DD
}

// CalendarDayDTO lists the outings scheduled on one day of a month.
type CalendarDayDTO struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Outings []models.Outing `json:"outings"`
}

type MonthCalendarResponse struct {
	Year  int              `json:"year"`
	Month int              `json:"month"`
	Days  []CalendarDayDTO `json:"days"`
}
