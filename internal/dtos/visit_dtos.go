package dtos

// ----------------------
// Requests
// ----------------------

type RecordVisitRequest struct {
	TerritoryID string `json:"territory_id" validate:"required,uuid4"`
	StreetID    string `json:"street_id" validate:"required,uuid4"`
	PropertyID  string `json:"property_id" validate:"required,uuid4"`
	VisitDate   string `json:"visit_date" validate:"required"` // YYYY-MM-DD
	Outcome     string `json:"outcome" validate:"required"`
	Notes       string `json:"notes" validate:"max=2000"`
	RecordedBy  string `json:"recorded_by" validate:"max=200"`
}

// ----------------------
// Responses
// ----------------------

type VisitsPerDayDTO struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int64  `json:"count"`
}

// VisitStatsResponse aggregates visit activity for the dashboard. PerDay
// covers a rolling window ending today.
type VisitStatsResponse struct {
	TotalVisits int64             `json:"total_visits"`
	PerOutcome  []OutcomeCountDTO `json:"per_outcome"`
	PerDay      []VisitsPerDayDTO `json:"per_day"`
}
