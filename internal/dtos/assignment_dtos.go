package dtos

// ----------------------
// Requests
// ----------------------

type CreateAssignmentRequest struct {
	TerritoryID  string `json:"territory_id" validate:"required,uuid4"`
	OutingID     string `json:"outing_id" validate:"required,uuid4"`
	Responsible  string `json:"responsible" validate:"required,min=1,max=200"`
	AssignedDate string `json:"assigned_date" validate:"required"` // YYYY-MM-DD
	DueDate      string `json:"due_date" validate:"required"`      // YYYY-MM-DD
	Notes        string `json:"notes" validate:"max=2000"`
}

type CompleteAssignmentRequest struct {
	CompletedDate string `json:"completed_date"` // YYYY-MM-DD, defaults to today
	Outcome       string `json:"outcome"`        // optional; omitted means no outcome recorded
	Notes         string `json:"notes" validate:"max=2000"`
}

// UpdateAssignmentRequest edits the mutable fields of an assignment without
// touching its lifecycle. Status changes go through the completion endpoint.
type UpdateAssignmentRequest struct {
	Responsible *string `json:"responsible" validate:"omitempty,min=1,max=200"`
	DueDate     *string `json:"due_date"` // YYYY-MM-DD
	Notes       *string `json:"notes" validate:"omitempty,max=2000"`
}

// ----------------------
// Responses
// ----------------------

type TerritorySummaryDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type OutingSummaryDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Weekday string `json:"weekday"`
}

// AssignmentDTO is the wire shape of an assignment. DisplayStatus folds in
// the derived OVERDUE state, which is never stored.
type AssignmentDTO struct {
	ID            string               `json:"id"`
	Territory     *TerritorySummaryDTO `json:"territory,omitempty"`
	TerritoryID   string               `json:"territory_id"`
	Outing        *OutingSummaryDTO    `json:"outing,omitempty"`
	OutingID      string               `json:"outing_id"`
	Responsible   string               `json:"responsible"`
	AssignedDate  string               `json:"assigned_date"`
	DueDate       string               `json:"due_date"`
	Status        string               `json:"status"`
	DisplayStatus string               `json:"display_status"`
	CompletedDate *string              `json:"completed_date,omitempty"`
	Outcome       *string              `json:"outcome,omitempty"`
	Notes         string               `json:"notes,omitempty"`
	RowVersion    int64                `json:"row_version"`
}

type OutingAssignmentCountDTO struct {
	OutingID string `json:"outing_id"`
	Name     string `json:"name,omitempty"`
	Count    int64  `json:"count"`
}

type OutcomeCountDTO struct {
	Outcome string `json:"outcome"`
	Count   int64  `json:"count"`
}

// DashboardStatsResponse aggregates assignment activity for the dashboard.
type DashboardStatsResponse struct {
	ActiveCount       int64                      `json:"active_count"`
	CompletedCount    int64                      `json:"completed_count"`
	OverdueCount      int64                      `json:"overdue_count"`
	ActivePerOuting   []OutingAssignmentCountDTO `json:"active_per_outing"`
	CompletedOutcomes []OutcomeCountDTO          `json:"completed_outcomes"`
}
