package dtos

// ----------------------
// Requests
// ----------------------

type CreateTerritoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Region      string `json:"region" validate:"max=200"`
}

type UpdateTerritoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Region      *string `json:"region" validate:"omitempty,max=200"`
}

type AddStreetRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	StreetType string `json:"street_type" validate:"max=50"`
}

type AddPropertyRequest struct {
	Number       string `json:"number" validate:"required,min=1,max=50"`
	PropertyType string `json:"property_type" validate:"required"`
	Notes        string `json:"notes" validate:"max=2000"`
}

// ----------------------
// Responses
// ----------------------

// TerritoryProgressResponse is the coverage summary for one territory:
// how many of its properties have at least one recorded visit.
type TerritoryProgressResponse struct {
	TerritoryID       string            `json:"territory_id"`
	TotalProperties   int64             `json:"total_properties"`
	VisitedProperties int64             `json:"visited_properties"`
	Percentage        int               `json:"percentage"`
	LastVisitDate     *string           `json:"last_visit_date"`
	PerOutcome        []OutcomeCountDTO `json:"per_outcome"`
}
