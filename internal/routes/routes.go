package routes

const (
	Health = "/health"

	AuthLogin    = "/api/v1/auth/login"
	AuthRegister = "/api/v1/auth/register"

	Territories         = "/api/v1/territories"
	TerritoryByID       = "/api/v1/territories/{id}"
	TerritoryStreets    = "/api/v1/territories/{id}/streets"
	TerritoryProperties = "/api/v1/territories/{id}/streets/{streetId}/properties"
	TerritoryProgress   = "/api/v1/territories/{id}/progress"

	Outings        = "/api/v1/outings"
	OutingsNext    = "/api/v1/outings/next"
	OutingCalendar = "/api/v1/outings/calendar/{year}/{month}"
	OutingByID     = "/api/v1/outings/{id}"

	Assignments          = "/api/v1/assignments"
	AssignmentsActive    = "/api/v1/assignments/active"
	AssignmentsToday     = "/api/v1/assignments/today"
	AssignmentsUpcoming  = "/api/v1/assignments/upcoming"
	AssignmentsStats     = "/api/v1/assignments/stats"
	AssignmentsTerritory = "/api/v1/assignments/territory/{territoryId}"
	AssignmentByID       = "/api/v1/assignments/{id}"
	AssignmentComplete   = "/api/v1/assignments/{id}/complete"

	Visits         = "/api/v1/visits"
	VisitsStats    = "/api/v1/visits/stats"
	VisitsProperty = "/api/v1/visits/property/{propertyId}"
)
