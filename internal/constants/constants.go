package constants

import "time"

// Assignment business logic.
const (
	// DefaultUpcomingLimit caps the "next assignments" listing.
	DefaultUpcomingLimit = 5

	// DashboardOutingLimit caps the per-outing breakdown on the dashboard.
	DashboardOutingLimit = 5

	// VisitStatsWindowDays is the look-back window of the per-day visit chart feed.
	VisitStatsWindowDays = 30

	// NextOccurrencesLimit caps the computed upcoming-outings listing.
	NextOccurrencesLimit = 5
)

// Overdue digest scheduling.
const (
	OverdueDigestCronSpec = "0 6 * * *" // 06:00 UTC daily
	OverdueDigestTimeout  = 1 * time.Minute
)

// CORS.
const CORSAllowedOriginLocalhost = "http://localhost:*"
