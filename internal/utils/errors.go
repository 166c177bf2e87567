package utils

import (
	"errors"
	"net/http"
)

/*
Sentinel errors for the territory/assignment domain.
Controllers do: if errors.Is(err, ErrXYZ) { ... }, or hand the error to
RespondServiceError below.
*/
var (
	// Not-found family (404).
	ErrTerritoryNotFound  = errors.New("territory_not_found")
	ErrStreetNotFound     = errors.New("street_not_found")
	ErrPropertyNotFound   = errors.New("property_not_found")
	ErrOutingNotFound     = errors.New("outing_not_found")
	ErrAssignmentNotFound = errors.New("assignment_not_found")
	ErrVisitNotFound      = errors.New("visit_not_found")
	ErrUserNotFound       = errors.New("user_not_found")

	// Conflict family (409).
	ErrTerritoryAlreadyAssigned = errors.New("territory_already_assigned")
	ErrTerritoryNameExists      = errors.New("territory_name_exists")
	ErrOutingInUse              = errors.New("outing_in_use")
	ErrEmailExists              = errors.New("email_exists")

	// Lifecycle violations (409, wrong_status).
	ErrAssignmentAlreadyCompleted = errors.New("assignment_already_completed")
	ErrStatusReversal             = errors.New("status_reversal_not_allowed")

	// Validation (400).
	ErrMissingRequiredField = errors.New("missing_required_field")
	ErrInvalidEnumValue     = errors.New("invalid_enum_value")
	ErrInvalidDate          = errors.New("invalid_date")
	ErrInvalidDateRange     = errors.New("invalid_date_range")

	// Auth (401).
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// Concurrency conflicts surfaced by version-checked updates.
	ErrRowVersionConflict = errors.New("row_version_conflict")
	ErrNoRowsUpdated      = errors.New("no_rows_updated")
)

var notFoundErrs = []error{
	ErrTerritoryNotFound, ErrStreetNotFound, ErrPropertyNotFound,
	ErrOutingNotFound, ErrAssignmentNotFound, ErrVisitNotFound, ErrUserNotFound,
}

var conflictErrs = []error{
	ErrTerritoryAlreadyAssigned, ErrTerritoryNameExists, ErrOutingInUse,
	ErrEmailExists, ErrRowVersionConflict,
}

var validationErrs = []error{
	ErrMissingRequiredField, ErrInvalidEnumValue, ErrInvalidDate, ErrInvalidDateRange,
}

// RespondServiceError maps a service-layer error onto the HTTP surface.
// Anything unrecognized is treated as an internal failure.
func RespondServiceError(w http.ResponseWriter, err error) {
	for _, e := range notFoundErrs {
		if errors.Is(err, e) {
			RespondErrorWithCode(w, http.StatusNotFound, ErrCodeNotFound, err.Error(), nil)
			return
		}
	}
	for _, e := range conflictErrs {
		if errors.Is(err, e) {
			RespondErrorWithCode(w, http.StatusConflict, ErrCodeConflict, err.Error(), nil)
			return
		}
	}
	if errors.Is(err, ErrAssignmentAlreadyCompleted) || errors.Is(err, ErrStatusReversal) {
		RespondErrorWithCode(w, http.StatusConflict, ErrCodeWrongStatus, err.Error(), nil)
		return
	}
	for _, e := range validationErrs {
		if errors.Is(err, e) {
			RespondErrorWithCode(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
			return
		}
	}
	if errors.Is(err, ErrInvalidCredentials) {
		RespondErrorWithCode(w, http.StatusUnauthorized, ErrCodeUnauthorized, err.Error(), nil)
		return
	}
	RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
}
