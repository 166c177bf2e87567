package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Rafium-MS/territorio-app/internal/dtos"
	"github.com/Rafium-MS/territorio-app/internal/middleware"
	"github.com/Rafium-MS/territorio-app/internal/models"
	"github.com/Rafium-MS/territorio-app/internal/repositories"
	"github.com/Rafium-MS/territorio-app/internal/services"
	"github.com/Rafium-MS/territorio-app/internal/utils"
)

type VisitController struct {
	visitService *services.VisitService
}

func NewVisitController(visitService *services.VisitService) *VisitController {
	return &VisitController{visitService: visitService}
}

// POST /api/v1/visits
func (c *VisitController) RecordHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.RecordVisitRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	// Default the recorder to the authenticated user's name.
	if req.RecordedBy == "" {
		req.RecordedBy = middleware.UserNameFromContext(r.Context())
	}

	visit, err := c.visitService.Record(r.Context(), req)
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, visit)
}

// GET /api/v1/visits?territory_id=&street_id=&outcome=&recorded_by=&from=&to=
func (c *VisitController) ListHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repositories.VisitFilter{
		Outcome:         models.VisitOutcomeType(strings.ToUpper(q.Get("outcome"))),
		ResponsibleLike: q.Get("recorded_by"),
	}
	if raw := q.Get("territory_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid territory_id", nil)
			return
		}
		filter.TerritoryID = &id
	}
	if raw := q.Get("street_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid street_id", nil)
			return
		}
		filter.StreetID = &id
	}
	var err error
	if filter.From, err = optionalDate(q.Get("from")); err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	if filter.To, err = optionalDate(q.Get("to")); err != nil {
		utils.RespondServiceError(w, err)
		return
	}

	list, err := c.visitService.List(r.Context(), filter)
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GET /api/v1/visits/property/{propertyId} – latest record for the property
func (c *VisitController) LatestForPropertyHandler(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := pathUUID(w, r, "propertyId")
	if !ok {
		return
	}
	visit, err := c.visitService.LatestForProperty(r.Context(), propertyID)
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, visit)
}

// GET /api/v1/visits/stats
func (c *VisitController) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := c.visitService.DashboardStats(r.Context(), today())
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, stats)
}

func optionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := utils.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
