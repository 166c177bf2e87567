package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Rafium-MS/territorio-app/internal/constants"
	"github.com/Rafium-MS/territorio-app/internal/dtos"
	"github.com/Rafium-MS/territorio-app/internal/services"
	"github.com/Rafium-MS/territorio-app/internal/utils"
)

type OutingController struct {
	outingService *services.OutingService
}

func NewOutingController(outingService *services.OutingService) *OutingController {
	return &OutingController{outingService: outingService}
}

// POST /api/v1/outings
func (c *OutingController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateOutingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	outing, err := c.outingService.Create(r.Context(), req)
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, outing)
}

// GET /api/v1/outings
func (c *OutingController) ListHandler(w http.ResponseWriter, r *http.Request) {
	list, err := c.outingService.List(r.Context())
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GET /api/v1/outings/{id}
func (c *OutingController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	outing, err := c.outingService.Get(r.Context(), id)
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, outing)
}

// PUT /api/v1/outings/{id}
func (c *OutingController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dtos.UpdateOutingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	outing, err := c.outingService.Update(r.Context(), id, req)
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, outing)
}

// DELETE /api/v1/outings/{id}
func (c *OutingController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := c.outingService.Delete(r.Context(), id); err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/outings/next?limit=N
func (c *OutingController) NextHandler(w http.ResponseWriter, r *http.Request) {
	limit := constants.NextOccurrencesLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid limit", nil)
			return
		}
		limit = n
	}

	occurrences, err := c.outingService.NextOccurrences(r.Context(), time.Now().UTC(), limit)
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, occurrences)
}

// GET /api/v1/outings/calendar/{year}/{month}
func (c *OutingController) CalendarHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil || year < 1 {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid year", nil)
		return
	}
	month, err := strconv.Atoi(vars["month"])
	if err != nil || month < 1 || month > 12 {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid month", nil)
		return
	}

	cal, err := c.outingService.MonthCalendar(r.Context(), year, time.Month(month))
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, cal)
}
