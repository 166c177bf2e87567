package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Rafium-MS/territorio-app/internal/dtos"
	"github.com/Rafium-MS/territorio-app/internal/models"
	"github.com/Rafium-MS/territorio-app/internal/repositories"
	"github.com/Rafium-MS/territorio-app/internal/services"
	"github.com/Rafium-MS/territorio-app/internal/utils"
)

type AssignmentController struct {
	assignmentService *services.AssignmentService
}

func NewAssignmentController(assignmentService *services.AssignmentService) *AssignmentController {
	return &AssignmentController{assignmentService: assignmentService}
}

func today() time.Time {
	return utils.DateOnly(time.Now().UTC())
}

// POST /api/v1/assignments
func (c *AssignmentController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateAssignmentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	dto, err := c.assignmentService.Create(r.Context(), req, today())
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto)
}

// GET /api/v1/assignments?status=&outing_id=&responsible=
func (c *AssignmentController) ListHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repositories.AssignmentFilter{
		ResponsibleLike: q.Get("responsible"),
	}
	switch status := strings.ToUpper(q.Get("status")); status {
	case "", "ALL":
	case string(models.AssignmentStatusActive), string(models.AssignmentStatusCompleted):
		filter.Status = models.AssignmentStatusType(status)
	default:
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid status", nil)
		return
	}
	if raw := q.Get("outing_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid outing_id", nil)
			return
		}
		filter.OutingID = &id
	}

	list, err := c.assignmentService.List(r.Context(), filter, today())
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GET /api/v1/assignments/active – shorthand for ?status=ACTIVE
func (c *AssignmentController) ActiveListHandler(w http.ResponseWriter, r *http.Request) {
	list, err := c.assignmentService.List(r.Context(), repositories.AssignmentFilter{
		Status: models.AssignmentStatusActive,
	}, today())
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GET /api/v1/assignments/{id}
func (c *AssignmentController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	dto, err := c.assignmentService.Get(r.Context(), id, today())
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto)
}

// PUT /api/v1/assignments/{id}
func (c *AssignmentController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dtos.UpdateAssignmentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	dto, err := c.assignmentService.Update(r.Context(), id, req, today())
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto)
}

// PUT /api/v1/assignments/{id}/complete
func (c *AssignmentController) CompleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dtos.CompleteAssignmentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	dto, err := c.assignmentService.Complete(r.Context(), id, req, today())
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto)
}

// DELETE /api/v1/assignments/{id} (admin only)
func (c *AssignmentController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := c.assignmentService.Delete(r.Context(), id); err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/assignments/territory/{territoryId} – the territory's current assignment
func (c *AssignmentController) ActiveForTerritoryHandler(w http.ResponseWriter, r *http.Request) {
	territoryID, ok := pathUUID(w, r, "territoryId")
	if !ok {
		return
	}
	dto, err := c.assignmentService.ActiveForTerritory(r.Context(), territoryID, today())
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto)
}

// GET /api/v1/assignments/today?date=YYYY-MM-DD&outing_id=...
// Defaults to the current date when no date is given.
func (c *AssignmentController) TodayHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	date := today()
	if raw := q.Get("date"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			utils.RespondServiceError(w, err)
			return
		}
		date = parsed
	}

	var outingID *uuid.UUID
	if raw := q.Get("outing_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid outing_id", nil)
			return
		}
		outingID = &id
	}

	dto, err := c.assignmentService.ForDate(r.Context(), date, outingID, today())
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto)
}

// GET /api/v1/assignments/upcoming?limit=N
func (c *AssignmentController) UpcomingHandler(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid limit", nil)
			return
		}
		limit = n
	}

	list, err := c.assignmentService.ListUpcoming(r.Context(), today(), limit)
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GET /api/v1/assignments/stats
func (c *AssignmentController) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := c.assignmentService.DashboardStats(r.Context(), today())
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, stats)
}
