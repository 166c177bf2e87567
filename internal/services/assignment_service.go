package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Rafium-MS/territorio-app/internal/constants"
	"github.com/Rafium-MS/territorio-app/internal/dtos"
	"github.com/Rafium-MS/territorio-app/internal/models"
	"github.com/Rafium-MS/territorio-app/internal/repositories"
	"github.com/Rafium-MS/territorio-app/internal/utils"
)

// AssignmentService owns the assignment lifecycle. Methods that classify
// OVERDUE take the reference date explicitly; nothing here reads the clock.
type AssignmentService struct {
	assignmentRepo repositories.AssignmentRepository
	territoryRepo  repositories.TerritoryRepository
	outingRepo     repositories.OutingRepository
}

func NewAssignmentService(
	assignmentRepo repositories.AssignmentRepository,
	territoryRepo repositories.TerritoryRepository,
	outingRepo repositories.OutingRepository,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		territoryRepo:  territoryRepo,
		outingRepo:     outingRepo,
	}
}

// Create hands a territory to a responsible person. The territory must not
// already have an ACTIVE assignment; a racing duplicate is caught by the
// partial unique index and surfaces as the same conflict error.
func (s *AssignmentService) Create(ctx context.Context, req dtos.CreateAssignmentRequest, today time.Time) (dtos.AssignmentDTO, error) {
	territoryID, err := uuid.Parse(req.TerritoryID)
	if err != nil {
		return dtos.AssignmentDTO{}, utils.ErrTerritoryNotFound
	}
	outingID, err := uuid.Parse(req.OutingID)
	if err != nil {
		return dtos.AssignmentDTO{}, utils.ErrOutingNotFound
	}

	territory, err := s.territoryRepo.GetByID(ctx, territoryID)
	if err != nil {
		return dtos.AssignmentDTO{}, err
	}
	if territory == nil {
		return dtos.AssignmentDTO{}, utils.ErrTerritoryNotFound
	}
	outing, err := s.outingRepo.GetByID(ctx, outingID)
	if err != nil {
		return dtos.AssignmentDTO{}, err
	}
	if outing == nil {
		return dtos.AssignmentDTO{}, utils.ErrOutingNotFound
	}

	assignedDate, err := utils.ParseDate(req.AssignedDate)
	if err != nil {
		return dtos.AssignmentDTO{}, utils.ErrInvalidDate
	}
	dueDate, err := utils.ParseDate(req.DueDate)
	if err != nil {
		return dtos.AssignmentDTO{}, utils.ErrInvalidDate
	}
	if dueDate.Before(assignedDate) {
		return dtos.AssignmentDTO{}, utils.ErrInvalidDateRange
	}

	active, err := s.assignmentRepo.ActiveByTerritoryID(ctx, territoryID)
	if err != nil {
		return dtos.AssignmentDTO{}, err
	}
	if active != nil {
		return dtos.AssignmentDTO{}, utils.ErrTerritoryAlreadyAssigned
	}

	a := &models.Assignment{
		ID:           uuid.New(),
		TerritoryID:  territoryID,
		OutingID:     outingID,
		Responsible:  strings.TrimSpace(req.Responsible),
		AssignedDate: assignedDate,
		DueDate:      dueDate,
		Status:       models.AssignmentStatusActive,
		Notes:        strings.TrimSpace(req.Notes),
	}
	a.SetRowVersion(1)
	if a.Responsible == "" {
		return dtos.AssignmentDTO{}, utils.ErrMissingRequiredField
	}
	if err := s.assignmentRepo.Create(ctx, a); err != nil {
		return dtos.AssignmentDTO{}, err
	}
	return s.toDTO(a, territory, outing, today), nil
}

// Complete closes an assignment with a completion outcome. The transition is
// one-way: completing an already-COMPLETED assignment is rejected, and the
// version-checked update keeps two racing completions from both winning.
func (s *AssignmentService) Complete(ctx context.Context, id uuid.UUID, req dtos.CompleteAssignmentRequest, today time.Time) (dtos.AssignmentDTO, error) {
	completedDate := utils.DateOnly(today)
	if req.CompletedDate != "" {
		parsed, err := utils.ParseDate(req.CompletedDate)
		if err != nil {
			return dtos.AssignmentDTO{}, utils.ErrInvalidDate
		}
		completedDate = parsed
	}
	// Outcome is optional; an omitted outcome stays NULL.
	var outcome *models.AssignmentOutcomeType
	if raw := strings.TrimSpace(req.Outcome); raw != "" {
		o := models.AssignmentOutcomeType(strings.ToUpper(raw))
		if !models.ValidAssignmentOutcome(o) {
			return dtos.AssignmentDTO{}, utils.ErrInvalidEnumValue
		}
		outcome = &o
	}

	err := s.assignmentRepo.UpdateWithRetry(ctx, id, func(a *models.Assignment) error {
		if a.Status == models.AssignmentStatusCompleted {
			return utils.ErrAssignmentAlreadyCompleted
		}
		if completedDate.Before(a.AssignedDate) {
			return utils.ErrInvalidDateRange
		}
		a.Status = models.AssignmentStatusCompleted
		a.CompletedDate = &completedDate
		a.Outcome = outcome
		if notes := strings.TrimSpace(req.Notes); notes != "" {
			a.Notes = notes
		}
		return nil
	})
	if err != nil {
		return dtos.AssignmentDTO{}, err
	}
	return s.Get(ctx, id, today)
}

// Update edits the mutable fields of an ACTIVE assignment. Completed
// assignments are immutable history.
func (s *AssignmentService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateAssignmentRequest, today time.Time) (dtos.AssignmentDTO, error) {
	var dueDate *time.Time
	if req.DueDate != nil {
		d, err := utils.ParseDate(*req.DueDate)
		if err != nil {
			return dtos.AssignmentDTO{}, utils.ErrInvalidDate
		}
		dueDate = &d
	}

	err := s.assignmentRepo.UpdateWithRetry(ctx, id, func(a *models.Assignment) error {
		if a.Status == models.AssignmentStatusCompleted {
			return utils.ErrAssignmentAlreadyCompleted
		}
		if req.Responsible != nil {
			responsible := strings.TrimSpace(*req.Responsible)
			if responsible == "" {
				return utils.ErrMissingRequiredField
			}
			a.Responsible = responsible
		}
		if dueDate != nil {
			if dueDate.Before(a.AssignedDate) {
				return utils.ErrInvalidDateRange
			}
			a.DueDate = *dueDate
		}
		if req.Notes != nil {
			a.Notes = strings.TrimSpace(*req.Notes)
		}
		return nil
	})
	if err != nil {
		return dtos.AssignmentDTO{}, err
	}
	return s.Get(ctx, id, today)
}

func (s *AssignmentService) Get(ctx context.Context, id uuid.UUID, today time.Time) (dtos.AssignmentDTO, error) {
	a, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return dtos.AssignmentDTO{}, err
	}
	if a == nil {
		return dtos.AssignmentDTO{}, utils.ErrAssignmentNotFound
	}
	return s.enrich(ctx, a, today)
}

func (s *AssignmentService) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return utils.ErrAssignmentNotFound
	}
	return s.assignmentRepo.Delete(ctx, id)
}

func (s *AssignmentService) List(ctx context.Context, f repositories.AssignmentFilter, today time.Time) ([]dtos.AssignmentDTO, error) {
	list, err := s.assignmentRepo.ListFiltered(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, list, today)
}

// ActiveForTerritory returns the territory's current assignment, or
// not-found when the territory is available.
func (s *AssignmentService) ActiveForTerritory(ctx context.Context, territoryID uuid.UUID, today time.Time) (dtos.AssignmentDTO, error) {
	territory, err := s.territoryRepo.GetByID(ctx, territoryID)
	if err != nil {
		return dtos.AssignmentDTO{}, err
	}
	if territory == nil {
		return dtos.AssignmentDTO{}, utils.ErrTerritoryNotFound
	}

	a, err := s.assignmentRepo.ActiveByTerritoryID(ctx, territoryID)
	if err != nil {
		return dtos.AssignmentDTO{}, err
	}
	if a == nil {
		return dtos.AssignmentDTO{}, utils.ErrAssignmentNotFound
	}
	return s.enrich(ctx, a, today)
}

// ForDate answers "which territory is being worked on this date": the ACTIVE
// assignment whose window covers the date, optionally restricted to one
// outing. With several candidates the most recently assigned wins.
func (s *AssignmentService) ForDate(ctx context.Context, date time.Time, outingID *uuid.UUID, today time.Time) (dtos.AssignmentDTO, error) {
	a, err := s.assignmentRepo.ActiveCoveringDate(ctx, utils.DateOnly(date), outingID)
	if err != nil {
		return dtos.AssignmentDTO{}, err
	}
	if a == nil {
		return dtos.AssignmentDTO{}, utils.ErrAssignmentNotFound
	}
	return s.enrich(ctx, a, today)
}

// ListUpcoming returns ACTIVE assignments due strictly after the reference
// date, soonest due first.
func (s *AssignmentService) ListUpcoming(ctx context.Context, after time.Time, limit int) ([]dtos.AssignmentDTO, error) {
	if limit <= 0 {
		limit = constants.DefaultUpcomingLimit
	}
	list, err := s.assignmentRepo.ListUpcoming(ctx, utils.DateOnly(after), limit)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, list, after)
}

// ListOverdue returns ACTIVE assignments whose due date has passed as of the
// given date.
func (s *AssignmentService) ListOverdue(ctx context.Context, asOf time.Time) ([]dtos.AssignmentDTO, error) {
	list, err := s.assignmentRepo.ListOverdue(ctx, utils.DateOnly(asOf))
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, list, asOf)
}

// DashboardStats aggregates assignment activity as of today.
func (s *AssignmentService) DashboardStats(ctx context.Context, today time.Time) (*dtos.DashboardStatsResponse, error) {
	active, err := s.assignmentRepo.CountByStatus(ctx, models.AssignmentStatusActive)
	if err != nil {
		return nil, err
	}
	completed, err := s.assignmentRepo.CountByStatus(ctx, models.AssignmentStatusCompleted)
	if err != nil {
		return nil, err
	}
	overdue, err := s.assignmentRepo.ListOverdue(ctx, utils.DateOnly(today))
	if err != nil {
		return nil, err
	}

	perOuting, err := s.assignmentRepo.CountActivePerOuting(ctx, constants.DashboardOutingLimit)
	if err != nil {
		return nil, err
	}
	outingCounts := make([]dtos.OutingAssignmentCountDTO, 0, len(perOuting))
	for _, oc := range perOuting {
		entry := dtos.OutingAssignmentCountDTO{OutingID: oc.OutingID.String(), Count: oc.Count}
		if o, err := s.outingRepo.GetByID(ctx, oc.OutingID); err == nil && o != nil {
			entry.Name = o.Name
		}
		outingCounts = append(outingCounts, entry)
	}

	perOutcome, err := s.assignmentRepo.CountCompletedPerOutcome(ctx)
	if err != nil {
		return nil, err
	}
	outcomeCounts := make([]dtos.OutcomeCountDTO, 0, len(perOutcome))
	for _, oc := range perOutcome {
		outcomeCounts = append(outcomeCounts, dtos.OutcomeCountDTO{Outcome: oc.Outcome, Count: oc.Count})
	}

	return &dtos.DashboardStatsResponse{
		ActiveCount:       active,
		CompletedCount:    completed,
		OverdueCount:      int64(len(overdue)),
		ActivePerOuting:   outingCounts,
		CompletedOutcomes: outcomeCounts,
	}, nil
}

func (s *AssignmentService) enrich(ctx context.Context, a *models.Assignment, today time.Time) (dtos.AssignmentDTO, error) {
	territory, err := s.territoryRepo.GetByID(ctx, a.TerritoryID)
	if err != nil {
		return dtos.AssignmentDTO{}, err
	}
	outing, err := s.outingRepo.GetByID(ctx, a.OutingID)
	if err != nil {
		return dtos.AssignmentDTO{}, err
	}
	return s.toDTO(a, territory, outing, today), nil
}

func (s *AssignmentService) enrichAll(ctx context.Context, list []*models.Assignment, today time.Time) ([]dtos.AssignmentDTO, error) {
	out := make([]dtos.AssignmentDTO, 0, len(list))
	for _, a := range list {
		d, err := s.enrich(ctx, a, today)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *AssignmentService) toDTO(a *models.Assignment, territory *models.Territory, outing *models.Outing, today time.Time) dtos.AssignmentDTO {
	d := dtos.AssignmentDTO{
		ID:            a.ID.String(),
		TerritoryID:   a.TerritoryID.String(),
		OutingID:      a.OutingID.String(),
		Responsible:   a.Responsible,
		AssignedDate:  utils.FormatDate(a.AssignedDate),
		DueDate:       utils.FormatDate(a.DueDate),
		Status:        string(a.Status),
		DisplayStatus: displayStatus(a, today),
		Notes:         a.Notes,
		RowVersion:    a.GetRowVersion(),
	}
	if territory != nil {
		d.Territory = &dtos.TerritorySummaryDTO{ID: territory.ID.String(), Name: territory.Name}
	}
	if outing != nil {
		d.Outing = &dtos.OutingSummaryDTO{ID: outing.ID.String(), Name: outing.Name, Weekday: outing.Weekday}
	}
	if a.CompletedDate != nil {
		cd := utils.FormatDate(*a.CompletedDate)
		d.CompletedDate = &cd
	}
	if a.Outcome != nil {
		oc := string(*a.Outcome)
		d.Outcome = &oc
	}
	return d
}

// displayStatus folds the derived OVERDUE state into the wire status. The
// stored status never changes because a due date passed.
func displayStatus(a *models.Assignment, today time.Time) string {
	if a.OverdueAt(today) {
		return "OVERDUE"
	}
	return string(a.Status)
}
