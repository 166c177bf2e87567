package services

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Rafium-MS/territorio-app/internal/constants"
	"github.com/Rafium-MS/territorio-app/internal/dtos"
	"github.com/Rafium-MS/territorio-app/internal/models"
	"github.com/Rafium-MS/territorio-app/internal/repositories"
	"github.com/Rafium-MS/territorio-app/internal/utils"
)

// VisitService records door-to-door visit outcomes and derives coverage
// statistics from them. Records are append-only history.
type VisitService struct {
	visitRepo     repositories.VisitRecordRepository
	territoryRepo repositories.TerritoryRepository
	streetRepo    repositories.StreetRepository
	propertyRepo  repositories.PropertyRepository
}

func NewVisitService(
	visitRepo repositories.VisitRecordRepository,
	territoryRepo repositories.TerritoryRepository,
	streetRepo repositories.StreetRepository,
	propertyRepo repositories.PropertyRepository,
) *VisitService {
	return &VisitService{
		visitRepo:     visitRepo,
		territoryRepo: territoryRepo,
		streetRepo:    streetRepo,
		propertyRepo:  propertyRepo,
	}
}

// Record validates the territory -> street -> property chain and appends a
// visit record. A property reached through the wrong street or territory is
// treated as not found.
func (s *VisitService) Record(ctx context.Context, req dtos.RecordVisitRequest) (*models.VisitRecord, error) {
	territoryID, err := uuid.Parse(req.TerritoryID)
	if err != nil {
		return nil, utils.ErrTerritoryNotFound
	}
	streetID, err := uuid.Parse(req.StreetID)
	if err != nil {
		return nil, utils.ErrStreetNotFound
	}
	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		return nil, utils.ErrPropertyNotFound
	}

	territory, err := s.territoryRepo.GetByID(ctx, territoryID)
	if err != nil {
		return nil, err
	}
	if territory == nil {
		return nil, utils.ErrTerritoryNotFound
	}
	street, err := s.streetRepo.GetByID(ctx, streetID)
	if err != nil {
		return nil, err
	}
	if street == nil || street.TerritoryID != territoryID {
		return nil, utils.ErrStreetNotFound
	}
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property == nil || property.StreetID != streetID {
		return nil, utils.ErrPropertyNotFound
	}

	visitDate, err := utils.ParseDate(req.VisitDate)
	if err != nil {
		return nil, utils.ErrInvalidDate
	}
	outcome := models.VisitOutcomeType(strings.ToUpper(strings.TrimSpace(req.Outcome)))
	if !models.ValidVisitOutcome(outcome) {
		return nil, utils.ErrInvalidEnumValue
	}

	v := &models.VisitRecord{
		ID:          uuid.New(),
		PropertyID:  propertyID,
		StreetID:    streetID,
		TerritoryID: territoryID,
		VisitDate:   visitDate,
		Outcome:     outcome,
		Notes:       strings.TrimSpace(req.Notes),
		RecordedBy:  strings.TrimSpace(req.RecordedBy),
	}
	if err := s.visitRepo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// LatestForProperty returns the property's most recent record, its current
// door-to-door state.
func (s *VisitService) LatestForProperty(ctx context.Context, propertyID uuid.UUID) (*models.VisitRecord, error) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, utils.ErrPropertyNotFound
	}

	v, err := s.visitRepo.LatestByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, utils.ErrVisitNotFound
	}
	return v, nil
}

func (s *VisitService) List(ctx context.Context, f repositories.VisitFilter) ([]*models.VisitRecord, error) {
	return s.visitRepo.ListFiltered(ctx, f)
}

// TerritoryProgress reports how many of the territory's properties have at
// least one visit record. Distinct properties, not record count: revisits
// must not inflate coverage. An empty territory is 0%, never a division error.
func (s *VisitService) TerritoryProgress(ctx context.Context, territoryID uuid.UUID) (*dtos.TerritoryProgressResponse, error) {
	territory, err := s.territoryRepo.GetByID(ctx, territoryID)
	if err != nil {
		return nil, err
	}
	if territory == nil {
		return nil, utils.ErrTerritoryNotFound
	}

	total, err := s.propertyRepo.CountByTerritoryID(ctx, territoryID)
	if err != nil {
		return nil, err
	}

	visits, err := s.visitRepo.ListByTerritoryID(ctx, territoryID)
	if err != nil {
		return nil, err
	}
	visited := make(map[uuid.UUID]struct{})
	perOutcome := make(map[string]int64)
	var lastVisit *time.Time
	for _, v := range visits {
		visited[v.PropertyID] = struct{}{}
		perOutcome[string(v.Outcome)]++
		if lastVisit == nil || v.VisitDate.After(*lastVisit) {
			d := v.VisitDate
			lastVisit = &d
		}
	}

	resp := &dtos.TerritoryProgressResponse{
		TerritoryID:       territoryID.String(),
		TotalProperties:   total,
		VisitedProperties: int64(len(visited)),
		PerOutcome:        []dtos.OutcomeCountDTO{},
	}
	if total > 0 {
		resp.Percentage = int(math.Round(float64(resp.VisitedProperties) / float64(total) * 100))
	}
	if lastVisit != nil {
		d := utils.FormatDate(*lastVisit)
		resp.LastVisitDate = &d
	}
	for _, outcome := range []models.VisitOutcomeType{
		models.VisitOutcomePositive, models.VisitOutcomeAbsent,
		models.VisitOutcomeRefused, models.VisitOutcomeOther,
	} {
		if n := perOutcome[string(outcome)]; n > 0 {
			resp.PerOutcome = append(resp.PerOutcome, dtos.OutcomeCountDTO{Outcome: string(outcome), Count: n})
		}
	}
	return resp, nil
}

// DashboardStats aggregates visit activity: totals, per-outcome counts and a
// per-day series over the trailing window ending today.
func (s *VisitService) DashboardStats(ctx context.Context, today time.Time) (*dtos.VisitStatsResponse, error) {
	total, err := s.visitRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	perOutcome, err := s.visitRepo.CountPerOutcome(ctx)
	if err != nil {
		return nil, err
	}
	outcomeCounts := make([]dtos.OutcomeCountDTO, 0, len(perOutcome))
	for _, oc := range perOutcome {
		outcomeCounts = append(outcomeCounts, dtos.OutcomeCountDTO{Outcome: oc.Outcome, Count: oc.Count})
	}

	since := utils.DateOnly(today).AddDate(0, 0, -(constants.VisitStatsWindowDays - 1))
	perDay, err := s.visitRepo.CountPerDaySince(ctx, since)
	if err != nil {
		return nil, err
	}
	dayCounts := make([]dtos.VisitsPerDayDTO, 0, len(perDay))
	for _, dc := range perDay {
		dayCounts = append(dayCounts, dtos.VisitsPerDayDTO{Date: dc.Date, Count: dc.Count})
	}

	return &dtos.VisitStatsResponse{
		TotalVisits: total,
		PerOutcome:  outcomeCounts,
		PerDay:      dayCounts,
	}, nil
}
