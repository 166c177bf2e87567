package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Rafium-MS/territorio-app/internal/dtos"
	"github.com/Rafium-MS/territorio-app/internal/models"
	"github.com/Rafium-MS/territorio-app/internal/repositories"
	"github.com/Rafium-MS/territorio-app/internal/utils"
)

// OutingService manages the recurring field-service schedule and its
// calendar projections.
type OutingService struct {
	outingRepo     repositories.OutingRepository
	assignmentRepo repositories.AssignmentRepository
}

func NewOutingService(
	outingRepo repositories.OutingRepository,
	assignmentRepo repositories.AssignmentRepository,
) *OutingService {
	return &OutingService{
		outingRepo:     outingRepo,
		assignmentRepo: assignmentRepo,
	}
}

func (s *OutingService) Create(ctx context.Context, req dtos.CreateOutingRequest) (*models.Outing, error) {
	weekday := strings.ToLower(strings.TrimSpace(req.Weekday))
	if _, err := utils.ParseWeekday(weekday); err != nil {
		return nil, utils.ErrInvalidEnumValue
	}
	if !utils.ValidClockTime(req.StartTime) {
		return nil, utils.ErrInvalidDate
	}

	o := &models.Outing{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Weekday:   weekday,
		StartTime: req.StartTime,
		Leader:    strings.TrimSpace(req.Leader),
	}
	if o.Name == "" {
		return nil, utils.ErrMissingRequiredField
	}
	if err := s.outingRepo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OutingService) Get(ctx context.Context, id uuid.UUID) (*models.Outing, error) {
	o, err := s.outingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, utils.ErrOutingNotFound
	}
	return o, nil
}

// List returns all outings in week order (sunday first), then by start time.
func (s *OutingService) List(ctx context.Context) ([]*models.Outing, error) {
	outings, err := s.outingRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(outings, func(i, j int) bool {
		wi, _ := utils.ParseWeekday(outings[i].Weekday)
		wj, _ := utils.ParseWeekday(outings[j].Weekday)
		if wi != wj {
			return wi < wj
		}
		return outings[i].StartTime < outings[j].StartTime
	})
	return outings, nil
}

func (s *OutingService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateOutingRequest) (*models.Outing, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, utils.ErrMissingRequiredField
		}
		o.Name = name
	}
	if req.Weekday != nil {
		weekday := strings.ToLower(strings.TrimSpace(*req.Weekday))
		if _, err := utils.ParseWeekday(weekday); err != nil {
			return nil, utils.ErrInvalidEnumValue
		}
		o.Weekday = weekday
	}
	if req.StartTime != nil {
		if !utils.ValidClockTime(*req.StartTime) {
			return nil, utils.ErrInvalidDate
		}
		o.StartTime = *req.StartTime
	}
	if req.Leader != nil {
		o.Leader = strings.TrimSpace(*req.Leader)
	}

	if err := s.outingRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Delete refuses to remove an outing that any assignment (of any status)
// still references; the assignment history would lose its schedule context.
func (s *OutingService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	n, err := s.assignmentRepo.CountByOutingID(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return utils.ErrOutingInUse
	}
	return s.outingRepo.Delete(ctx, id)
}

// NextOccurrences projects every outing onto its next occurrence dates on or
// after ref, merged and sorted soonest-first, capped at limit.
func (s *OutingService) NextOccurrences(ctx context.Context, ref time.Time, limit int) ([]dtos.NextOccurrenceDTO, error) {
	outings, err := s.outingRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	ref = utils.DateOnly(ref)
	occurrences := make([]dtos.NextOccurrenceDTO, 0, limit)

	// Walk day by day from ref; with at most 7 distinct weekdays this
	// terminates within limit*7 iterations.
	for day := ref; len(occurrences) < limit && day.Before(ref.AddDate(0, 0, 7*limit+7)); day = day.AddDate(0, 0, 1) {
		for _, o := range outings {
			wd, err := utils.ParseWeekday(o.Weekday)
			if err != nil {
				continue
			}
			if day.Weekday() != wd {
				continue
			}
			occurrences = append(occurrences, dtos.NextOccurrenceDTO{
				Outing: *o,
				Date:   utils.FormatDate(day),
			})
			if len(occurrences) == limit {
				break
			}
		}
	}
	return occurrences, nil
}

// MonthCalendar lays the recurring schedule over one calendar month. Days
// with no outings are omitted.
func (s *OutingService) MonthCalendar(ctx context.Context, year int, month time.Month) (*dtos.MonthCalendarResponse, error) {
	outings, err := s.outingRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	byWeekday := make(map[time.Weekday][]models.Outing)
	for _, o := range outings {
		wd, err := utils.ParseWeekday(o.Weekday)
		if err != nil {
			continue
		}
		byWeekday[wd] = append(byWeekday[wd], *o)
	}

	resp := &dtos.MonthCalendarResponse{
		Year:  year,
		Month: int(month),
		Days:  []dtos.CalendarDayDTO{},
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for day := first; day.Month() == month; day = day.AddDate(0, 0, 1) {
		scheduled := byWeekday[day.Weekday()]
		if len(scheduled) == 0 {
			continue
		}
		resp.Days = append(resp.Days, dtos.CalendarDayDTO{
			Date:    utils.FormatDate(day),
			Outings: scheduled,
		})
	}
	return resp, nil
}
