package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Rafium-MS/territorio-app/internal/repositories"
	"github.com/Rafium-MS/territorio-app/internal/utils"
)

// OverdueDigestService logs a daily summary of assignments past their due
// date. It only reads; the stored status is never touched.
type OverdueDigestService interface {
	RunDaily(ctx context.Context) error
}

type overdueDigestService struct {
	assignmentRepo repositories.AssignmentRepository
	territoryRepo  repositories.TerritoryRepository
}

func NewOverdueDigestService(
	assignmentRepo repositories.AssignmentRepository,
	territoryRepo repositories.TerritoryRepository,
) OverdueDigestService {
	return &overdueDigestService{
		assignmentRepo: assignmentRepo,
		territoryRepo:  territoryRepo,
	}
}

func (s *overdueDigestService) RunDaily(ctx context.Context) error {
	today := utils.DateOnly(time.Now().UTC())
	overdue, err := s.assignmentRepo.ListOverdue(ctx, today)
	if err != nil {
		return err
	}
	if len(overdue) == 0 {
		utils.Logger.Info("Overdue digest: no overdue assignments")
		return nil
	}

	for _, a := range overdue {
		fields := logrus.Fields{
			"assignment_id": a.ID,
			"responsible":   a.Responsible,
			"due_date":      utils.FormatDate(a.DueDate),
			"days_overdue":  int(today.Sub(a.DueDate).Hours() / 24),
		}
		if t, err := s.territoryRepo.GetByID(ctx, a.TerritoryID); err == nil && t != nil {
			fields["territory"] = t.Name
		}
		utils.Logger.WithFields(fields).Warn("Assignment past its due date")
	}
	utils.Logger.WithField("count", len(overdue)).Info("Overdue digest complete")
	return nil
}
