package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Rafium-MS/territorio-app/internal/dtos"
	"github.com/Rafium-MS/territorio-app/internal/models"
	"github.com/Rafium-MS/territorio-app/internal/utils"
)

// Walks a full field-work cycle across the services sharing one set of
// stores: set up a territory, assign it, get rejected on a double
// assignment, record a visit, check coverage, complete, and re-assign.
func TestFieldWorkFlow(t *testing.T) {
	ctx := context.Background()

	territoryRepo := newFakeTerritoryRepo()
	streetRepo := newFakeStreetRepo()
	propRepo := newFakePropertyRepo(streetRepo)
	outingRepo := newFakeOutingRepo()
	assignRepo := newFakeAssignmentRepo()
	visitRepo := newFakeVisitRepo()

	territorySvc := NewTerritoryService(territoryRepo, streetRepo, propRepo)
	outingSvc := NewOutingService(outingRepo, assignRepo)
	assignmentSvc := NewAssignmentService(assignRepo, territoryRepo, outingRepo)
	visitSvc := NewVisitService(visitRepo, territoryRepo, streetRepo, propRepo)

	today := mustDate(t, "2026-08-02")

	// Territory with one street and two properties.
	territory, err := territorySvc.Create(ctx, dtos.CreateTerritoryRequest{Name: "Território 1 - Centro"})
	require.NoError(t, err)
	street, err := territorySvc.AddStreet(ctx, territory.ID, dtos.AddStreetRequest{Name: "Rua das Flores"})
	require.NoError(t, err)
	p1, err := territorySvc.AddProperty(ctx, territory.ID, street.ID, dtos.AddPropertyRequest{
		Number: "10", PropertyType: "residential",
	})
	require.NoError(t, err)
	_, err = territorySvc.AddProperty(ctx, territory.ID, street.ID, dtos.AddPropertyRequest{
		Number: "12", PropertyType: "commercial",
	})
	require.NoError(t, err)

	outing, err := outingSvc.Create(ctx, dtos.CreateOutingRequest{
		Name: "Saída 1", Weekday: "saturday", StartTime: "09:00",
	})
	require.NoError(t, err)

	// Assign the territory; a second assignment must be refused while the
	// first one is active.
	createReq := dtos.CreateAssignmentRequest{
		TerritoryID:  territory.ID.String(),
		OutingID:     outing.ID.String(),
		Responsible:  "João Silva",
		AssignedDate: "2026-08-01",
		DueDate:      "2026-08-15",
	}
	assignment, err := assignmentSvc.Create(ctx, createReq, today)
	require.NoError(t, err)

	secondReq := createReq
	secondReq.Responsible = "Maria Souza"
	_, err = assignmentSvc.Create(ctx, secondReq, today)
	require.ErrorIs(t, err, utils.ErrTerritoryAlreadyAssigned)

	// One of the two properties visited: coverage reads 50%.
	_, err = visitSvc.Record(ctx, dtos.RecordVisitRequest{
		TerritoryID: territory.ID.String(),
		StreetID:    street.ID.String(),
		PropertyID:  p1.ID.String(),
		VisitDate:   "2026-08-02",
		Outcome:     "positive",
		RecordedBy:  "João Silva",
	})
	require.NoError(t, err)

	progress, err := visitSvc.TerritoryProgress(ctx, territory.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, progress.TotalProperties)
	require.EqualValues(t, 1, progress.VisitedProperties)
	require.Equal(t, 50, progress.Percentage)

	// Completing frees the territory for the next assignment.
	completed, err := assignmentSvc.Complete(ctx, uuid.MustParse(assignment.ID), dtos.CompleteAssignmentRequest{
		Outcome: "COMPLETE",
	}, today)
	require.NoError(t, err)
	require.Equal(t, string(models.AssignmentStatusCompleted), completed.Status)

	next, err := assignmentSvc.Create(ctx, secondReq, today)
	require.NoError(t, err)
	require.Equal(t, "Maria Souza", next.Responsible)
	require.Equal(t, string(models.AssignmentStatusActive), next.Status)
}
