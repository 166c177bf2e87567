package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Rafium-MS/territorio-app/internal/dtos"
	"github.com/Rafium-MS/territorio-app/internal/utils"
)

func newTerritoryService() (*TerritoryService, *fakeStreetRepo) {
	streets := newFakeStreetRepo()
	return NewTerritoryService(newFakeTerritoryRepo(), streets, newFakePropertyRepo(streets)), streets
}

func TestCreateTerritory(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTerritoryService()

	created, err := svc.Create(ctx, dtos.CreateTerritoryRequest{
		Name:   "  Território 1 - Centro  ",
		Region: "Centro",
	})
	require.NoError(t, err)
	require.Equal(t, "Território 1 - Centro", created.Name)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Name, got.Name)
}

func TestCreateTerritoryDuplicateName(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTerritoryService()

	_, err := svc.Create(ctx, dtos.CreateTerritoryRequest{Name: "Território 1"})
	require.NoError(t, err)

	// Comparison is case-insensitive.
	_, err = svc.Create(ctx, dtos.CreateTerritoryRequest{Name: "TERRITÓRIO 1"})
	require.ErrorIs(t, err, utils.ErrTerritoryNameExists)
}

func TestUpdateTerritoryRenameUnconstrained(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTerritoryService()

	a, err := svc.Create(ctx, dtos.CreateTerritoryRequest{Name: "Território A"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, dtos.CreateTerritoryRequest{Name: "Território B"})
	require.NoError(t, err)

	// Uniqueness is only checked at creation; renaming onto an existing
	// name is allowed.
	name := "Território B"
	updated, err := svc.Update(ctx, a.ID, dtos.UpdateTerritoryRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Território B", updated.Name)
}

func TestAddStreetOrdering(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTerritoryService()

	territory, err := svc.Create(ctx, dtos.CreateTerritoryRequest{Name: "Território 1"})
	require.NoError(t, err)

	first, err := svc.AddStreet(ctx, territory.ID, dtos.AddStreetRequest{Name: "Rua das Flores"})
	require.NoError(t, err)
	require.Equal(t, 1, first.Position)

	second, err := svc.AddStreet(ctx, territory.ID, dtos.AddStreetRequest{Name: "Avenida Brasil", StreetType: "avenida"})
	require.NoError(t, err)
	require.Equal(t, 2, second.Position)

	streets, err := svc.ListStreets(ctx, territory.ID)
	require.NoError(t, err)
	require.Len(t, streets, 2)
	require.Equal(t, "Rua das Flores", streets[0].Name)
}

func TestAddStreetMissingTerritory(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTerritoryService()

	_, err := svc.AddStreet(ctx, uuid.New(), dtos.AddStreetRequest{Name: "Rua X"})
	require.ErrorIs(t, err, utils.ErrTerritoryNotFound)
}

func TestAddProperty(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTerritoryService()

	territory, err := svc.Create(ctx, dtos.CreateTerritoryRequest{Name: "Território 1"})
	require.NoError(t, err)
	street, err := svc.AddStreet(ctx, territory.ID, dtos.AddStreetRequest{Name: "Rua das Flores"})
	require.NoError(t, err)

	p, err := svc.AddProperty(ctx, territory.ID, street.ID, dtos.AddPropertyRequest{
		Number:       "125-A",
		PropertyType: "residential", // normalized to CAPS
	})
	require.NoError(t, err)
	require.Equal(t, "125-A", p.Number)
	require.Equal(t, "RESIDENTIAL", string(p.PropertyType))
	require.Equal(t, 1, p.Position)

	_, err = svc.AddProperty(ctx, territory.ID, street.ID, dtos.AddPropertyRequest{
		Number:       "127",
		PropertyType: "CASTLE",
	})
	require.ErrorIs(t, err, utils.ErrInvalidEnumValue)
}

func TestAddPropertyStreetTerritoryMismatch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTerritoryService()

	a, err := svc.Create(ctx, dtos.CreateTerritoryRequest{Name: "Território A"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, dtos.CreateTerritoryRequest{Name: "Território B"})
	require.NoError(t, err)

	street, err := svc.AddStreet(ctx, a.ID, dtos.AddStreetRequest{Name: "Rua das Flores"})
	require.NoError(t, err)

	_, err = svc.AddProperty(ctx, b.ID, street.ID, dtos.AddPropertyRequest{
		Number:       "10",
		PropertyType: "RESIDENTIAL",
	})
	require.ErrorIs(t, err, utils.ErrStreetNotFound)
}

func TestDeleteTerritory(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTerritoryService()

	territory, err := svc.Create(ctx, dtos.CreateTerritoryRequest{Name: "Território 1"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, territory.ID))
	_, err = svc.Get(ctx, territory.ID)
	require.ErrorIs(t, err, utils.ErrTerritoryNotFound)

	require.ErrorIs(t, svc.Delete(ctx, territory.ID), utils.ErrTerritoryNotFound)
}
