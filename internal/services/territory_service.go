package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Rafium-MS/territorio-app/internal/dtos"
	"github.com/Rafium-MS/territorio-app/internal/models"
	"github.com/Rafium-MS/territorio-app/internal/repositories"
	"github.com/Rafium-MS/territorio-app/internal/utils"
)

// TerritoryService manages territories and their street/property hierarchy.
type TerritoryService struct {
	territoryRepo repositories.TerritoryRepository
	streetRepo    repositories.StreetRepository
	propertyRepo  repositories.PropertyRepository
}

func NewTerritoryService(
	territoryRepo repositories.TerritoryRepository,
	streetRepo repositories.StreetRepository,
	propertyRepo repositories.PropertyRepository,
) *TerritoryService {
	return &TerritoryService{
		territoryRepo: territoryRepo,
		streetRepo:    streetRepo,
		propertyRepo:  propertyRepo,
	}
}

// Create rejects a name already taken by another territory (case-insensitive).
// Uniqueness is only checked here; renames via Update are unconstrained.
func (s *TerritoryService) Create(ctx context.Context, req dtos.CreateTerritoryRequest) (*models.Territory, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, utils.ErrMissingRequiredField
	}

	n, err := s.territoryRepo.CountByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, utils.ErrTerritoryNameExists
	}

	t := &models.Territory{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Region:      strings.TrimSpace(req.Region),
	}
	if err := s.territoryRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TerritoryService) Get(ctx context.Context, id uuid.UUID) (*models.Territory, error) {
	t, err := s.territoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, utils.ErrTerritoryNotFound
	}
	return t, nil
}

func (s *TerritoryService) List(ctx context.Context) ([]*models.Territory, error) {
	return s.territoryRepo.List(ctx)
}

func (s *TerritoryService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateTerritoryRequest) (*models.Territory, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, utils.ErrMissingRequiredField
		}
		t.Name = name
	}
	if req.Description != nil {
		t.Description = strings.TrimSpace(*req.Description)
	}
	if req.Region != nil {
		t.Region = strings.TrimSpace(*req.Region)
	}

	if err := s.territoryRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes the territory. Streets, properties, assignments and visit
// records cascade away with it.
func (s *TerritoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.territoryRepo.Delete(ctx, id)
}

// AddStreet appends a street at the end of the territory's ordering.
func (s *TerritoryService) AddStreet(ctx context.Context, territoryID uuid.UUID, req dtos.AddStreetRequest) (*models.Street, error) {
	if _, err := s.Get(ctx, territoryID); err != nil {
		return nil, err
	}

	pos, err := s.streetRepo.NextPosition(ctx, territoryID)
	if err != nil {
		return nil, err
	}

	st := &models.Street{
		ID:          uuid.New(),
		TerritoryID: territoryID,
		Name:        strings.TrimSpace(req.Name),
		StreetType:  strings.TrimSpace(req.StreetType),
		Position:    pos,
	}
	if st.Name == "" {
		return nil, utils.ErrMissingRequiredField
	}
	if err := s.streetRepo.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *TerritoryService) ListStreets(ctx context.Context, territoryID uuid.UUID) ([]*models.Street, error) {
	if _, err := s.Get(ctx, territoryID); err != nil {
		return nil, err
	}
	return s.streetRepo.ListByTerritoryID(ctx, territoryID)
}

// AddProperty appends a property to a street. The street must belong to the
// given territory; a mismatched pair is treated as street-not-found.
func (s *TerritoryService) AddProperty(
	ctx context.Context,
	territoryID, streetID uuid.UUID,
	req dtos.AddPropertyRequest,
) (*models.Property, error) {
	if _, err := s.Get(ctx, territoryID); err != nil {
		return nil, err
	}

	st, err := s.streetRepo.GetByID(ctx, streetID)
	if err != nil {
		return nil, err
	}
	if st == nil || st.TerritoryID != territoryID {
		return nil, utils.ErrStreetNotFound
	}

	ptype := models.PropertyTypeName(strings.ToUpper(strings.TrimSpace(req.PropertyType)))
	if !models.ValidPropertyType(ptype) {
		return nil, utils.ErrInvalidEnumValue
	}

	pos, err := s.propertyRepo.NextPosition(ctx, streetID)
	if err != nil {
		return nil, err
	}

	p := &models.Property{
		ID:           uuid.New(),
		StreetID:     streetID,
		Number:       strings.TrimSpace(req.Number),
		PropertyType: ptype,
		Notes:        strings.TrimSpace(req.Notes),
		Position:     pos,
	}
	if p.Number == "" {
		return nil, utils.ErrMissingRequiredField
	}
	if err := s.propertyRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *TerritoryService) ListProperties(ctx context.Context, territoryID, streetID uuid.UUID) ([]*models.Property, error) {
	st, err := s.streetRepo.GetByID(ctx, streetID)
	if err != nil {
		return nil, err
	}
	if st == nil || st.TerritoryID != territoryID {
		return nil, utils.ErrStreetNotFound
	}
	return s.propertyRepo.ListByStreetID(ctx, streetID)
}
