package controllers

import (
	"net/http"

	"github.com/Rafium-MS/territorio-app/internal/dtos"
	"github.com/Rafium-MS/territorio-app/internal/services"
	"github.com/Rafium-MS/territorio-app/internal/utils"
)

type TerritoryController struct {
	territoryService *services.TerritoryService
	visitService     *services.VisitService
}

func NewTerritoryController(
	territoryService *services.TerritoryService,
	visitService *services.VisitService,
) *TerritoryController {
	return &TerritoryController{
		territoryService: territoryService,
		visitService:     visitService,
	}
}

// POST /api/v1/territories
func (c *TerritoryController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateTerritoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	territory, err := c.territoryService.Create(r.Context(), req)
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, territory)
}

// GET /api/v1/territories
func (c *TerritoryController) ListHandler(w http.ResponseWriter, r *http.Request) {
	list, err := c.territoryService.List(r.Context())
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GET /api/v1/territories/{id}
func (c *TerritoryController) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	territory, err := c.territoryService.Get(r.Context(), id)
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, territory)
}

// PUT /api/v1/territories/{id}
func (c *TerritoryController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dtos.UpdateTerritoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	territory, err := c.territoryService.Update(r.Context(), id, req)
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, territory)
}

// DELETE /api/v1/territories/{id}
func (c *TerritoryController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := c.territoryService.Delete(r.Context(), id); err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/territories/{id}/streets
func (c *TerritoryController) AddStreetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dtos.AddStreetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	street, err := c.territoryService.AddStreet(r.Context(), id, req)
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, street)
}

// GET /api/v1/territories/{id}/streets
func (c *TerritoryController) ListStreetsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	streets, err := c.territoryService.ListStreets(r.Context(), id)
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, streets)
}

// POST /api/v1/territories/{id}/streets/{streetId}/properties
func (c *TerritoryController) AddPropertyHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	streetID, ok := pathUUID(w, r, "streetId")
	if !ok {
		return
	}
	var req dtos.AddPropertyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	property, err := c.territoryService.AddProperty(r.Context(), id, streetID, req)
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, property)
}

// GET /api/v1/territories/{id}/streets/{streetId}/properties
func (c *TerritoryController) ListPropertiesHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	streetID, ok := pathUUID(w, r, "streetId")
	if !ok {
		return
	}
	properties, err := c.territoryService.ListProperties(r.Context(), id, streetID)
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, properties)
}

// GET /api/v1/territories/{id}/progress
func (c *TerritoryController) ProgressHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	progress, err := c.visitService.TerritoryProgress(r.Context(), id)
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, progress)
}
