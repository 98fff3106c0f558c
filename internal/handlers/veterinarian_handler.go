package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dogvet-api/internal/domain/record"
	"github.com/BruksfildServices01/dogvet-api/internal/httperr"
	"github.com/BruksfildServices01/dogvet-api/internal/httpresp"
	"github.com/BruksfildServices01/dogvet-api/internal/usecase/registry"
)

type VeterinarianHandler struct {
	create     *registry.CreateVeterinarian
	update     *registry.UpdateVeterinarian
	deactivate *registry.DeactivateRecord
	reader     *registry.Reader
}

func NewVeterinarianHandler(
	create *registry.CreateVeterinarian,
	update *registry.UpdateVeterinarian,
	deactivate *registry.DeactivateRecord,
	reader *registry.Reader,
) *VeterinarianHandler {
	return &VeterinarianHandler{
		create:     create,
		update:     update,
		deactivate: deactivate,
		reader:     reader,
	}
}

type VeterinarianRequest struct {
	Name          string `json:"name" binding:"required,max=30"`
	LicenseNumber string `json:"crmv" binding:"required,license"`
}

func (r VeterinarianRequest) toInput() registry.VeterinarianInput {
	return registry.VeterinarianInput{
		Name:          &r.Name,
		LicenseNumber: &r.LicenseNumber,
	}
}

func (h *VeterinarianHandler) Create(c *gin.Context) {
	var req VeterinarianRequest
	if !bindJSON(c, &req) {
		return
	}

	vet, err := h.create.Execute(c.Request.Context(), req.toInput())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, vet)
}

func (h *VeterinarianHandler) List(c *gin.Context) {
	vets, err := h.reader.Veterinarians(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, vets)
}

func (h *VeterinarianHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	vet, err := h.reader.Veterinarian(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, vet)
}

func (h *VeterinarianHandler) Put(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req VeterinarianRequest
	if !bindJSON(c, &req) {
		return
	}

	vet, err := h.update.Execute(c.Request.Context(), id, req.toInput())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, vet)
}

func (h *VeterinarianHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.deactivate.Execute(c.Request.Context(), record.KindVeterinarian, id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}
