package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dogvet-api/internal/domain/record"
	"github.com/BruksfildServices01/dogvet-api/internal/httperr"
	"github.com/BruksfildServices01/dogvet-api/internal/httpresp"
	"github.com/BruksfildServices01/dogvet-api/internal/usecase/registry"
)

type ClinicHandler struct {
	create     *registry.CreateClinic
	update     *registry.UpdateClinic
	deactivate *registry.DeactivateRecord
	reader     *registry.Reader
}

func NewClinicHandler(
	create *registry.CreateClinic,
	update *registry.UpdateClinic,
	deactivate *registry.DeactivateRecord,
	reader *registry.Reader,
) *ClinicHandler {
	return &ClinicHandler{
		create:     create,
		update:     update,
		deactivate: deactivate,
		reader:     reader,
	}
}

// --------- Requests ---------

// ClinicRequest é usado no POST e no PUT: todos os campos obrigatórios.
type ClinicRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	TaxID   string `json:"cnpj" binding:"required,cnpj"`
	Address string `json:"address" binding:"required,max=255"`
}

type PatchClinicRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=100"`
	TaxID   *string `json:"cnpj" binding:"omitempty,cnpj"`
	Address *string `json:"address" binding:"omitempty,max=255"`
}

func (r ClinicRequest) toInput() registry.ClinicInput {
	return registry.ClinicInput{
		Name:    &r.Name,
		TaxID:   &r.TaxID,
		Address: &r.Address,
	}
}

func (r PatchClinicRequest) toInput() registry.ClinicInput {
	return registry.ClinicInput{
		Name:    r.Name,
		TaxID:   r.TaxID,
		Address: r.Address,
	}
}

// --------- Handlers ---------

func (h *ClinicHandler) Create(c *gin.Context) {
	var req ClinicRequest
	if !bindJSON(c, &req) {
		return
	}

	clinic, err := h.create.Execute(c.Request.Context(), req.toInput())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, clinic)
}

func (h *ClinicHandler) List(c *gin.Context) {
	clinics, err := h.reader.Clinics(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, clinics)
}

func (h *ClinicHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	clinic, err := h.reader.Clinic(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, clinic)
}

func (h *ClinicHandler) Put(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req ClinicRequest
	if !bindJSON(c, &req) {
		return
	}

	clinic, err := h.update.Execute(c.Request.Context(), id, req.toInput())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, clinic)
}

func (h *ClinicHandler) Patch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req PatchClinicRequest
	if !bindJSON(c, &req) {
		return
	}

	clinic, err := h.update.Execute(c.Request.Context(), id, req.toInput())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, clinic)
}

func (h *ClinicHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.deactivate.Execute(c.Request.Context(), record.KindClinic, id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}
