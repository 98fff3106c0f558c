package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dogvet-api/internal/domain/record"
	"github.com/BruksfildServices01/dogvet-api/internal/httperr"
	"github.com/BruksfildServices01/dogvet-api/internal/httpresp"
	"github.com/BruksfildServices01/dogvet-api/internal/usecase/registry"
)

type TutorHandler struct {
	create     *registry.CreateTutor
	update     *registry.UpdateTutor
	deactivate *registry.DeactivateRecord
	reader     *registry.Reader
}

func NewTutorHandler(
	create *registry.CreateTutor,
	update *registry.UpdateTutor,
	deactivate *registry.DeactivateRecord,
	reader *registry.Reader,
) *TutorHandler {
	return &TutorHandler{
		create:     create,
		update:     update,
		deactivate: deactivate,
		reader:     reader,
	}
}

// --------- Requests ---------

type TutorRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	NationalID string `json:"cpf" binding:"required,cpf"`
}

type PatchTutorRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=100"`
	NationalID *string `json:"cpf" binding:"omitempty,cpf"`
}

func (r TutorRequest) toInput() registry.TutorInput {
	return registry.TutorInput{
		Name:       &r.Name,
		NationalID: &r.NationalID,
	}
}

func (r PatchTutorRequest) toInput() registry.TutorInput {
	return registry.TutorInput{
		Name:       r.Name,
		NationalID: r.NationalID,
	}
}

// --------- Handlers ---------

func (h *TutorHandler) Create(c *gin.Context) {
	var req TutorRequest
	if !bindJSON(c, &req) {
		return
	}

	tutor, err := h.create.Execute(c.Request.Context(), req.toInput())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, tutor)
}

func (h *TutorHandler) List(c *gin.Context) {
	tutors, err := h.reader.Tutors(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, tutors)
}

// Get devolve o tutor com os animais.
func (h *TutorHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	tutor, err := h.reader.Tutor(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, tutor)
}

func (h *TutorHandler) Put(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req TutorRequest
	if !bindJSON(c, &req) {
		return
	}

	tutor, err := h.update.Execute(c.Request.Context(), id, req.toInput())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, tutor)
}

func (h *TutorHandler) Patch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req PatchTutorRequest
	if !bindJSON(c, &req) {
		return
	}

	tutor, err := h.update.Execute(c.Request.Context(), id, req.toInput())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, tutor)
}

func (h *TutorHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.deactivate.Execute(c.Request.Context(), record.KindTutor, id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}
