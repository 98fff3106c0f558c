package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dogvet-api/internal/domain/record"
	"github.com/BruksfildServices01/dogvet-api/internal/httperr"
	"github.com/BruksfildServices01/dogvet-api/internal/httpresp"
	"github.com/BruksfildServices01/dogvet-api/internal/usecase/visit"
)

// ======================================================
// HANDLER
// ======================================================

type VisitHandler struct {
	create   *visit.CreateVisit
	patch    *visit.PatchVisit
	finalize *visit.FinalizeVisit
	reader   *visit.Reader
}

func NewVisitHandler(
	create *visit.CreateVisit,
	patch *visit.PatchVisit,
	finalize *visit.FinalizeVisit,
	reader *visit.Reader,
) *VisitHandler {
	return &VisitHandler{
		create:   create,
		patch:    patch,
		finalize: finalize,
		reader:   reader,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateVisitRequest struct {
	ClinicID       uint   `json:"clinic_id" binding:"required"`
	VeterinarianID uint   `json:"veterinarian_id" binding:"required"`
	TutorID        uint   `json:"tutor_id" binding:"required"`
	AnimalID       uint   `json:"animal_id" binding:"required"`
	OccurredAt     string `json:"occurred_at"`
	DayNotes       string `json:"day_notes" binding:"required"`
	Diagnosis      string `json:"diagnosis" binding:"required"`
	Comments       string `json:"comments" binding:"required"`
}

// PatchVisitRequest: participantes e data não mudam depois de criado.
type PatchVisitRequest struct {
	DayNotes  *string `json:"day_notes"`
	Diagnosis *string `json:"diagnosis"`
	Comments  *string `json:"comments"`
}

// ======================================================
// CREATE
// ======================================================

func (h *VisitHandler) Create(c *gin.Context) {
	var req CreateVisitRequest
	if !bindJSON(c, &req) {
		return
	}

	occurredAt, err := parseDateTime(req.OccurredAt)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	v, err := h.create.Execute(c.Request.Context(), visit.CreateVisitInput{
		ClinicID:       req.ClinicID,
		VeterinarianID: req.VeterinarianID,
		TutorID:        req.TutorID,
		AnimalID:       req.AnimalID,
		OccurredAt:     occurredAt,
		DayNotes:       req.DayNotes,
		Diagnosis:      req.Diagnosis,
		Comments:       req.Comments,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, v)
}

// ======================================================
// READ
// ======================================================

// List devolve os atendimentos em aberto.
func (h *VisitHandler) List(c *gin.Context) {
	visits, err := h.reader.ListOpen(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, visits)
}

func (h *VisitHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	v, err := h.reader.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, v)
}

// ListBy monta o handler de listagem por veterinário, tutor ou animal.
func (h *VisitHandler) ListBy(kind record.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}

		visits, err := h.reader.ListBy(c.Request.Context(), kind, id)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		httpresp.List(c, visits)
	}
}

// ======================================================
// UPDATE / FINALIZE
// ======================================================

func (h *VisitHandler) Patch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req PatchVisitRequest
	if !bindJSON(c, &req) {
		return
	}

	v, err := h.patch.Execute(c.Request.Context(), id, visit.PatchVisitInput{
		DayNotes:  req.DayNotes,
		Diagnosis: req.Diagnosis,
		Comments:  req.Comments,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, v)
}

// Finalize: o DELETE de atendimento encerra, não apaga.
func (h *VisitHandler) Finalize(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	v, err := h.finalize.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, v)
}
