package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dogvet-api/internal/domain/record"
	"github.com/BruksfildServices01/dogvet-api/internal/httperr"
	"github.com/BruksfildServices01/dogvet-api/internal/httpresp"
	"github.com/BruksfildServices01/dogvet-api/internal/infra/dogapi"
	"github.com/BruksfildServices01/dogvet-api/internal/usecase/registry"
)

// BreedLookup é o proxy de raças (TheDogAPI).
type BreedLookup interface {
	ListBreeds(ctx context.Context) []dogapi.DogInfo
	SearchBreeds(ctx context.Context, name string) []dogapi.DogInfo
	ListImages(ctx context.Context) []dogapi.DogImage
}

// ======================================================
// HANDLER
// ======================================================

type AnimalHandler struct {
	create     *registry.CreateAnimal
	update     *registry.UpdateAnimal
	deactivate *registry.DeactivateRecord
	reader     *registry.Reader
	breeds     BreedLookup
}

func NewAnimalHandler(
	create *registry.CreateAnimal,
	update *registry.UpdateAnimal,
	deactivate *registry.DeactivateRecord,
	reader *registry.Reader,
	breeds BreedLookup,
) *AnimalHandler {
	return &AnimalHandler{
		create:     create,
		update:     update,
		deactivate: deactivate,
		reader:     reader,
		breeds:     breeds,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AnimalRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Breed     string `json:"breed" binding:"required,max=100"`
	Weight    string `json:"weight" binding:"required,max=20"`
	BirthDate string `json:"birth_date" binding:"required"`
	TutorID   uint   `json:"tutor_id" binding:"required"`
}

func (r AnimalRequest) toInput(c *gin.Context) (registry.AnimalInput, bool) {
	birth, err := parseDate(r.BirthDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_birth_date", "Data de nascimento inválida.")
		return registry.AnimalInput{}, false
	}

	return registry.AnimalInput{
		Name:      &r.Name,
		Breed:     &r.Breed,
		Weight:    &r.Weight,
		BirthDate: birth,
		TutorID:   &r.TutorID,
	}, true
}

// ======================================================
// CRUD
// ======================================================

func (h *AnimalHandler) Create(c *gin.Context) {
	var req AnimalRequest
	if !bindJSON(c, &req) {
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}

	animal, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, animal)
}

func (h *AnimalHandler) List(c *gin.Context) {
	animals, err := h.reader.Animals(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, animals)
}

func (h *AnimalHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	animal, err := h.reader.Animal(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, animal)
}

func (h *AnimalHandler) ListByTutor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	animals, err := h.reader.AnimalsByTutor(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, animals)
}

func (h *AnimalHandler) Put(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req AnimalRequest
	if !bindJSON(c, &req) {
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}

	animal, err := h.update.Execute(c.Request.Context(), id, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, animal)
}

func (h *AnimalHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.deactivate.Execute(c.Request.Context(), record.KindAnimal, id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// RAÇAS (proxy externo)
// ======================================================

func (h *AnimalHandler) Breeds(c *gin.Context) {
	httpresp.List(c, h.breeds.ListBreeds(c.Request.Context()))
}

func (h *AnimalHandler) BreedByName(c *gin.Context) {
	httpresp.List(c, h.breeds.SearchBreeds(c.Request.Context(), c.Param("name")))
}

func (h *AnimalHandler) BreedImages(c *gin.Context) {
	httpresp.List(c, h.breeds.ListImages(c.Request.Context()))
}
