package registry

import (
	"context"

	"github.com/BruksfildServices01/dogvet-api/internal/audit"
	"github.com/BruksfildServices01/dogvet-api/internal/domain/record"
	"github.com/BruksfildServices01/dogvet-api/internal/httperr"
	"github.com/BruksfildServices01/dogvet-api/internal/models"
)

func validAnimal(a *models.Animal) error {
	if a.Name == "" || a.TutorID == 0 {
		return httperr.ErrInvalidInput("invalid_animal", "Nome e tutor do animal são obrigatórios.")
	}
	return nil
}

type CreateAnimal struct {
	repo  record.Repository
	audit *audit.Dispatcher
}

func NewCreateAnimal(
	repo record.Repository,
	audit *audit.Dispatcher,
) *CreateAnimal {
	return &CreateAnimal{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateAnimal) Execute(
	ctx context.Context,
	in AnimalInput,
) (*models.Animal, error) {

	a := &models.Animal{Active: true}
	applyAnimal(a, in)
	if err := validAnimal(a); err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetTutor(ctx, a.TutorID); err != nil {
		return nil, record.Translate(err, record.KindTutor, "cpf")
	}

	if err := uc.repo.CreateAnimal(ctx, a); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorFrom(ctx),
		Action:   "animal_created",
		Entity:   string(record.KindAnimal),
		EntityID: &a.ID,
	})

	return a, nil
}

type UpdateAnimal struct {
	repo  record.Repository
	audit *audit.Dispatcher
}

func NewUpdateAnimal(
	repo record.Repository,
	audit *audit.Dispatcher,
) *UpdateAnimal {
	return &UpdateAnimal{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateAnimal) Execute(
	ctx context.Context,
	id uint,
	in AnimalInput,
) (*models.Animal, error) {

	var a *models.Animal

	err := inLockedRow(ctx, uc.repo, record.KindAnimal, id, func(tx record.Repository) error {
		var err error
		a, err = tx.GetAnimal(ctx, id)
		if err != nil {
			return record.Translate(err, record.KindAnimal, "")
		}

		applyAnimal(a, in)
		if err := validAnimal(a); err != nil {
			return err
		}

		if in.TutorID != nil {
			if _, err := tx.GetTutor(ctx, a.TutorID); err != nil {
				return record.Translate(err, record.KindTutor, "cpf")
			}
		}

		return tx.SaveAnimal(ctx, a)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorFrom(ctx),
		Action:   "animal_updated",
		Entity:   string(record.KindAnimal),
		EntityID: &a.ID,
	})

	return a, nil
}
