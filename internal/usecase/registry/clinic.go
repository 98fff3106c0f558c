package registry

import (
	"context"

	"github.com/BruksfildServices01/dogvet-api/internal/audit"
	"github.com/BruksfildServices01/dogvet-api/internal/domain/record"
	"github.com/BruksfildServices01/dogvet-api/internal/httperr"
	"github.com/BruksfildServices01/dogvet-api/internal/models"
)

type CreateClinic struct {
	repo  record.Repository
	audit *audit.Dispatcher
}

func NewCreateClinic(
	repo record.Repository,
	audit *audit.Dispatcher,
) *CreateClinic {
	return &CreateClinic{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateClinic) Execute(
	ctx context.Context,
	in ClinicInput,
) (*models.Clinic, error) {

	if deref(in.Name) == "" || deref(in.TaxID) == "" {
		return nil, httperr.ErrInvalidInput("invalid_clinic", "Nome e CNPJ da clínica são obrigatórios.")
	}

	c := &models.Clinic{Active: true}
	applyClinic(c, in)

	if err := uc.repo.CreateClinic(ctx, c); err != nil {
		return nil, record.Translate(err, record.KindClinic, "cnpj")
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorFrom(ctx),
		Action:   "clinic_created",
		Entity:   string(record.KindClinic),
		EntityID: &c.ID,
	})

	return c, nil
}

type UpdateClinic struct {
	repo  record.Repository
	audit *audit.Dispatcher
}

func NewUpdateClinic(
	repo record.Repository,
	audit *audit.Dispatcher,
) *UpdateClinic {
	return &UpdateClinic{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateClinic) Execute(
	ctx context.Context,
	id uint,
	in ClinicInput,
) (*models.Clinic, error) {

	var c *models.Clinic

	err := inLockedRow(ctx, uc.repo, record.KindClinic, id, func(tx record.Repository) error {
		var err error
		c, err = tx.GetClinic(ctx, id)
		if err != nil {
			return record.Translate(err, record.KindClinic, "cnpj")
		}

		applyClinic(c, in)
		if c.Name == "" || c.TaxID == "" {
			return httperr.ErrInvalidInput("invalid_clinic", "Nome e CNPJ da clínica são obrigatórios.")
		}

		return record.Translate(tx.SaveClinic(ctx, c), record.KindClinic, "cnpj")
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorFrom(ctx),
		Action:   "clinic_updated",
		Entity:   string(record.KindClinic),
		EntityID: &c.ID,
	})

	return c, nil
}
