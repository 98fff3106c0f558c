package registry

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/dogvet-api/internal/audit"
	"github.com/BruksfildServices01/dogvet-api/internal/domain/record"
	"github.com/BruksfildServices01/dogvet-api/internal/httperr"
	"github.com/BruksfildServices01/dogvet-api/internal/infra/lock"
	"github.com/BruksfildServices01/dogvet-api/internal/models"
)

func licenseKey(license string) string {
	return "veterinarian:crmv:" + license
}

func ensureLicenseFree(ctx context.Context, repo record.Repository, license string, selfID uint) error {
	other, err := repo.ActiveVeterinarianByLicense(ctx, license)
	if errors.Is(err, record.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if other.ID != selfID {
		return record.DuplicateError(record.KindVeterinarian, "CRMV")
	}
	return nil
}

func validVeterinarian(v *models.Veterinarian) error {
	if v.Name == "" || v.LicenseNumber == "" {
		return httperr.ErrInvalidInput("invalid_veterinarian", "Nome e CRMV do veterinário são obrigatórios.")
	}
	return nil
}

type CreateVeterinarian struct {
	repo  record.Repository
	locks lock.Locker
	audit *audit.Dispatcher
}

func NewCreateVeterinarian(
	repo record.Repository,
	locks lock.Locker,
	audit *audit.Dispatcher,
) *CreateVeterinarian {
	return &CreateVeterinarian{
		repo:  repo,
		locks: locks,
		audit: audit,
	}
}

func (uc *CreateVeterinarian) Execute(
	ctx context.Context,
	in VeterinarianInput,
) (*models.Veterinarian, error) {

	v := &models.Veterinarian{Active: true}
	applyVeterinarian(v, in)
	if err := validVeterinarian(v); err != nil {
		return nil, err
	}

	err := withKey(ctx, uc.locks, licenseKey(v.LicenseNumber), func() error {
		if err := ensureLicenseFree(ctx, uc.repo, v.LicenseNumber, 0); err != nil {
			return err
		}
		return record.Translate(uc.repo.CreateVeterinarian(ctx, v), record.KindVeterinarian, "CRMV")
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorFrom(ctx),
		Action:   "veterinarian_created",
		Entity:   string(record.KindVeterinarian),
		EntityID: &v.ID,
	})

	return v, nil
}

type UpdateVeterinarian struct {
	repo  record.Repository
	locks lock.Locker
	audit *audit.Dispatcher
}

func NewUpdateVeterinarian(
	repo record.Repository,
	locks lock.Locker,
	audit *audit.Dispatcher,
) *UpdateVeterinarian {
	return &UpdateVeterinarian{
		repo:  repo,
		locks: locks,
		audit: audit,
	}
}

func (uc *UpdateVeterinarian) Execute(
	ctx context.Context,
	id uint,
	in VeterinarianInput,
) (*models.Veterinarian, error) {

	var current *models.Veterinarian

	update := func() error {
		return inLockedRow(ctx, uc.repo, record.KindVeterinarian, id, func(tx record.Repository) error {
			v, err := tx.GetVeterinarian(ctx, id)
			if err != nil {
				return record.Translate(err, record.KindVeterinarian, "CRMV")
			}

			changed := in.LicenseNumber != nil && *in.LicenseNumber != v.LicenseNumber
			applyVeterinarian(v, in)
			if err := validVeterinarian(v); err != nil {
				return err
			}

			if changed && v.Active {
				if err := ensureLicenseFree(ctx, tx, v.LicenseNumber, v.ID); err != nil {
					return err
				}
			}

			if err := tx.SaveVeterinarian(ctx, v); err != nil {
				return record.Translate(err, record.KindVeterinarian, "CRMV")
			}
			current = v
			return nil
		})
	}

	var err error
	if in.LicenseNumber != nil {
		err = withKey(ctx, uc.locks, licenseKey(*in.LicenseNumber), update)
	} else {
		err = update()
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorFrom(ctx),
		Action:   "veterinarian_updated",
		Entity:   string(record.KindVeterinarian),
		EntityID: &current.ID,
	})

	return current, nil
}
