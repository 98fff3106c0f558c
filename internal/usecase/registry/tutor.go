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

// withKey roda fn segurando o lock da chave.
func withKey(ctx context.Context, locks lock.Locker, key string, fn func() error) error {
	release, err := locks.Acquire(ctx, key)
	if err != nil {
		return err
	}
	defer release()

	return fn()
}

// inLockedRow relê e grava o registro dentro de uma transação, com a
// linha travada. Uma inativação concorrente espera ou é vista por fn.
func inLockedRow(
	ctx context.Context,
	repo record.Repository,
	kind record.Kind,
	id uint,
	fn func(tx record.Repository) error,
) error {
	return repo.Transaction(ctx, func(tx record.Repository) error {
		if err := tx.LockRow(ctx, kind, id, record.LockUpdate); err != nil {
			return record.Translate(err, kind, "")
		}
		return fn(tx)
	})
}

func tutorKey(nationalID string) string {
	return "tutor:cpf:" + nationalID
}

// ensureTutorFree: nenhum outro tutor ativo com o mesmo cpf.
func ensureTutorFree(ctx context.Context, repo record.Repository, nationalID string, selfID uint) error {
	other, err := repo.ActiveTutorByNationalID(ctx, nationalID)
	if errors.Is(err, record.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if other.ID != selfID {
		return record.DuplicateError(record.KindTutor, "cpf")
	}
	return nil
}

func validTutor(t *models.Tutor) error {
	if t.Name == "" || t.NationalID == "" {
		return httperr.ErrInvalidInput("invalid_tutor", "Nome e CPF do tutor são obrigatórios.")
	}
	return nil
}

// ======================================================
// CREATE
// ======================================================

type CreateTutor struct {
	repo  record.Repository
	locks lock.Locker
	audit *audit.Dispatcher
}

func NewCreateTutor(
	repo record.Repository,
	locks lock.Locker,
	audit *audit.Dispatcher,
) *CreateTutor {
	return &CreateTutor{
		repo:  repo,
		locks: locks,
		audit: audit,
	}
}

func (uc *CreateTutor) Execute(
	ctx context.Context,
	in TutorInput,
) (*models.Tutor, error) {

	t := &models.Tutor{Active: true}
	applyTutor(t, in)
	if err := validTutor(t); err != nil {
		return nil, err
	}

	err := withKey(ctx, uc.locks, tutorKey(t.NationalID), func() error {
		if err := ensureTutorFree(ctx, uc.repo, t.NationalID, 0); err != nil {
			return err
		}
		return record.Translate(uc.repo.CreateTutor(ctx, t), record.KindTutor, "cpf")
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorFrom(ctx),
		Action:   "tutor_created",
		Entity:   string(record.KindTutor),
		EntityID: &t.ID,
	})

	return t, nil
}

// ======================================================
// UPDATE (PUT / PATCH)
// ======================================================

type UpdateTutor struct {
	repo  record.Repository
	locks lock.Locker
	audit *audit.Dispatcher
}

func NewUpdateTutor(
	repo record.Repository,
	locks lock.Locker,
	audit *audit.Dispatcher,
) *UpdateTutor {
	return &UpdateTutor{
		repo:  repo,
		locks: locks,
		audit: audit,
	}
}

func (uc *UpdateTutor) Execute(
	ctx context.Context,
	id uint,
	in TutorInput,
) (*models.Tutor, error) {

	var current *models.Tutor

	update := func() error {
		return inLockedRow(ctx, uc.repo, record.KindTutor, id, func(tx record.Repository) error {
			t, err := tx.GetTutor(ctx, id)
			if err != nil {
				return record.Translate(err, record.KindTutor, "cpf")
			}

			changed := in.NationalID != nil && *in.NationalID != t.NationalID
			applyTutor(t, in)
			if err := validTutor(t); err != nil {
				return err
			}

			if changed && t.Active {
				if err := ensureTutorFree(ctx, tx, t.NationalID, t.ID); err != nil {
					return err
				}
			}

			if err := tx.SaveTutor(ctx, t); err != nil {
				return record.Translate(err, record.KindTutor, "cpf")
			}
			current = t
			return nil
		})
	}

	var err error
	if in.NationalID != nil {
		err = withKey(ctx, uc.locks, tutorKey(*in.NationalID), update)
	} else {
		err = update()
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorFrom(ctx),
		Action:   "tutor_updated",
		Entity:   string(record.KindTutor),
		EntityID: &current.ID,
	})

	return current, nil
}
