package registry

import (
	"context"
	"time"

	"github.com/BruksfildServices01/dogvet-api/internal/audit"
	"github.com/BruksfildServices01/dogvet-api/internal/domain/record"
	"github.com/BruksfildServices01/dogvet-api/internal/httperr"
	"github.com/BruksfildServices01/dogvet-api/internal/timezone"
)

// DeactivateRecord faz o soft delete de clínica, tutor, veterinário,
// animal ou credencial.
//
// Tudo numa transação: trava a linha (FOR UPDATE), consulta o guard e
// troca o status. Criar atendimento trava as mesmas linhas FOR SHARE,
// então as duas operações não se cruzam.
type DeactivateRecord struct {
	repo  record.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewDeactivateRecord(
	repo record.Repository,
	audit *audit.Dispatcher,
) *DeactivateRecord {
	return &DeactivateRecord{
		repo:  repo,
		audit: audit,
		now:   timezone.Now,
	}
}

func (uc *DeactivateRecord) Execute(
	ctx context.Context,
	kind record.Kind,
	id uint,
) error {

	if kind == record.KindVisit || !kind.Valid() {
		return httperr.ErrInvalidInput("invalid_kind", "Este tipo de registro não pode ser inativado.")
	}

	err := uc.repo.Transaction(ctx, func(tx record.Repository) error {

		// --------------------------------------------------
		// 1️⃣ Existe?
		// --------------------------------------------------
		if err := tx.LockRow(ctx, kind, id, record.LockUpdate); err != nil {
			return record.Translate(err, kind, "")
		}

		rec, save, err := loadDeactivatable(ctx, tx, kind, id)
		if err != nil {
			return record.Translate(err, kind, "")
		}

		// --------------------------------------------------
		// 2️⃣ Atendimentos abertos
		// --------------------------------------------------
		decision, err := record.NewGuard(tx).CanDeactivate(ctx, kind, id)
		if err != nil {
			return err
		}
		if !decision.Allowed {
			return httperr.ErrConflict("has_open_visits", decision.Reason)
		}

		// --------------------------------------------------
		// 3️⃣ active → inactive
		// --------------------------------------------------
		if err := record.Deactivate(kind, rec, uc.now()); err != nil {
			return err
		}

		return save()
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorFrom(ctx),
		Action:   string(kind) + "_deactivated",
		Entity:   string(kind),
		EntityID: &id,
	})

	return nil
}

func loadDeactivatable(
	ctx context.Context,
	tx record.Repository,
	kind record.Kind,
	id uint,
) (record.Deactivatable, func() error, error) {

	switch kind {
	case record.KindClinic:
		c, err := tx.GetClinic(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		return c, func() error { return tx.SaveClinic(ctx, c) }, nil

	case record.KindTutor:
		t, err := tx.GetTutor(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		return t, func() error { return tx.SaveTutor(ctx, t) }, nil

	case record.KindVeterinarian:
		v, err := tx.GetVeterinarian(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		return v, func() error { return tx.SaveVeterinarian(ctx, v) }, nil

	case record.KindAnimal:
		a, err := tx.GetAnimal(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		return a, func() error { return tx.SaveAnimal(ctx, a) }, nil

	case record.KindCredential:
		c, err := tx.GetCredential(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		return c, func() error { return tx.SaveCredential(ctx, c) }, nil
	}

	return nil, nil, record.ErrNotFound
}
