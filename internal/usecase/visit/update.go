package visit

import (
	"context"
	"time"

	"github.com/BruksfildServices01/dogvet-api/internal/audit"
	"github.com/BruksfildServices01/dogvet-api/internal/domain/record"
	"github.com/BruksfildServices01/dogvet-api/internal/models"
	"github.com/BruksfildServices01/dogvet-api/internal/timezone"
)

// PatchVisitInput: só anotações. Participantes e data não mudam.
type PatchVisitInput struct {
	DayNotes  *string
	Diagnosis *string
	Comments  *string
}

func applyPatch(v *models.Visit, in PatchVisitInput) {
	if in.DayNotes != nil {
		v.DayNotes = *in.DayNotes
	}
	if in.Diagnosis != nil {
		v.Diagnosis = *in.Diagnosis
	}
	if in.Comments != nil {
		v.Comments = *in.Comments
	}
}

type PatchVisit struct {
	repo  record.Repository
	audit *audit.Dispatcher
}

func NewPatchVisit(
	repo record.Repository,
	audit *audit.Dispatcher,
) *PatchVisit {
	return &PatchVisit{
		repo:  repo,
		audit: audit,
	}
}

func (uc *PatchVisit) Execute(
	ctx context.Context,
	id uint,
	in PatchVisitInput,
) (*models.Visit, error) {

	var v *models.Visit

	// status e finalized_at vêm da releitura travada, nunca de uma cópia velha
	err := uc.repo.Transaction(ctx, func(tx record.Repository) error {
		if err := tx.LockRow(ctx, record.KindVisit, id, record.LockUpdate); err != nil {
			return record.Translate(err, record.KindVisit, "")
		}

		var err error
		v, err = tx.GetVisit(ctx, id)
		if err != nil {
			return record.Translate(err, record.KindVisit, "")
		}

		applyPatch(v, in)
		return tx.SaveVisit(ctx, v)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorFrom(ctx),
		Action:   "visit_updated",
		Entity:   string(record.KindVisit),
		EntityID: &v.ID,
	})

	return v, nil
}

// ======================================================
// FINALIZE
// ======================================================

type FinalizeVisit struct {
	repo  record.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewFinalizeVisit(
	repo record.Repository,
	audit *audit.Dispatcher,
) *FinalizeVisit {
	return &FinalizeVisit{
		repo:  repo,
		audit: audit,
		now:   timezone.Now,
	}
}

func (uc *FinalizeVisit) Execute(
	ctx context.Context,
	id uint,
) (*models.Visit, error) {

	var out *models.Visit

	err := uc.repo.Transaction(ctx, func(tx record.Repository) error {
		if err := tx.LockRow(ctx, record.KindVisit, id, record.LockUpdate); err != nil {
			return record.Translate(err, record.KindVisit, "")
		}

		v, err := tx.GetVisit(ctx, id)
		if err != nil {
			return record.Translate(err, record.KindVisit, "")
		}

		if err := record.Finalize(v, uc.now()); err != nil {
			return err
		}

		if err := tx.SaveVisit(ctx, v); err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorFrom(ctx),
		Action:   "visit_finalized",
		Entity:   string(record.KindVisit),
		EntityID: &out.ID,
	})

	return out, nil
}
