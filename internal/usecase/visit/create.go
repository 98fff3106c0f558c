package visit

import (
	"context"
	"time"

	"github.com/BruksfildServices01/dogvet-api/internal/audit"
	"github.com/BruksfildServices01/dogvet-api/internal/domain/record"
	"github.com/BruksfildServices01/dogvet-api/internal/httperr"
	"github.com/BruksfildServices01/dogvet-api/internal/models"
	"github.com/BruksfildServices01/dogvet-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateVisitInput struct {
	ClinicID       uint
	VeterinarianID uint
	TutorID        uint
	AnimalID       uint

	OccurredAt time.Time

	DayNotes  string
	Diagnosis string
	Comments  string
}

// ======================================================
// USE CASE
// ======================================================

type CreateVisit struct {
	repo  record.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCreateVisit(
	repo record.Repository,
	audit *audit.Dispatcher,
) *CreateVisit {
	return &CreateVisit{
		repo:  repo,
		audit: audit,
		now:   timezone.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateVisit) Execute(
	ctx context.Context,
	in CreateVisitInput,
) (*models.Visit, error) {

	refs := []struct {
		kind record.Kind
		id   uint
	}{
		{record.KindClinic, in.ClinicID},
		{record.KindVeterinarian, in.VeterinarianID},
		{record.KindTutor, in.TutorID},
		{record.KindAnimal, in.AnimalID},
	}

	for _, ref := range refs {
		if ref.id == 0 {
			return nil, httperr.ErrInvalidInput(
				"invalid_visit",
				"Clínica, veterinário, tutor e animal são obrigatórios.",
			)
		}
	}

	occurredAt := in.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = uc.now()
	}

	var created *models.Visit

	err := uc.repo.Transaction(ctx, func(tx record.Repository) error {

		// --------------------------------------------------
		// 1️⃣ Referências existem (FOR SHARE até o commit)
		// --------------------------------------------------
		for _, ref := range refs {
			if err := tx.LockRow(ctx, ref.kind, ref.id, record.LockShare); err != nil {
				return record.Translate(err, ref.kind, "")
			}
		}

		// --------------------------------------------------
		// 2️⃣ Atendimento aberto
		// --------------------------------------------------
		v := &models.Visit{
			ClinicID:       in.ClinicID,
			VeterinarianID: in.VeterinarianID,
			TutorID:        in.TutorID,
			AnimalID:       in.AnimalID,
			OccurredAt:     occurredAt,
			DayNotes:       in.DayNotes,
			Diagnosis:      in.Diagnosis,
			Comments:       in.Comments,
			Status:         string(record.InitialVisitStatus()),
		}

		if err := tx.CreateVisit(ctx, v); err != nil {
			return err
		}

		loaded, err := tx.GetVisit(ctx, v.ID)
		if err != nil {
			return err
		}
		created = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorFrom(ctx),
		Action:   "visit_created",
		Entity:   string(record.KindVisit),
		EntityID: &created.ID,
		Metadata: map[string]uint{
			"clinic_id":       in.ClinicID,
			"veterinarian_id": in.VeterinarianID,
			"tutor_id":        in.TutorID,
			"animal_id":       in.AnimalID,
		},
	})

	return created, nil
}
