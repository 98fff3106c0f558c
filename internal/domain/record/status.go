package record

import (
	"time"

	"github.com/BruksfildServices01/dogvet-api/internal/httperr"
	"github.com/BruksfildServices01/dogvet-api/internal/models"
)

// ===============================
// Status
// ===============================

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusOpen      Status = "open"
	StatusFinalized Status = "finalized"
)

// Deactivatable é qualquer registro com a flag active.
type Deactivatable interface {
	IsActive() bool
	MarkInactive(now time.Time)
}

// ===============================
// Validations
// ===============================

// CanDeactivate: só sai de active. Não existe caminho de volta.
func CanDeactivate(kind Kind, active bool) error {
	if !active {
		return httperr.ErrConflict(
			"already_inactive",
			"O registro de "+kind.Label()+" em questão já foi inativado.",
		)
	}
	return nil
}

// CanFinalize: só sai de open. finalized é terminal.
func CanFinalize(current Status) error {
	if current != StatusOpen {
		return httperr.ErrConflict(
			"already_finalized",
			"O atendimento em questão já foi finalizado.",
		)
	}
	return nil
}

func InitialVisitStatus() Status {
	return StatusOpen
}

// ===============================
// Domain Actions
// ===============================

func Deactivate(kind Kind, rec Deactivatable, now time.Time) error {
	if err := CanDeactivate(kind, rec.IsActive()); err != nil {
		return err
	}

	rec.MarkInactive(now)
	return nil
}

func Finalize(v *models.Visit, now time.Time) error {
	if err := CanFinalize(Status(v.Status)); err != nil {
		return err
	}

	v.Status = string(StatusFinalized)
	v.FinalizedAt = &now
	return nil
}
