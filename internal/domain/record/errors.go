package record

import (
	"errors"

	"github.com/BruksfildServices01/dogvet-api/internal/httperr"
)

func NotFoundError(kind Kind) error {
	return httperr.ErrNotFound(
		string(kind)+"_not_found",
		"Registro de "+kind.Label()+" não encontrado.",
	)
}

func DuplicateError(kind Kind, field string) error {
	return httperr.ErrConflict(
		string(kind)+"_duplicate_"+field,
		"Já existe um registro ativo de "+kind.Label()+" com este "+field+".",
	)
}

// Translate troca os sentinels do store pelos erros de negócio do tipo.
// Qualquer outro erro segue como está (vira 500).
func Translate(err error, kind Kind, field string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return NotFoundError(kind)
	case errors.Is(err, ErrDuplicate):
		return DuplicateError(kind, field)
	default:
		return err
	}
}
