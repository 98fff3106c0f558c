package visit

import (
	"context"

	"github.com/BruksfildServices01/dogvet-api/internal/domain/record"
	"github.com/BruksfildServices01/dogvet-api/internal/models"
)

type Reader struct {
	repo record.Repository
}

func NewReader(repo record.Repository) *Reader {
	return &Reader{repo: repo}
}

func (r *Reader) Get(ctx context.Context, id uint) (*models.Visit, error) {
	v, err := r.repo.GetVisit(ctx, id)
	return v, record.Translate(err, record.KindVisit, "")
}

// ListOpen lista os atendimentos em aberto.
func (r *Reader) ListOpen(ctx context.Context) ([]models.Visit, error) {
	return r.repo.ListVisits(ctx, record.VisitFilter{})
}

// ListBy traz o histórico (abertos e finalizados) de um participante.
func (r *Reader) ListBy(ctx context.Context, kind record.Kind, id uint) ([]models.Visit, error) {
	return r.repo.ListVisits(ctx, record.VisitFilter{
		Kind:          kind,
		ID:            id,
		IncludeClosed: true,
	})
}
