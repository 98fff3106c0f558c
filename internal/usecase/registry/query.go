package registry

import (
	"context"

	"github.com/BruksfildServices01/dogvet-api/internal/domain/record"
	"github.com/BruksfildServices01/dogvet-api/internal/models"
)

// Reader agrupa as consultas; só traduz "não encontrado" para 404.
type Reader struct {
	repo record.Repository
}

func NewReader(repo record.Repository) *Reader {
	return &Reader{repo: repo}
}

func (r *Reader) Clinic(ctx context.Context, id uint) (*models.Clinic, error) {
	c, err := r.repo.GetClinic(ctx, id)
	return c, record.Translate(err, record.KindClinic, "")
}

func (r *Reader) Clinics(ctx context.Context) ([]models.Clinic, error) {
	return r.repo.ListActiveClinics(ctx)
}

func (r *Reader) Tutor(ctx context.Context, id uint) (*models.Tutor, error) {
	t, err := r.repo.GetTutor(ctx, id)
	return t, record.Translate(err, record.KindTutor, "")
}

func (r *Reader) Tutors(ctx context.Context) ([]models.Tutor, error) {
	return r.repo.ListActiveTutors(ctx)
}

func (r *Reader) Veterinarian(ctx context.Context, id uint) (*models.Veterinarian, error) {
	v, err := r.repo.GetVeterinarian(ctx, id)
	return v, record.Translate(err, record.KindVeterinarian, "")
}

func (r *Reader) Veterinarians(ctx context.Context) ([]models.Veterinarian, error) {
	return r.repo.ListActiveVeterinarians(ctx)
}

func (r *Reader) Animal(ctx context.Context, id uint) (*models.Animal, error) {
	a, err := r.repo.GetAnimal(ctx, id)
	return a, record.Translate(err, record.KindAnimal, "")
}

func (r *Reader) Animals(ctx context.Context) ([]models.Animal, error) {
	return r.repo.ListActiveAnimals(ctx)
}

func (r *Reader) AnimalsByTutor(ctx context.Context, tutorID uint) ([]models.Animal, error) {
	if _, err := r.repo.GetTutor(ctx, tutorID); err != nil {
		return nil, record.Translate(err, record.KindTutor, "")
	}
	return r.repo.ListAnimalsByTutor(ctx, tutorID)
}
