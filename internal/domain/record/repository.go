package record

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/dogvet-api/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record violates unique constraint")
)

type LockMode string

const (
	LockShare  LockMode = "SHARE"
	LockUpdate LockMode = "UPDATE"
)

// VisitFilter restringe a listagem de atendimentos. Zero value lista os abertos.
type VisitFilter struct {
	Kind          Kind
	ID            uint
	IncludeClosed bool
}

type Repository interface {
	OpenVisitFinder

	// -------- Transaction --------
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	LockRow(
		ctx context.Context,
		kind Kind,
		id uint,
		mode LockMode,
	) error

	// -------- Clinic --------
	CreateClinic(ctx context.Context, c *models.Clinic) error
	GetClinic(ctx context.Context, id uint) (*models.Clinic, error)
	SaveClinic(ctx context.Context, c *models.Clinic) error
	ListActiveClinics(ctx context.Context) ([]models.Clinic, error)

	// -------- Tutor --------
	CreateTutor(ctx context.Context, t *models.Tutor) error
	GetTutor(ctx context.Context, id uint) (*models.Tutor, error)
	SaveTutor(ctx context.Context, t *models.Tutor) error
	ListActiveTutors(ctx context.Context) ([]models.Tutor, error)
	ActiveTutorByNationalID(
		ctx context.Context,
		nationalID string,
	) (*models.Tutor, error)

	// -------- Veterinarian --------
	CreateVeterinarian(ctx context.Context, v *models.Veterinarian) error
	GetVeterinarian(ctx context.Context, id uint) (*models.Veterinarian, error)
	SaveVeterinarian(ctx context.Context, v *models.Veterinarian) error
	ListActiveVeterinarians(ctx context.Context) ([]models.Veterinarian, error)
	ActiveVeterinarianByLicense(
		ctx context.Context,
		license string,
	) (*models.Veterinarian, error)

	// -------- Animal --------
	CreateAnimal(ctx context.Context, a *models.Animal) error
	GetAnimal(ctx context.Context, id uint) (*models.Animal, error)
	SaveAnimal(ctx context.Context, a *models.Animal) error
	ListActiveAnimals(ctx context.Context) ([]models.Animal, error)
	ListAnimalsByTutor(ctx context.Context, tutorID uint) ([]models.Animal, error)

	// -------- Visit --------
	CreateVisit(ctx context.Context, v *models.Visit) error
	GetVisit(ctx context.Context, id uint) (*models.Visit, error)
	SaveVisit(ctx context.Context, v *models.Visit) error
	ListVisits(ctx context.Context, filter VisitFilter) ([]models.Visit, error)

	// -------- Credential --------
	CreateCredential(ctx context.Context, c *models.Credential) error
	GetCredential(ctx context.Context, id uint) (*models.Credential, error)
	SaveCredential(ctx context.Context, c *models.Credential) error
	ListActiveCredentials(ctx context.Context) ([]models.Credential, error)
	CredentialByLogin(ctx context.Context, login string) (*models.Credential, error)

	// -------- Audit --------
	CreateAuditLog(ctx context.Context, l *models.AuditLog) error
	ListAuditLogs(
		ctx context.Context,
		filter AuditFilter,
	) ([]models.AuditLog, int64, error)
}

type AuditFilter struct {
	Action string
	Entity string
	Limit  int
	Offset int
}
