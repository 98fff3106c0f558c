package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/dogvet-api/internal/domain/record"
	"github.com/BruksfildServices01/dogvet-api/internal/models"
)

const uniqueViolation = "23505"

type RecordGormRepository struct {
	db *gorm.DB
}

func NewRecordGormRepository(db *gorm.DB) *RecordGormRepository {
	return &RecordGormRepository{db: db}
}

// translate converte erros do gorm/postgres nos sentinels de record.
func translate(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return record.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errors.Wrap(record.ErrDuplicate, pgErr.ConstraintName)
	}

	return errors.Wrap(err, op)
}

func first[T any](ctx context.Context, db *gorm.DB, op string, id uint) (*T, error) {
	var out T
	if err := db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, translate(err, op)
	}
	return &out, nil
}

func activeList[T any](ctx context.Context, db *gorm.DB, op string) ([]T, error) {
	var out []T
	if err := db.WithContext(ctx).
		Where("active = ?", true).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, translate(err, op)
	}
	return out, nil
}

func (r *RecordGormRepository) create(ctx context.Context, v any, op string) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(v).Error, op)
}

func (r *RecordGormRepository) save(ctx context.Context, v any, op string) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(v).Error, op)
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *RecordGormRepository) Transaction(
	ctx context.Context,
	fn func(tx record.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&RecordGormRepository{db: tx})
	})
}

func tableFor(kind record.Kind) (any, bool) {
	switch kind {
	case record.KindClinic:
		return &models.Clinic{}, true
	case record.KindTutor:
		return &models.Tutor{}, true
	case record.KindVeterinarian:
		return &models.Veterinarian{}, true
	case record.KindAnimal:
		return &models.Animal{}, true
	case record.KindVisit:
		return &models.Visit{}, true
	case record.KindCredential:
		return &models.Credential{}, true
	default:
		return nil, false
	}
}

// LockRow trava a linha (FOR UPDATE / FOR SHARE) até o fim da transação.
func (r *RecordGormRepository) LockRow(
	ctx context.Context,
	kind record.Kind,
	id uint,
	mode record.LockMode,
) error {
	model, ok := tableFor(kind)
	if !ok {
		return errors.Errorf("lock row: unknown kind %q", kind)
	}

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(model).
		Clauses(clause.Locking{Strength: string(mode)}).
		Where("id = ?", id).
		Limit(1).
		Pluck("id", &ids).Error; err != nil {
		return translate(err, "lock row")
	}

	if len(ids) == 0 {
		return record.ErrNotFound
	}
	return nil
}

func (r *RecordGormRepository) HasOpenVisit(
	ctx context.Context,
	kind record.Kind,
	id uint,
) (bool, error) {
	col, ok := kind.VisitColumn()
	if !ok {
		return false, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Visit{}).
		Where(col+" = ? AND status = ?", id, string(record.StatusOpen)).
		Count(&count).Error; err != nil {
		return false, translate(err, "has open visit")
	}

	return count > 0, nil
}

// --------------------------------------------------
// Clinic
// --------------------------------------------------

func (r *RecordGormRepository) CreateClinic(ctx context.Context, c *models.Clinic) error {
	return r.create(ctx, c, "create clinic")
}

func (r *RecordGormRepository) GetClinic(ctx context.Context, id uint) (*models.Clinic, error) {
	return first[models.Clinic](ctx, r.db, "get clinic", id)
}

func (r *RecordGormRepository) SaveClinic(ctx context.Context, c *models.Clinic) error {
	return r.save(ctx, c, "save clinic")
}

func (r *RecordGormRepository) ListActiveClinics(ctx context.Context) ([]models.Clinic, error) {
	return activeList[models.Clinic](ctx, r.db, "list clinics")
}

// --------------------------------------------------
// Tutor
// --------------------------------------------------

func (r *RecordGormRepository) CreateTutor(ctx context.Context, t *models.Tutor) error {
	return r.create(ctx, t, "create tutor")
}

func (r *RecordGormRepository) GetTutor(ctx context.Context, id uint) (*models.Tutor, error) {
	var t models.Tutor
	if err := r.db.WithContext(ctx).
		Preload("Animals", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&t, id).Error; err != nil {
		return nil, translate(err, "get tutor")
	}
	return &t, nil
}

func (r *RecordGormRepository) SaveTutor(ctx context.Context, t *models.Tutor) error {
	return r.save(ctx, t, "save tutor")
}

func (r *RecordGormRepository) ListActiveTutors(ctx context.Context) ([]models.Tutor, error) {
	return activeList[models.Tutor](ctx, r.db, "list tutors")
}

func (r *RecordGormRepository) ActiveTutorByNationalID(
	ctx context.Context,
	nationalID string,
) (*models.Tutor, error) {

	var t models.Tutor
	if err := r.db.WithContext(ctx).
		Where("national_id = ? AND active = ?", nationalID, true).
		First(&t).Error; err != nil {
		return nil, translate(err, "tutor by national id")
	}
	return &t, nil
}

// --------------------------------------------------
// Veterinarian
// --------------------------------------------------

func (r *RecordGormRepository) CreateVeterinarian(ctx context.Context, v *models.Veterinarian) error {
	return r.create(ctx, v, "create veterinarian")
}

func (r *RecordGormRepository) GetVeterinarian(ctx context.Context, id uint) (*models.Veterinarian, error) {
	return first[models.Veterinarian](ctx, r.db, "get veterinarian", id)
}

func (r *RecordGormRepository) SaveVeterinarian(ctx context.Context, v *models.Veterinarian) error {
	return r.save(ctx, v, "save veterinarian")
}

func (r *RecordGormRepository) ListActiveVeterinarians(ctx context.Context) ([]models.Veterinarian, error) {
	return activeList[models.Veterinarian](ctx, r.db, "list veterinarians")
}

func (r *RecordGormRepository) ActiveVeterinarianByLicense(
	ctx context.Context,
	license string,
) (*models.Veterinarian, error) {

	var v models.Veterinarian
	if err := r.db.WithContext(ctx).
		Where("license_number = ? AND active = ?", license, true).
		First(&v).Error; err != nil {
		return nil, translate(err, "veterinarian by license")
	}
	return &v, nil
}

// --------------------------------------------------
// Animal
// --------------------------------------------------

func (r *RecordGormRepository) CreateAnimal(ctx context.Context, a *models.Animal) error {
	return r.create(ctx, a, "create animal")
}

func (r *RecordGormRepository) GetAnimal(ctx context.Context, id uint) (*models.Animal, error) {
	var a models.Animal
	if err := r.db.WithContext(ctx).
		Preload("Tutor").
		First(&a, id).Error; err != nil {
		return nil, translate(err, "get animal")
	}
	return &a, nil
}

func (r *RecordGormRepository) SaveAnimal(ctx context.Context, a *models.Animal) error {
	return r.save(ctx, a, "save animal")
}

func (r *RecordGormRepository) ListActiveAnimals(ctx context.Context) ([]models.Animal, error) {
	return activeList[models.Animal](ctx, r.db, "list animals")
}

func (r *RecordGormRepository) ListAnimalsByTutor(ctx context.Context, tutorID uint) ([]models.Animal, error) {
	var out []models.Animal
	if err := r.db.WithContext(ctx).
		Preload("Tutor").
		Where("tutor_id = ?", tutorID).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, translate(err, "list animals by tutor")
	}
	return out, nil
}

// --------------------------------------------------
// Visit
// --------------------------------------------------

func (r *RecordGormRepository) withVisitRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Clinic").
		Preload("Veterinarian").
		Preload("Tutor").
		Preload("Animal")
}

func (r *RecordGormRepository) CreateVisit(ctx context.Context, v *models.Visit) error {
	return r.create(ctx, v, "create visit")
}

func (r *RecordGormRepository) GetVisit(ctx context.Context, id uint) (*models.Visit, error) {
	var v models.Visit
	if err := r.withVisitRelations(ctx).First(&v, id).Error; err != nil {
		return nil, translate(err, "get visit")
	}
	return &v, nil
}

func (r *RecordGormRepository) SaveVisit(ctx context.Context, v *models.Visit) error {
	return r.save(ctx, v, "save visit")
}

func (r *RecordGormRepository) ListVisits(
	ctx context.Context,
	filter record.VisitFilter,
) ([]models.Visit, error) {

	q := r.withVisitRelations(ctx)

	if !filter.IncludeClosed {
		q = q.Where("status = ?", string(record.StatusOpen))
	}
	if filter.Kind != "" {
		col, ok := filter.Kind.VisitColumn()
		if !ok {
			return nil, errors.Errorf("list visits: unknown filter %q", filter.Kind)
		}
		q = q.Where(col+" = ?", filter.ID)
	}

	var out []models.Visit
	if err := q.Order("id ASC").Find(&out).Error; err != nil {
		return nil, translate(err, "list visits")
	}
	return out, nil
}

// --------------------------------------------------
// Credential
// --------------------------------------------------

func (r *RecordGormRepository) CreateCredential(ctx context.Context, c *models.Credential) error {
	return r.create(ctx, c, "create credential")
}

func (r *RecordGormRepository) GetCredential(ctx context.Context, id uint) (*models.Credential, error) {
	return first[models.Credential](ctx, r.db, "get credential", id)
}

func (r *RecordGormRepository) SaveCredential(ctx context.Context, c *models.Credential) error {
	return r.save(ctx, c, "save credential")
}

func (r *RecordGormRepository) ListActiveCredentials(ctx context.Context) ([]models.Credential, error) {
	return activeList[models.Credential](ctx, r.db, "list credentials")
}

// CredentialByLogin compara o login exatamente (case-sensitive).
func (r *RecordGormRepository) CredentialByLogin(
	ctx context.Context,
	login string,
) (*models.Credential, error) {

	var c models.Credential
	if err := r.db.WithContext(ctx).
		Where("login = ?", login).
		First(&c).Error; err != nil {
		return nil, translate(err, "credential by login")
	}
	return &c, nil
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

func (r *RecordGormRepository) CreateAuditLog(ctx context.Context, l *models.AuditLog) error {
	return translate(r.db.WithContext(ctx).Create(l).Error, "create audit log")
}

func (r *RecordGormRepository) ListAuditLogs(
	ctx context.Context,
	filter record.AuditFilter,
) ([]models.AuditLog, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.AuditLog{})
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if filter.Entity != "" {
		q = q.Where("entity = ?", filter.Entity)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count audit logs")
	}

	var logs []models.AuditLog
	q = q.Order("created_at DESC, id DESC").Offset(filter.Offset)
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.Find(&logs).Error; err != nil {
		return nil, 0, translate(err, "list audit logs")
	}

	return logs, total, nil
}

// Compile-time check
var _ record.Repository = (*RecordGormRepository)(nil)
