package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/dogvet-api/internal/domain/record"
	"github.com/BruksfildServices01/dogvet-api/internal/models"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil, "get tutor"))

	// gorm costuma embrulhar o not found
	notFound := fmt.Errorf("first: %w", gorm.ErrRecordNotFound)
	assert.Equal(t, record.ErrNotFound, translate(notFound, "get tutor"))

	dup := &pgconn.PgError{Code: uniqueViolation, ConstraintName: "ux_tutors_national_id_active"}
	err := translate(fmt.Errorf("insert: %w", dup), "create tutor")
	assert.ErrorIs(t, err, record.ErrDuplicate)
	assert.Contains(t, err.Error(), "ux_tutors_national_id_active")

	// outras violações não viram conflito
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "fk_animals_tutor"}
	err = translate(fk, "create animal")
	assert.NotErrorIs(t, err, record.ErrDuplicate)
	assert.Contains(t, err.Error(), "create animal")

	boom := errors.New("connection reset")
	err = translate(boom, "save visit")
	assert.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "save visit: connection reset")
	assert.NotErrorIs(t, err, record.ErrNotFound)
}

func TestTableFor(t *testing.T) {
	cases := map[record.Kind]any{
		record.KindClinic:       &models.Clinic{},
		record.KindTutor:        &models.Tutor{},
		record.KindVeterinarian: &models.Veterinarian{},
		record.KindAnimal:       &models.Animal{},
		record.KindVisit:        &models.Visit{},
		record.KindCredential:   &models.Credential{},
	}

	for kind, want := range cases {
		got, ok := tableFor(kind)
		assert.True(t, ok, kind)
		assert.IsType(t, want, got, kind)
	}

	_, ok := tableFor(record.Kind("boleto"))
	assert.False(t, ok)
}

func TestLockRow_UnknownKind(t *testing.T) {
	repo := NewRecordGormRepository(nil)

	err := repo.LockRow(context.Background(), record.Kind("boleto"), 1, record.LockUpdate)
	assert.ErrorContains(t, err, "unknown kind")
}
