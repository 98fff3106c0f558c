package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/dogvet-api/internal/httperr"
	"github.com/BruksfildServices01/dogvet-api/internal/models"
)

func TestDeactivate_OnlyFromActive(t *testing.T) {
	now := time.Date(2022, 7, 25, 10, 0, 0, 0, time.UTC)
	tutor := &models.Tutor{ID: 1, Name: "André", Active: true}

	require.NoError(t, Deactivate(KindTutor, tutor, now))
	assert.False(t, tutor.Active)
	require.NotNil(t, tutor.DeactivatedAt)
	assert.Equal(t, now, *tutor.DeactivatedAt)

	err := Deactivate(KindTutor, tutor, now.Add(time.Minute))
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "already_inactive"))
	assert.Equal(t, now, *tutor.DeactivatedAt)
}

func TestDeactivate_EveryPrimaryKind(t *testing.T) {
	now := time.Now()
	records := map[Kind]Deactivatable{
		KindClinic:       &models.Clinic{Active: true},
		KindTutor:        &models.Tutor{Active: true},
		KindVeterinarian: &models.Veterinarian{Active: true},
		KindAnimal:       &models.Animal{Active: true},
		KindCredential:   &models.Credential{Active: true},
	}

	for kind, rec := range records {
		require.NoError(t, Deactivate(kind, rec, now), kind)

		kindOf, ok := httperr.KindOf(Deactivate(kind, rec, now))
		assert.True(t, ok, kind)
		assert.Equal(t, httperr.KindConflict, kindOf, kind)
	}
}

func TestFinalize_OpenIsTerminalOnce(t *testing.T) {
	now := time.Now()
	visit := &models.Visit{ID: 1, Status: string(InitialVisitStatus())}

	require.NoError(t, Finalize(visit, now))
	assert.Equal(t, string(StatusFinalized), visit.Status)
	require.NotNil(t, visit.FinalizedAt)

	err := Finalize(visit, now)
	assert.True(t, httperr.IsBusiness(err, "already_finalized"))
	assert.Equal(t, string(StatusFinalized), visit.Status)
}

func TestCanFinalize_RejectsUnknownStatus(t *testing.T) {
	assert.Error(t, CanFinalize(Status("cancelled")))
	assert.NoError(t, CanFinalize(StatusOpen))
}
