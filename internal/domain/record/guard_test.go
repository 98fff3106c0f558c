package record

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFinder struct {
	open  map[Kind]map[uint]bool
	err   error
	calls int
}

func (f *fakeFinder) HasOpenVisit(_ context.Context, kind Kind, id uint) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.open[kind][id], nil
}

func TestGuard_BlocksWhenOpenVisitReferences(t *testing.T) {
	finder := &fakeFinder{open: map[Kind]map[uint]bool{
		KindTutor: {7: true},
	}}
	guard := NewGuard(finder)

	d, err := guard.CanDeactivate(context.Background(), KindTutor, 7)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "tutor")

	d, err = guard.CanDeactivate(context.Background(), KindTutor, 8)
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	d, err = guard.CanDeactivate(context.Background(), KindAnimal, 7)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestGuard_KindsWithoutDependentsSkipLookup(t *testing.T) {
	finder := &fakeFinder{err: errors.New("should not be called")}
	guard := NewGuard(finder)

	d, err := guard.CanDeactivate(context.Background(), KindCredential, 1)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Zero(t, finder.calls)
}

func TestGuard_PropagatesStoreFailure(t *testing.T) {
	guard := NewGuard(&fakeFinder{err: errors.New("store down")})

	_, err := guard.CanDeactivate(context.Background(), KindClinic, 1)
	assert.Error(t, err)
}

func TestKind_VisitColumn(t *testing.T) {
	col, ok := KindVeterinarian.VisitColumn()
	assert.True(t, ok)
	assert.Equal(t, "veterinarian_id", col)

	_, ok = KindVisit.VisitColumn()
	assert.False(t, ok)
}
