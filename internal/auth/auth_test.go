package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/dogvet-api/internal/httperr"
	"github.com/BruksfildServices01/dogvet-api/internal/infra/repository/memory"
	"github.com/BruksfildServices01/dogvet-api/internal/models"
)

func testIssuer(t *testing.T, now *time.Time) *Issuer {
	t.Helper()

	iss, err := NewIssuer(IssuerConfig{
		Secret:   "test_signing_key_long_enough_for_hs256",
		Issuer:   "dogvetapi.com",
		Audience: "usuario_comun",
		TTL:      time.Hour,
	})
	require.NoError(t, err)

	return iss.WithClock(func() time.Time { return *now })
}

func TestIssuer_RoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)
	iss := testIssuer(t, &now)

	tok, err := iss.Issue(Identity{CredentialID: 7, Login: "funcionario@gft.com", Role: RoleStaff})
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), tok.ExpiresAt)

	claims, err := iss.Parse(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.CredentialID())
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, "funcionario@gft.com", claims.Login)
	assert.Equal(t, RoleStaff, claims.Role)
	assert.Equal(t, "dogvetapi.com", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestIssuer_ExpiryBoundary(t *testing.T) {
	issued := time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)
	now := issued
	iss := testIssuer(t, &now)

	tok, err := iss.Issue(Identity{CredentialID: 2, Login: "cliente@gft.com", Role: RoleClient})
	require.NoError(t, err)

	now = issued.Add(time.Hour)
	_, err = iss.Parse(tok.Value)
	assert.NoError(t, err, "token must still be valid at exactly T+1h")

	now = issued.Add(time.Hour + time.Millisecond)
	_, err = iss.Parse(tok.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_RejectsForeignTokens(t *testing.T) {
	now := time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)
	iss := testIssuer(t, &now)

	other, err := NewIssuer(IssuerConfig{
		Secret:   "another_key",
		Issuer:   "dogvetapi.com",
		Audience: "usuario_comun",
		TTL:      time.Hour,
	})
	require.NoError(t, err)
	other = other.WithClock(func() time.Time { return now })

	tok, err := other.Issue(Identity{CredentialID: 1, Login: "x", Role: RoleStaff})
	require.NoError(t, err)

	_, err = iss.Parse(tok.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// audience diferente
	claims := Claims{
		Login: "x",
		Role:  RoleStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "dogvetapi.com",
			Audience:  jwt.ClaimStrings{"outro"},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test_signing_key_long_enough_for_hs256"))
	require.NoError(t, err)

	_, err = iss.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// sem sub não há dono
	claims.Audience = jwt.ClaimStrings{"usuario_comun"}
	raw, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test_signing_key_long_enough_for_hs256"))
	require.NoError(t, err)

	_, err = iss.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = iss.Parse("clearly-not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewIssuer_RequiresSecret(t *testing.T) {
	_, err := NewIssuer(IssuerConfig{TTL: time.Hour})
	assert.Error(t, err)
}

func TestRoleFor(t *testing.T) {
	assert.Equal(t, RoleStaff, RoleFor(true))
	assert.Equal(t, RoleClient, RoleFor(false))
	assert.Equal(t, Role("Funcionario"), RoleStaff)
	assert.Equal(t, Role("Cliente"), RoleClient)
}

func TestSecretMatchers(t *testing.T) {
	plain := NewSecretMatcher("plaintext")
	stored, err := plain.Hash("cliente")
	require.NoError(t, err)
	assert.Equal(t, "cliente", stored)
	assert.True(t, plain.Match(stored, "cliente"))
	assert.False(t, plain.Match(stored, "Cliente"))

	hashed := BcryptMatcher{Cost: 4}
	stored, err = hashed.Hash("cliente")
	require.NoError(t, err)
	assert.NotEqual(t, "cliente", stored)
	assert.True(t, hashed.Match(stored, "cliente"))
	assert.False(t, hashed.Match(stored, "errada"))
}

func TestVerifier(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	require.NoError(t, store.CreateCredential(ctx, &models.Credential{
		Login: "funcionario@gft.com", Secret: "funcionario", IsStaff: true, Active: true,
	}))
	require.NoError(t, store.CreateCredential(ctx, &models.Credential{
		Login: "cliente@gft.com", Secret: "cliente", Active: true,
	}))
	require.NoError(t, store.CreateCredential(ctx, &models.Credential{
		Login: "antigo@gft.com", Secret: "antigo", Active: false,
	}))

	v := NewVerifier(store, PlaintextMatcher{})

	id, err := v.Verify(ctx, "funcionario@gft.com", "funcionario")
	require.NoError(t, err)
	assert.Equal(t, RoleStaff, id.Role)

	id, err = v.Verify(ctx, "cliente@gft.com", "cliente")
	require.NoError(t, err)
	assert.Equal(t, RoleClient, id.Role)

	_, wrongSecret := v.Verify(ctx, "cliente@gft.com", "nope")
	_, unknown := v.Verify(ctx, "ninguem@gft.com", "cliente")
	_, wrongCase := v.Verify(ctx, "Cliente@gft.com", "cliente")
	_, inactive := v.Verify(ctx, "antigo@gft.com", "antigo")

	for _, err := range []error{wrongSecret, unknown, wrongCase, inactive} {
		require.Error(t, err)
		kind, ok := httperr.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, httperr.KindUnauthorized, kind)
		assert.Equal(t, wrongSecret.Error(), err.Error())
	}
}
