package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/BruksfildServices01/dogvet-api/internal/domain/record"
	"github.com/BruksfildServices01/dogvet-api/internal/httperr"
	"github.com/BruksfildServices01/dogvet-api/internal/models"
)

// Identity é quem passou pela verificação de credenciais.
type Identity struct {
	CredentialID uint
	Login        string
	Role         Role
}

type CredentialFinder interface {
	CredentialByLogin(ctx context.Context, login string) (*models.Credential, error)
}

type Verifier struct {
	creds   CredentialFinder
	secrets SecretMatcher
}

func NewVerifier(creds CredentialFinder, secrets SecretMatcher) *Verifier {
	return &Verifier{creds: creds, secrets: secrets}
}

// mesma resposta para login desconhecido, segredo errado e credencial inativa
func invalidCredentials() error {
	return httperr.ErrUnauthorized(
		"invalid_credentials",
		"Usuário ou senha inválidos.",
	)
}

// Verify compara o login exatamente (case-sensitive).
func (v *Verifier) Verify(ctx context.Context, login, secret string) (Identity, error) {
	cred, err := v.creds.CredentialByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			return Identity{}, invalidCredentials()
		}
		return Identity{}, fmt.Errorf("verify credential: %w", err)
	}

	if !v.secrets.Match(cred.Secret, secret) || !cred.Active {
		return Identity{}, invalidCredentials()
	}

	return Identity{
		CredentialID: cred.ID,
		Login:        cred.Login,
		Role:         RoleFor(cred.IsStaff),
	}, nil
}
