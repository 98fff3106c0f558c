package account

import (
	"context"

	"github.com/BruksfildServices01/dogvet-api/internal/audit"
	"github.com/BruksfildServices01/dogvet-api/internal/auth"
	"github.com/BruksfildServices01/dogvet-api/internal/domain/record"
)

type LoginResult struct {
	Identity auth.Identity
	Token    auth.Token
}

type Login struct {
	verifier *auth.Verifier
	issuer   *auth.Issuer
	audit    *audit.Dispatcher
}

func NewLogin(
	verifier *auth.Verifier,
	issuer *auth.Issuer,
	audit *audit.Dispatcher,
) *Login {
	return &Login{
		verifier: verifier,
		issuer:   issuer,
		audit:    audit,
	}
}

func (uc *Login) Execute(
	ctx context.Context,
	login string,
	secret string,
) (*LoginResult, error) {

	id, err := uc.verifier.Verify(ctx, login, secret)
	if err != nil {
		return nil, err
	}

	tok, err := uc.issuer.Issue(id)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    id.Login,
		Action:   "login",
		Entity:   string(record.KindCredential),
		EntityID: &id.CredentialID,
	})

	return &LoginResult{Identity: id, Token: tok}, nil
}
