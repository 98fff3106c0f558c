package account

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/dogvet-api/internal/audit"
	"github.com/BruksfildServices01/dogvet-api/internal/auth"
	"github.com/BruksfildServices01/dogvet-api/internal/domain/record"
	"github.com/BruksfildServices01/dogvet-api/internal/httperr"
	"github.com/BruksfildServices01/dogvet-api/internal/infra/lock"
	"github.com/BruksfildServices01/dogvet-api/internal/models"
)

func loginKey(login string) string {
	return "credential:login:" + login
}

func loginInUse() error {
	return httperr.ErrConflict("login_in_use", "Este login já está em uso.")
}

func ensureLoginFree(ctx context.Context, repo record.Repository, login string, selfID uint) error {
	other, err := repo.CredentialByLogin(ctx, login)
	if errors.Is(err, record.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if other.ID != selfID {
		return loginInUse()
	}
	return nil
}

func translate(err error) error {
	if errors.Is(err, record.ErrDuplicate) {
		return loginInUse()
	}
	return record.Translate(err, record.KindCredential, "login")
}

// ======================================================
// REGISTER
// ======================================================

type RegisterInput struct {
	Login   string
	Secret  string
	IsStaff bool
}

type Register struct {
	repo    record.Repository
	locks   lock.Locker
	secrets auth.SecretMatcher
	audit   *audit.Dispatcher
}

func NewRegister(
	repo record.Repository,
	locks lock.Locker,
	secrets auth.SecretMatcher,
	audit *audit.Dispatcher,
) *Register {
	return &Register{
		repo:    repo,
		locks:   locks,
		secrets: secrets,
		audit:   audit,
	}
}

func (uc *Register) Execute(
	ctx context.Context,
	in RegisterInput,
) (*models.Credential, error) {

	// login é case-sensitive: não normaliza caixa
	login := strings.TrimSpace(in.Login)
	if login == "" || in.Secret == "" {
		return nil, httperr.ErrInvalidInput("invalid_credential", "Login e senha são obrigatórios.")
	}

	stored, err := uc.secrets.Hash(in.Secret)
	if err != nil {
		return nil, err
	}

	cred := &models.Credential{
		Login:   login,
		Secret:  stored,
		IsStaff: in.IsStaff,
		Active:  true,
	}

	release, err := uc.locks.Acquire(ctx, loginKey(login))
	if err != nil {
		return nil, err
	}
	defer release()

	if err := ensureLoginFree(ctx, uc.repo, login, 0); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateCredential(ctx, cred); err != nil {
		return nil, translate(err)
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorFrom(ctx),
		Action:   "credential_created",
		Entity:   string(record.KindCredential),
		EntityID: &cred.ID,
		Metadata: map[string]any{"login": cred.Login, "is_staff": cred.IsStaff},
	})

	return cred, nil
}
