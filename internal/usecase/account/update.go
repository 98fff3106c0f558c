package account

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/dogvet-api/internal/audit"
	"github.com/BruksfildServices01/dogvet-api/internal/auth"
	"github.com/BruksfildServices01/dogvet-api/internal/domain/record"
	"github.com/BruksfildServices01/dogvet-api/internal/httperr"
	"github.com/BruksfildServices01/dogvet-api/internal/infra/lock"
	"github.com/BruksfildServices01/dogvet-api/internal/models"
	"github.com/BruksfildServices01/dogvet-api/internal/usecase/registry"
)

// authorize: funcionário mexe em qualquer credencial, cliente só na própria.
// A posse é pelo id: o login do token pode ter sido renomeado e reaproveitado.
func authorize(actor auth.Identity, cred *models.Credential) error {
	if actor.Role == auth.RoleStaff || (actor.CredentialID != 0 && actor.CredentialID == cred.ID) {
		return nil
	}
	return httperr.ErrForbidden("forbidden", "Você não tem permissão para alterar este usuário.")
}

type UpdateInput struct {
	Login   *string
	Secret  *string
	IsStaff *bool
}

type UpdateCredential struct {
	repo    record.Repository
	locks   lock.Locker
	secrets auth.SecretMatcher
	audit   *audit.Dispatcher
}

func NewUpdateCredential(
	repo record.Repository,
	locks lock.Locker,
	secrets auth.SecretMatcher,
	audit *audit.Dispatcher,
) *UpdateCredential {
	return &UpdateCredential{
		repo:    repo,
		locks:   locks,
		secrets: secrets,
		audit:   audit,
	}
}

func (uc *UpdateCredential) Execute(
	ctx context.Context,
	actor auth.Identity,
	id uint,
	in UpdateInput,
) (*models.Credential, error) {

	var login, stored string

	if in.Login != nil {
		login = strings.TrimSpace(*in.Login)
		if login == "" {
			return nil, httperr.ErrInvalidInput("invalid_credential", "O login não pode ser vazio.")
		}
	}

	if in.Secret != nil {
		if *in.Secret == "" {
			return nil, httperr.ErrInvalidInput("invalid_credential", "A senha não pode ser vazia.")
		}
		var err error
		if stored, err = uc.secrets.Hash(*in.Secret); err != nil {
			return nil, err
		}
	}

	var cred *models.Credential

	update := func() error {
		return uc.repo.Transaction(ctx, func(tx record.Repository) error {
			if err := tx.LockRow(ctx, record.KindCredential, id, record.LockUpdate); err != nil {
				return translate(err)
			}

			c, err := tx.GetCredential(ctx, id)
			if err != nil {
				return translate(err)
			}
			if err := authorize(actor, c); err != nil {
				return err
			}

			if in.IsStaff != nil && *in.IsStaff != c.IsStaff && actor.Role != auth.RoleStaff {
				return httperr.ErrForbidden("forbidden", "Somente funcionários podem alterar o perfil de acesso.")
			}

			if in.Secret != nil {
				c.Secret = stored
			}
			if in.IsStaff != nil {
				c.IsStaff = *in.IsStaff
			}

			if login != "" && login != c.Login {
				// unicidade desconsiderando o próprio registro
				if err := ensureLoginFree(ctx, tx, login, c.ID); err != nil {
					return err
				}
				c.Login = login
			}

			if err := tx.SaveCredential(ctx, c); err != nil {
				return translate(err)
			}
			cred = c
			return nil
		})
	}

	var err error
	if login != "" {
		err = withLoginKey(ctx, uc.locks, login, update)
	} else {
		err = update()
	}
	if err != nil {
		return nil, err
	}

	uc.dispatch(ctx, cred)
	return cred, nil
}

// withLoginKey serializa quem disputa o mesmo login.
func withLoginKey(ctx context.Context, locks lock.Locker, login string, fn func() error) error {
	release, err := locks.Acquire(ctx, loginKey(login))
	if err != nil {
		return err
	}
	defer release()

	return fn()
}

func (uc *UpdateCredential) dispatch(ctx context.Context, cred *models.Credential) {
	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorFrom(ctx),
		Action:   "credential_updated",
		Entity:   string(record.KindCredential),
		EntityID: &cred.ID,
	})
}

// ======================================================
// DEACTIVATE
// ======================================================

type DeactivateCredential struct {
	repo       record.Repository
	deactivate *registry.DeactivateRecord
}

func NewDeactivateCredential(
	repo record.Repository,
	deactivate *registry.DeactivateRecord,
) *DeactivateCredential {
	return &DeactivateCredential{
		repo:       repo,
		deactivate: deactivate,
	}
}

func (uc *DeactivateCredential) Execute(
	ctx context.Context,
	actor auth.Identity,
	id uint,
) error {

	cred, err := uc.repo.GetCredential(ctx, id)
	if err != nil {
		return translate(err)
	}
	if err := authorize(actor, cred); err != nil {
		return err
	}

	return uc.deactivate.Execute(ctx, record.KindCredential, id)
}

// ======================================================
// READ
// ======================================================

type Reader struct {
	repo record.Repository
}

func NewReader(repo record.Repository) *Reader {
	return &Reader{repo: repo}
}

func (r *Reader) Get(ctx context.Context, actor auth.Identity, id uint) (*models.Credential, error) {
	cred, err := r.repo.GetCredential(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if err := authorize(actor, cred); err != nil {
		return nil, err
	}
	return cred, nil
}

// List: funcionário vê todas as ativas, cliente só a própria.
func (r *Reader) List(ctx context.Context, actor auth.Identity) ([]models.Credential, error) {
	all, err := r.repo.ListActiveCredentials(ctx)
	if err != nil {
		return nil, err
	}
	if actor.Role == auth.RoleStaff {
		return all, nil
	}

	out := make([]models.Credential, 0, 1)
	for _, c := range all {
		if c.ID == actor.CredentialID {
			out = append(out, c)
		}
	}
	return out, nil
}

// Me devolve a credencial de quem está autenticado.
func (r *Reader) Me(ctx context.Context, actor auth.Identity) (*models.Credential, error) {
	cred, err := r.repo.GetCredential(ctx, actor.CredentialID)
	if err != nil {
		return nil, translate(err)
	}
	if !cred.Active {
		return nil, translate(record.ErrNotFound)
	}
	return cred, nil
}
