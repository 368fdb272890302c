// Package envelope prepares protected auth payloads and owns the local
// session state that results from them.
//
// An Envelope is built once at startup from validated key material and
// shared by every auth call. Passwords are RSA-encrypted and paired with a
// fresh nonce before they leave the process. Session state is written as
// two copies, encrypted (vault keys) and plain (legacy keys), inside one
// SQLite transaction so the copies cannot diverge.
package envelope

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/educloud/internal/client/models"
	"github.com/dmitrijs2005/educloud/internal/client/repositories/kv"
	"github.com/dmitrijs2005/educloud/internal/client/vault"
	"github.com/dmitrijs2005/educloud/internal/common"
	"github.com/dmitrijs2005/educloud/internal/dbx"
	"github.com/dmitrijs2005/educloud/internal/logging"
	"github.com/go-playground/validator/v10"
)

// Encryptor turns a plaintext password into transportable ciphertext.
// *cryptox.RSAEncryptor satisfies it.
type Encryptor interface {
	Encrypt(plaintext string) (string, error)
}

// NonceSource yields per-request nonces. *nonce.Generator satisfies it.
type NonceSource interface {
	Next() string
}

type Envelope struct {
	enc      Encryptor
	nonces   NonceSource
	vault    *vault.Vault
	db       *sql.DB
	repo     kv.Repository
	validate *validator.Validate
	log      logging.Logger
}

// New wires an Envelope. v must be bound to a repository over db.
func New(enc Encryptor, nonces NonceSource, v *vault.Vault, db *sql.DB, log logging.Logger) *Envelope {
	if log == nil {
		log = logging.Discard()
	}
	return &Envelope{
		enc:      enc,
		nonces:   nonces,
		vault:    v,
		db:       db,
		repo:     kv.NewSQLiteRepository(db),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

func (e *Envelope) encryptPassword(password string) (string, error) {
	ct, err := e.enc.Encrypt(password)
	if err != nil {
		return "", fmt.Errorf("encrypt password: %w", err)
	}
	return ct, nil
}

// PrepareLogin builds the login payload. The email is passed through
// untouched.
func (e *Envelope) PrepareLogin(email, password string) (*models.LoginRequest, error) {
	ct, err := e.encryptPassword(password)
	if err != nil {
		return nil, err
	}
	return &models.LoginRequest{
		Email:    email,
		Password: ct,
		Nonce:    e.nonces.Next(),
	}, nil
}

// PrepareRegister validates the profile fields and builds the register
// payload. Validation failures wrap common.ErrValidation and happen before
// any encryption.
func (e *Envelope) PrepareRegister(fields models.RegisterFields, password string) (*models.RegisterRequest, error) {
	if err := e.validate.Struct(fields); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	ct, err := e.encryptPassword(password)
	if err != nil {
		return nil, err
	}

	return &models.RegisterRequest{
		Nombre:    fields.Nombre,
		Apellido1: fields.Apellido1,
		Apellido2: fields.Apellido2,
		Email:     fields.Email,
		Password:  ct,
		UserType:  fields.UserType,
		Nonce:     e.nonces.Next(),
	}, nil
}

// PersistSession writes the vault and plain copies of the session. Either
// all four keys are written or none is.
func (e *Envelope) PersistSession(ctx context.Context, s models.Session) error {
	userJSON, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("%w: marshal user: %v", common.ErrStorage, err)
	}

	err = dbx.WithTx(ctx, e.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)
		secure := e.vault.WithRepository(repo)

		if err := secure.Store(ctx, common.VaultTokenKey, s.Token); err != nil {
			return err
		}
		if err := secure.Store(ctx, common.VaultUserKey, string(userJSON)); err != nil {
			return err
		}
		if err := repo.Set(ctx, common.PlainTokenKey, []byte(s.Token)); err != nil {
			return err
		}
		return repo.Set(ctx, common.PlainUserKey, userJSON)
	})
	if err != nil {
		e.log.Error(ctx, "persist session failed", "error", err)
		return fmt.Errorf("%w: persist session: %w", common.ErrStorage, err)
	}

	e.log.Debug(ctx, "session persisted", "user_id", s.User.ID)
	return nil
}

// ClearSession removes every session key. Clearing an empty store succeeds.
func (e *Envelope) ClearSession(ctx context.Context) error {
	err := dbx.WithTx(ctx, e.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return kv.NewSQLiteRepository(tx).Delete(ctx, common.SessionKeys...)
	})
	if err != nil {
		e.log.Error(ctx, "clear session failed", "error", err)
		return fmt.Errorf("%w: clear session: %w", common.ErrStorage, err)
	}
	return nil
}

// Token returns the plain session token, or "" when there is none.
func (e *Envelope) Token(ctx context.Context) (string, error) {
	raw, err := e.repo.Get(ctx, common.PlainTokenKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return string(raw), nil
}

// CurrentUser returns the plain cached profile. A missing or malformed
// value yields (nil, nil).
func (e *Envelope) CurrentUser(ctx context.Context) (*models.Profile, error) {
	raw, err := e.repo.Get(ctx, common.PlainUserKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return e.decodeUser(ctx, raw), nil
}

// SecureToken returns the vault copy of the session token.
func (e *Envelope) SecureToken(ctx context.Context) (string, bool, error) {
	return e.vault.Retrieve(ctx, common.VaultTokenKey)
}

// SecureUser returns the vault copy of the profile.
func (e *Envelope) SecureUser(ctx context.Context) (*models.Profile, bool, error) {
	s, ok, err := e.vault.Retrieve(ctx, common.VaultUserKey)
	if err != nil || !ok {
		return nil, false, err
	}
	p := e.decodeUser(ctx, []byte(s))
	return p, p != nil, nil
}

// IsAuthenticated reports whether a plain session token is present. Store
// failures count as no session.
func (e *Envelope) IsAuthenticated(ctx context.Context) bool {
	token, err := e.Token(ctx)
	if err != nil {
		e.log.Warn(ctx, "session lookup failed", "error", err)
		return false
	}
	return token != ""
}

func (e *Envelope) decodeUser(ctx context.Context, raw []byte) *models.Profile {
	var p models.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		e.log.Warn(ctx, "cached user is not valid JSON, ignoring", "error", err)
		return nil
	}
	return &p
}
