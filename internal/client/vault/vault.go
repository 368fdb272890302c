// Package vault keeps short secrets (session token, profile JSON) encrypted
// at rest in the client key-value store.
//
// A blob that cannot be decrypted (tampered, truncated, or sealed under a
// different secret) is reported as a miss, never as an error. Retrieve logs
// one warning per unreadable entry.
package vault

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/educloud/internal/client/repositories/kv"
	"github.com/dmitrijs2005/educloud/internal/common"
	"github.com/dmitrijs2005/educloud/internal/cryptox"
	"github.com/dmitrijs2005/educloud/internal/logging"
)

type Vault struct {
	cipher *cryptox.VaultCipher
	repo   kv.Repository
	log    logging.Logger
}

func New(cipher *cryptox.VaultCipher, repo kv.Repository, log logging.Logger) *Vault {
	if log == nil {
		log = logging.Discard()
	}
	return &Vault{cipher: cipher, repo: repo, log: log}
}

// WithRepository returns a Vault sharing the cipher but writing to repo,
// typically a repository bound to an open transaction.
func (v *Vault) WithRepository(repo kv.Repository) *Vault {
	return &Vault{cipher: v.cipher, repo: repo, log: v.log}
}

func (v *Vault) Encrypt(plain string) (string, error) {
	if v.cipher == nil {
		return "", fmt.Errorf("%w: vault cipher is not configured", common.ErrEncryption)
	}
	return v.cipher.Seal([]byte(plain))
}

// Decrypt returns ("", false) for any blob that does not open.
func (v *Vault) Decrypt(blob string) (string, bool) {
	plain, err := v.open(blob)
	return plain, err == nil
}

func (v *Vault) open(blob string) (string, error) {
	if v.cipher == nil {
		return "", fmt.Errorf("%w: vault cipher is not configured", common.ErrEncryption)
	}
	if blob == "" {
		return "", fmt.Errorf("%w: empty vault blob", common.ErrEncryption)
	}
	pt, err := v.cipher.Open(blob)
	if err != nil {
		return "", err
	}
	return string(pt), nil
}

func (v *Vault) Store(ctx context.Context, key, plain string) error {
	blob, err := v.Encrypt(plain)
	if err != nil {
		return err
	}
	if err := v.repo.Set(ctx, key, []byte(blob)); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return nil
}

// Retrieve reports found=false when the key is absent or its blob is
// undecryptable. err is only set for store failures.
func (v *Vault) Retrieve(ctx context.Context, key string) (string, bool, error) {
	raw, err := v.repo.Get(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	if raw == nil {
		return "", false, nil
	}
	plain, err := v.open(string(raw))
	if err != nil {
		v.log.Warn(ctx, "vault entry unreadable, treated as missing", "key", key, "error", err)
		return "", false, nil
	}
	return plain, true, nil
}

func (v *Vault) Remove(ctx context.Context, key string) error {
	if err := v.repo.Delete(ctx, key); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return nil
}
