package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/educloud/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
)

const (
	vaultVersion   byte = 1
	vaultSaltSize       = 16
	vaultNonceSize      = 12
	vaultKeySize        = 32
)

var (
	vaultMasterSalt = []byte("educloud.client.vault.master")
	vaultInfo       = []byte("educloud vault v1")
)

// DeriveMasterKey stretches a low-entropy secret into a 32-byte key with
// Argon2id.
func DeriveMasterKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, vaultKeySize)
}

// VaultCipher seals short strings for client-side persistence. Each blob gets
// a fresh salt, from which an AES-256-GCM key is derived with HKDF over the
// Argon2id master key, and a fresh nonce.
//
// Blob layout, base64 (std) encoded:
//
//	version(1) | salt(16) | nonce(12) | ciphertext || tag(16)
//
// The GCM tag means a blob sealed under another secret fails to open instead
// of decrypting to garbage.
type VaultCipher struct {
	master []byte
}

// NewVaultCipher derives the master key once; the secret itself is not kept.
func NewVaultCipher(secret string) (*VaultCipher, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: vault secret is required", common.ErrConfiguration)
	}
	return &VaultCipher{master: DeriveMasterKey([]byte(secret), vaultMasterSalt)}, nil
}

func (c *VaultCipher) aead(salt []byte) (cipher.AEAD, error) {
	key := make([]byte, vaultKeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, c.master, salt, vaultInfo), key); err != nil {
		return nil, err
	}
	defer common.WipeByteArray(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext into a self-describing blob.
func (c *VaultCipher) Seal(plaintext []byte) (string, error) {
	salt := common.GenerateRandByteArray(vaultSaltSize)
	aesgcm, err := c.aead(salt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrEncryption, err)
	}
	nonce := common.GenerateRandByteArray(vaultNonceSize)

	out := make([]byte, 0, 1+vaultSaltSize+vaultNonceSize+len(plaintext)+aesgcm.Overhead())
	out = append(out, vaultVersion)
	out = append(out, salt...)
	out = append(out, nonce...)
	out = aesgcm.Seal(out, nonce, plaintext, []byte{vaultVersion})

	return base64.StdEncoding.EncodeToString(out), nil
}

var errShortBlob = errors.New("blob too short")

// Open decrypts a blob produced by Seal. Every failure, including a blob
// sealed under a different secret, wraps ErrStorageCorruption.
func (c *VaultCipher) Open(blob string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageCorruption, err)
	}
	if len(raw) < 1+vaultSaltSize+vaultNonceSize+16 {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageCorruption, errShortBlob)
	}
	if raw[0] != vaultVersion {
		return nil, fmt.Errorf("%w: unknown blob version %d", common.ErrStorageCorruption, raw[0])
	}

	salt := raw[1 : 1+vaultSaltSize]
	nonce := raw[1+vaultSaltSize : 1+vaultSaltSize+vaultNonceSize]
	ct := raw[1+vaultSaltSize+vaultNonceSize:]

	aesgcm, err := c.aead(salt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageCorruption, err)
	}
	pt, err := aesgcm.Open(nil, nonce, ct, []byte{vaultVersion})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageCorruption, err)
	}
	return pt, nil
}
