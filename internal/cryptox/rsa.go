package cryptox

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/educloud/internal/common"
)

// Padding selects the RSA encryption scheme used for password envelopes.
type Padding string

const (
	// PaddingPKCS1v15 is what JSEncrypt-based backends expect.
	PaddingPKCS1v15 Padding = "pkcs1v15"
	// PaddingOAEP is RSA-OAEP with SHA-256 and an empty label.
	PaddingOAEP Padding = "oaep"
)

// ParsePadding maps a config value to a Padding. Empty selects PKCS#1 v1.5.
func ParsePadding(s string) (Padding, error) {
	switch Padding(strings.ToLower(strings.TrimSpace(s))) {
	case "", PaddingPKCS1v15:
		return PaddingPKCS1v15, nil
	case PaddingOAEP:
		return PaddingOAEP, nil
	default:
		return "", fmt.Errorf("%w: unknown rsa padding %q", common.ErrConfiguration, s)
	}
}

// normalizePEM undoes the "\n" escaping that env files commonly apply to
// multi-line values.
func normalizePEM(s string) []byte {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, `\n`, "\n")
	return []byte(s)
}

// LoadRSAPublicKey parses a PEM encoded RSA public key in PKIX ("PUBLIC KEY")
// or PKCS#1 ("RSA PUBLIC KEY") form.
func LoadRSAPublicKey(pemText string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(normalizePEM(pemText))
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block in rsa public key", common.ErrConfiguration)
	}

	switch block.Type {
	case "PUBLIC KEY":
		pub, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: parse public key: %v", common.ErrConfiguration, err)
		}
		rsaPub, ok := pub.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: not an RSA public key", common.ErrConfiguration)
		}
		return rsaPub, nil
	case "RSA PUBLIC KEY":
		pub, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: parse public key: %v", common.ErrConfiguration, err)
		}
		return pub, nil
	default:
		return nil, fmt.Errorf("%w: unexpected PEM block %q", common.ErrConfiguration, block.Type)
	}
}

// LoadRSAPrivateKey parses a PEM encoded RSA private key in PKCS#1
// ("RSA PRIVATE KEY") or PKCS#8 ("PRIVATE KEY") form.
func LoadRSAPrivateKey(pemText string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(normalizePEM(pemText))
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block in rsa private key", common.ErrConfiguration)
	}

	switch block.Type {
	case "RSA PRIVATE KEY":
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: parse private key: %v", common.ErrConfiguration, err)
		}
		return key, nil
	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: parse private key: %v", common.ErrConfiguration, err)
		}
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: not an RSA private key", common.ErrConfiguration)
		}
		return rsaKey, nil
	default:
		return nil, fmt.Errorf("%w: unexpected PEM block %q", common.ErrConfiguration, block.Type)
	}
}

// GenerateRSAKeyPairPEM creates a key pair and returns the private key as
// PKCS#1 PEM and the public key as PKIX PEM.
func GenerateRSAKeyPairPEM(bits int) (privatePEM, publicPEM string, err error) {
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate RSA key pair: %w", err)
	}

	pubASN1, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal public key: %w", err)
	}

	privatePEM = string(pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}))
	publicPEM = string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubASN1}))
	return privatePEM, publicPEM, nil
}

// RSAEncryptor protects passwords for transport with the backend's public key.
// It holds no mutable state and is safe for concurrent use.
type RSAEncryptor struct {
	pub     *rsa.PublicKey
	padding Padding
}

// NewRSAEncryptor binds an encryptor to pub. A nil key is a configuration error.
func NewRSAEncryptor(pub *rsa.PublicKey, padding Padding) (*RSAEncryptor, error) {
	if pub == nil {
		return nil, fmt.Errorf("%w: rsa public key is required", common.ErrConfiguration)
	}
	if padding == "" {
		padding = PaddingPKCS1v15
	}
	return &RSAEncryptor{pub: pub, padding: padding}, nil
}

// MaxPayload is the largest plaintext, in bytes, the key and padding accept.
func (e *RSAEncryptor) MaxPayload() int {
	if e == nil || e.pub == nil {
		return 0
	}
	k := e.pub.Size()
	if e.padding == PaddingOAEP {
		return k - 2*sha256.Size - 2
	}
	return k - 11
}

// Encrypt returns the base64 ciphertext of plaintext. Oversized input is
// rejected with ErrEncryption rather than truncated.
func (e *RSAEncryptor) Encrypt(plaintext string) (string, error) {
	if e == nil || e.pub == nil {
		return "", fmt.Errorf("%w: rsa public key not loaded", common.ErrEncryption)
	}

	msg := []byte(plaintext)
	if limit := e.MaxPayload(); len(msg) > limit {
		return "", fmt.Errorf("%w: plaintext is %d bytes, key accepts at most %d", common.ErrEncryption, len(msg), limit)
	}

	var (
		ct  []byte
		err error
	)
	switch e.padding {
	case PaddingOAEP:
		ct, err = rsa.EncryptOAEP(sha256.New(), rand.Reader, e.pub, msg, nil)
	default:
		ct, err = rsa.EncryptPKCS1v15(rand.Reader, e.pub, msg)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrEncryption, err)
	}
	if len(ct) == 0 {
		return "", fmt.Errorf("%w: cipher returned no result", common.ErrEncryption)
	}

	return base64.StdEncoding.EncodeToString(ct), nil
}

// RSADecryptor is the server-side counterpart of RSAEncryptor.
type RSADecryptor struct {
	key     *rsa.PrivateKey
	padding Padding
}

func NewRSADecryptor(key *rsa.PrivateKey, padding Padding) (*RSADecryptor, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: rsa private key is required", common.ErrConfiguration)
	}
	if padding == "" {
		padding = PaddingPKCS1v15
	}
	return &RSADecryptor{key: key, padding: padding}, nil
}

// Decrypt reverses RSAEncryptor.Encrypt for the matching key and padding.
func (d *RSADecryptor) Decrypt(ciphertext string) (string, error) {
	ct, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: ciphertext is not base64", common.ErrEncryption)
	}

	var pt []byte
	switch d.padding {
	case PaddingOAEP:
		pt, err = rsa.DecryptOAEP(sha256.New(), rand.Reader, d.key, ct, nil)
	default:
		pt, err = rsa.DecryptPKCS1v15(rand.Reader, d.key, ct)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrEncryption, err)
	}
	return string(pt), nil
}
