// Package cryptox holds the cryptographic primitives behind the EduCloud
// credential envelope:
//
//   - RSAEncryptor / RSADecryptor: password protection in transit
//     (PKCS#1 v1.5 or OAEP-SHA256), base64 ciphertext.
//   - VaultCipher: AES-256-GCM blobs for client-side persistence, keyed from
//     a shared secret via Argon2id and per-blob HKDF.
//   - SHA256Hex / HMACSHA256Hex / VerifyHMACSHA256Hex: digest helpers.
//
// Errors wrap the sentinels in package common: ErrConfiguration for bad key
// material, ErrEncryption for cipher failures and ErrStorageCorruption for
// blobs that cannot be opened.
package cryptox
