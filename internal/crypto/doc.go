// Package crypto seals small secrets at rest and decodes base64 payloads
// returned by the postcard API.
//
// # Sealing
//
// [Seal] and [Open] use XChaCha20-Poly1305 with a random 24-byte nonce.
// The sealed format is: nonce (24 bytes) || ciphertext || tag (16 bytes).
// Keys are derived from a passphrase with [DeriveKey] (HKDF-SHA-256) so the
// same OAuth2 client secret always yields the same key:
//
//	key, err := crypto.DeriveKey([]byte(clientSecret), nil, []byte(crypto.TokenCacheContext))
//	sealed, err := crypto.Seal(key, plaintext)
//	plaintext, err := crypto.Open(key, sealed)
//
// Opening data that was sealed with another key, or that was modified,
// fails with [ErrDecryptionFailed].
//
// # Base64
//
// Preview images arrive base64 encoded. [DecodeBase64] accepts the standard
// and URL-safe alphabets, with or without padding.
package crypto
