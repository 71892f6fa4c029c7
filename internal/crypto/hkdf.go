package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// TokenCacheContext is the HKDF info string for keys sealing cached tokens.
const TokenCacheContext = "postcard:token-cache:v1"

// DeriveKey derives a KeySize key from secret using HKDF-SHA-256.
// A nil salt is replaced by a zero salt of hash length.
func DeriveKey(secret, salt, info []byte) ([]byte, error) {
	if len(salt) == 0 {
		salt = make([]byte, sha256.Size)
	}

	reader := hkdf.New(sha256.New, secret, salt, info)
	key := make([]byte, KeySize)

	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	return key, nil
}
