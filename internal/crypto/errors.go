package crypto

import "errors"

var (
	// ErrInvalidKeySize is returned when a sealing key is not KeySize bytes.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrCiphertextTooShort is returned when sealed data cannot hold a nonce and tag.
	ErrCiphertextTooShort = errors.New("ciphertext too short")

	// ErrDecryptionFailed is returned when authentication of sealed data fails.
	ErrDecryptionFailed = errors.New("decryption failed")
)
