package encryptlog

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// CipherEngine provides AEAD encryption/decryption
type CipherEngine interface {
	// Encrypt encrypts plaintext with the given nonce
	Encrypt(nonce, plaintext []byte) ([]byte, error)

	// Decrypt decrypts ciphertext with the given nonce
	Decrypt(nonce, ciphertext []byte) ([]byte, error)

	// NonceSize returns the size of nonces in bytes
	NonceSize() int

	// Overhead returns the authentication tag size
	Overhead() int
}

// aeadEngine implements CipherEngine on top of any cipher.AEAD. Both
// supported suites use 12-byte nonces and 16-byte tags, so the only
// suite-specific code is construction.
type aeadEngine struct {
	suite CipherSuite
	aead  cipher.AEAD
}

// NewCipherEngine creates a new cipher engine for the given suite and key.
// CipherAuto resolves to AES-256-GCM.
func NewCipherEngine(suite CipherSuite, key []byte) (CipherEngine, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("%w: %s requires a 32-byte key, got %d bytes", ErrInvalidKey, suite, len(key))
	}

	switch suite {
	case CipherAES256GCM, CipherAuto:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create AES cipher: %w", err)
		}
		aead, err := cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("failed to create GCM: %w", err)
		}
		return &aeadEngine{suite: CipherAES256GCM, aead: aead}, nil
	case CipherChaCha20Poly1305:
		aead, err := chacha20poly1305.New(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create ChaCha20-Poly1305 cipher: %w", err)
		}
		return &aeadEngine{suite: suite, aead: aead}, nil
	default:
		return nil, ErrUnsupportedCipher
	}
}

// Encrypt seals plaintext under the given nonce, returning ciphertext
// with the authentication tag appended
func (e *aeadEngine) Encrypt(nonce, plaintext []byte) ([]byte, error) {
	if len(nonce) != e.aead.NonceSize() {
		return nil, fmt.Errorf("nonce must be %d bytes, got %d", e.aead.NonceSize(), len(nonce))
	}
	return e.aead.Seal(nil, nonce, plaintext, nil), nil
}

// Decrypt opens ciphertext under the given nonce, verifying the tag
func (e *aeadEngine) Decrypt(nonce, ciphertext []byte) ([]byte, error) {
	if len(nonce) != e.aead.NonceSize() {
		return nil, fmt.Errorf("nonce must be %d bytes, got %d", e.aead.NonceSize(), len(nonce))
	}
	plaintext, err := e.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthFailed
	}
	return plaintext, nil
}

// NonceSize returns the nonce size in bytes (12 for both suites)
func (e *aeadEngine) NonceSize() int {
	return e.aead.NonceSize()
}

// Overhead returns the authentication tag size (16 bytes)
func (e *aeadEngine) Overhead() int {
	return e.aead.Overhead()
}
