package encryptlog

import "context"

// CipherSuite represents the encryption algorithm to use
type CipherSuite uint8

const (
	// CipherAuto automatically selects the best cipher based on hardware capabilities
	CipherAuto CipherSuite = iota
	// CipherAES256GCM uses AES-256 with Galois/Counter Mode
	CipherAES256GCM
	// CipherChaCha20Poly1305 uses ChaCha20 stream cipher with Poly1305 MAC
	CipherChaCha20Poly1305
)

// String returns the string representation of the cipher suite
func (c CipherSuite) String() string {
	switch c {
	case CipherAuto:
		return "auto"
	case CipherAES256GCM:
		return "aes-256-gcm"
	case CipherChaCha20Poly1305:
		return "chacha20-poly1305"
	default:
		return "unknown"
	}
}

// HashFunc represents hash function types for PBKDF2
type HashFunc uint8

const (
	// SHA256 hash function
	SHA256 HashFunc = iota
	// SHA512 hash function
	SHA512
)

// PBKDF2Params contains parameters for PBKDF2 key derivation
type PBKDF2Params struct {
	Iterations int      // Number of iterations (minimum 100,000 recommended)
	HashFunc   HashFunc // Hash function to use
	SaltSize   int      // Salt size in bytes (default 32)
	KeySize    int      // Derived key size in bytes (default 32 for AES-256)
}

// Argon2idParams contains parameters for Argon2id key derivation
type Argon2idParams struct {
	Memory      uint32 // Memory in KiB (e.g., 64*1024 for 64MB)
	Iterations  uint32 // Number of iterations (time parameter)
	Parallelism uint8  // Degree of parallelism
	SaltSize    int    // Salt size in bytes (default 32)
	KeySize     int    // Derived key size in bytes (default 32 for AES-256)
}

// DefaultIVInterval is the number of encrypt operations that share one random
// nonce prefix before a fresh prefix is drawn.
const DefaultIVInterval uint32 = 100

// Config contains configuration for an encryption object
type Config struct {
	// Password is the secret the encryption key is derived from.
	// Required unless KeyProvider is set. Never logged, never serialized.
	Password []byte

	// Cipher suite to use for encryption
	Cipher CipherSuite

	// KeyProvider supplies encryption keys. When nil, a PBKDF2 provider is
	// built from Password with default parameters.
	KeyProvider KeyProvider

	// IVInterval overrides DefaultIVInterval when non-zero
	IVInterval uint32
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}
	if c.KeyProvider == nil && len(c.Password) == 0 {
		return NewValidationError("password", nil, "password is required")
	}
	if c.Cipher != CipherAES256GCM && c.Cipher != CipherChaCha20Poly1305 && c.Cipher != CipherAuto {
		return NewValidationError("cipher", c.Cipher, "unsupported cipher suite")
	}
	return nil
}

// KeyProvider is an interface for providing encryption keys
type KeyProvider interface {
	// DeriveKey derives an encryption key from the given salt
	DeriveKey(salt []byte) ([]byte, error)

	// GenerateSalt generates a new random salt
	GenerateSalt() ([]byte, error)
}

// Entry is one decoded record of the external log, as seen by the detection
// heuristic. A nil Value means the log could not (or did not) decode the
// payload; an empty non-nil Value is a present, zero-length payload.
type Entry struct {
	Hash  string
	Value []byte
}

// LogHandle is the read surface the detection heuristic consumes: a log
// database opened without any encryption object.
type LogHandle interface {
	// All enumerates every decoded entry in the log
	All(ctx context.Context) ([]Entry, error)
}
