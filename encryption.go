package encryptlog

import (
	"fmt"
	"sync"
)

// Encryption is a password-keyed encryption object conforming to the
// pluggable-encryption contract of an append-only log database: the log calls
// Encrypt before persisting a record and Decrypt after reading one.
//
// Each Encryption owns its own call counter and key-derivation salt. Two
// objects constructed with the same password do not coordinate nonces; their
// independence is safe because every object draws fresh random nonce
// prefixes (see nonceSequencer).
type Encryption struct {
	cipher   CipherSuite
	provider KeyProvider
	interval uint32

	// seal path: counter, sequencer, and the per-object salt/engine.
	// The host log serializes writes per database instance; the mutex makes
	// the counter's nonce-uniqueness invariant hold even if it does not.
	mu         sync.Mutex
	counter    uint64
	seq        *nonceSequencer
	salt       []byte
	sealEngine CipherEngine

	// open path: engines cached per (cipher, salt) so streams of envelopes
	// written under one salt pay the derivation cost once
	engineMu    sync.Mutex
	engineCache map[string]CipherEngine
}

// maxCachedEngines bounds the decrypt-side key cache. Envelopes from one
// writer share a salt, so the cache rarely holds more than a handful.
const maxCachedEngines = 16

// New creates an encryption object from the given configuration.
//
// Construction validates inputs and draws the per-object salt, but performs
// no password-dependent work: key derivation is deferred to the first
// encrypt or decrypt call.
func New(config *Config) (*Encryption, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	cipher := config.Cipher
	if cipher == CipherAuto {
		cipher = CipherAES256GCM
	}

	provider := config.KeyProvider
	if provider == nil {
		provider = NewPasswordKeyProvider(config.Password, PBKDF2Params{})
	}

	interval := config.IVInterval
	if interval == 0 {
		interval = DefaultIVInterval
	}
	seq, err := newNonceSequencer(interval)
	if err != nil {
		return nil, err
	}

	salt, err := provider.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	return &Encryption{
		cipher:      cipher,
		provider:    provider,
		interval:    interval,
		seq:         seq,
		salt:        salt,
		engineCache: make(map[string]CipherEngine),
	}, nil
}

// NewWithPassword creates an encryption object with default parameters from
// a bare password
func NewWithPassword(password []byte) (*Encryption, error) {
	return New(&Config{Password: password})
}

// IVInterval returns the number of operations that share one random nonce
// prefix. Read-only; fixed for the lifetime of the object.
func (e *Encryption) IVInterval() uint32 {
	return e.interval
}

// Encrypt seals plaintext into a self-describing envelope under the key
// derived from this object's password.
//
// The call counter advances only on success; a failed call leaves the object
// exactly as it was. A nil plaintext is rejected with a ValidationError
// (empty payloads are valid).
func (e *Encryption) Encrypt(plaintext []byte) ([]byte, error) {
	if err := ValidateBuffer(plaintext, "plaintext", 0); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sealEngine == nil {
		engine, err := e.engineFor(e.cipher, e.salt)
		if err != nil {
			return nil, NewEncryptionError(e.counter, err)
		}
		e.sealEngine = engine
	}

	nonce, err := e.seq.nonceAt(e.counter)
	if err != nil {
		return nil, NewEncryptionError(e.counter, err)
	}

	ciphertext, err := e.sealEngine.Encrypt(nonce, plaintext)
	if err != nil {
		return nil, NewEncryptionError(e.counter, err)
	}

	env := encodeEnvelope(e.cipher, e.salt, nonce, ciphertext)
	e.counter++
	return env, nil
}

// Decrypt opens an envelope previously produced by Encrypt under the same
// password. It is read-only and safe to call concurrently.
//
// Failure modes collapse to a DecryptionError: malformed envelope framing,
// and tag verification failure (wrong password, corruption, tampering).
// Decrypt never returns partial plaintext.
func (e *Encryption) Decrypt(data []byte) ([]byte, error) {
	if err := ValidateBuffer(data, "ciphertext", 0); err != nil {
		return nil, err
	}

	env, err := parseEnvelope(data)
	if err != nil {
		return nil, NewDecryptionError(err)
	}

	engine, err := e.engineFor(env.Cipher, env.Salt)
	if err != nil {
		return nil, NewDecryptionError(err)
	}

	plaintext, err := engine.Decrypt(env.Nonce, env.Ciphertext)
	if err != nil {
		return nil, NewDecryptionError(err)
	}
	return plaintext, nil
}

// engineFor returns a cipher engine for the given suite and salt, deriving
// and caching the key on first use
func (e *Encryption) engineFor(cipher CipherSuite, salt []byte) (CipherEngine, error) {
	cacheKey := string([]byte{byte(cipher)}) + string(salt)

	e.engineMu.Lock()
	defer e.engineMu.Unlock()

	if engine, ok := e.engineCache[cacheKey]; ok {
		return engine, nil
	}

	engine, err := e.buildEngine(cipher, salt)
	if err != nil {
		return nil, err
	}

	if len(e.engineCache) >= maxCachedEngines {
		for k := range e.engineCache {
			delete(e.engineCache, k)
			break
		}
	}
	e.engineCache[cacheKey] = engine
	return engine, nil
}

// buildEngine derives the key for the given salt and wraps it in a cipher
// engine. The derived key never leaves this method.
func (e *Encryption) buildEngine(cipher CipherSuite, salt []byte) (CipherEngine, error) {
	key, err := e.provider.DeriveKey(salt)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return NewCipherEngine(cipher, key)
}
