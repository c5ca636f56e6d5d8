// Package encryptlog provides password-based authenticated encryption for
// append-only log databases, plus a heuristic to detect, without any key
// material, whether an existing log was written with encryption enabled.
//
// # Overview
//
// encryptlog fills the pluggable-encryption slot of a hash-linked append-only
// log store. The log calls Encrypt before persisting a record and Decrypt
// after reading one; encryptlog owns key derivation, nonce management across
// an unbounded sequence of encrypt calls, and the ciphertext envelope format.
//
// # Supported Cipher Suites
//
// - AES-256-GCM: Advanced Encryption Standard with 256-bit keys and
//   Galois/Counter Mode for authenticated encryption
// - ChaCha20-Poly1305: Modern stream cipher with Poly1305 message
//   authentication
//
// Both cipher suites provide:
//   - Authenticated Encryption with Associated Data (AEAD)
//   - Protection against tampering and corruption
//   - 128-bit authentication tags
//
// # Basic Usage
//
//	enc, err := encryptlog.New(&encryptlog.Config{
//	    Password: []byte("my-secure-password"),
//	})
//	if err != nil {
//	    panic(err)
//	}
//
//	sealed, _ := enc.Encrypt([]byte("record 1"))
//	plain, _ := enc.Decrypt(sealed)
//
// # Nonce Management
//
// Every encryption object owns a monotonic call counter starting at zero.
// The nonce space is partitioned into intervals of IVInterval operations:
// within an interval the counter's low-order value supplies uniqueness
// deterministically, and every time the counter crosses an interval boundary
// a fresh random prefix is mixed in. Each object also starts with a fresh
// random prefix, so nonce uniqueness survives process restarts even when the
// same password is reused. Two independently constructed objects never
// coordinate counters; they remain safe because their nonce prefixes are
// independent random draws.
//
// # Key Derivation
//
// The package supports two key derivation functions:
//
// PBKDF2 (default):
//   - Widely supported and FIPS-approved
//   - CPU-intensive only (vulnerable to GPU attacks)
//
// Argon2id:
//   - Memory-hard function (resistant to GPU/ASIC attacks)
//   - Configurable memory, time, and parallelism
//
// Key derivation is deferred until first use; constructing an encryption
// object performs no password-dependent work. Derived keys are cached per
// salt so a stream of envelopes written under one salt pays the derivation
// cost once.
//
// # Envelope Format
//
// Encrypt returns a self-describing envelope:
//   - Magic bytes (4 bytes): "ELOG" (0x454C4F47)
//   - Version (1 byte): envelope format version
//   - Cipher suite (1 byte): identifies the encryption algorithm
//   - Salt size (2 bytes) and salt: key-derivation salt
//   - Nonce size (2 bytes) and nonce
//   - Ciphertext (variable): encrypted data + authentication tag
//
// Decrypt needs nothing beyond the envelope and the password. Envelopes are
// only guaranteed to round-trip with this package; the layout is not a wire
// compatibility contract with other implementations.
//
// # Encryption Detection
//
// IsDatabaseEncrypted classifies a log that was opened without keys. It never
// returns an error: every ambiguous observation (empty log, unclassified read
// failure) folds to "not encrypted" so that infrastructure faults are never
// mistaken for encryption.
//
// # Security Considerations
//
// Protected against:
//   - Unauthorized access to log payloads at rest
//   - Data tampering and corruption (authenticated encryption)
//   - Offline brute-force attacks (tunable key derivation)
//
// Not protected against:
//   - Memory dumps while payloads are decrypted in memory
//   - Side-channel attacks (timing, cache)
//   - Metadata leakage (entry counts, payload sizes, hash structure)
package encryptlog
