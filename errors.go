package encryptlog

import (
	"errors"
	"fmt"
)

// Error types represent different categories of errors

// ValidationError represents a configuration or parameter validation error
type ValidationError struct {
	Field   string // The field or parameter that failed validation
	Value   any    // The invalid value
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// EncryptionError represents a failure while sealing a payload
type EncryptionError struct {
	Counter uint64 // Call counter value at the time of the failure
	Message string // Human-readable error message
	Err     error  // Underlying error
}

func (e *EncryptionError) Error() string {
	return fmt.Sprintf("encrypt error (op %d): %s", e.Counter, e.Message)
}

func (e *EncryptionError) Unwrap() error {
	return e.Err
}

// DecryptionError represents a failure while opening an envelope: a wrong
// password, a tampered or corrupted ciphertext, or a malformed envelope.
// It deliberately carries no plaintext or key material.
type DecryptionError struct {
	Message string // Human-readable error message
	Err     error  // Underlying error
}

func (e *DecryptionError) Error() string {
	return fmt.Sprintf("decrypt error: %s", e.Message)
}

func (e *DecryptionError) Unwrap() error {
	return e.Err
}

// Common sentinel errors
var (
	ErrInvalidKey         = errors.New("invalid encryption key")
	ErrInvalidEnvelope    = errors.New("invalid ciphertext envelope")
	ErrAuthFailed         = errors.New("authentication failed - data may be corrupted or tampered")
	ErrUnsupportedVersion = errors.New("unsupported envelope format version")
	ErrUnsupportedCipher  = errors.New("unsupported cipher suite")
	ErrNilConfig          = errors.New("config cannot be nil")

	// ErrValueUnreadable is the failure shape a log database surfaces when it
	// cannot decode the value field of a stored entry. The detection heuristic
	// treats a read failure wrapping this sentinel as evidence of
	// replication-level encryption.
	ErrValueUnreadable = errors.New("entry value cannot be read")
)

// Helper functions for creating structured errors

// NewValidationError creates a new validation error
func NewValidationError(field string, value any, message string) error {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NewEncryptionError creates a new encryption error
func NewEncryptionError(counter uint64, err error) error {
	return &EncryptionError{
		Counter: counter,
		Message: err.Error(),
		Err:     err,
	}
}

// NewDecryptionError creates a new decryption error
func NewDecryptionError(err error) error {
	return &DecryptionError{
		Message: err.Error(),
		Err:     err,
	}
}

// Error checking helpers

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsEncryptionError checks if an error is an encryption error
func IsEncryptionError(err error) bool {
	var ee *EncryptionError
	return errors.As(err, &ee)
}

// IsDecryptionError checks if an error is a decryption error
func IsDecryptionError(err error) bool {
	var de *DecryptionError
	return errors.As(err, &de)
}
