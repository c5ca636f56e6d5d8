package encryptlog

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

const (
	// nonceSize is the AEAD nonce size shared by both cipher suites
	nonceSize = 12

	// noncePrefixSize is the random portion of the nonce, redrawn once per
	// interval of IVInterval operations
	noncePrefixSize = 8
)

// nonceSequencer turns a monotonic call counter into unique nonces.
//
// The counter space is partitioned into intervals of `interval` operations.
// The low 4 bytes of a nonce hold the counter's offset within its interval,
// so two operations in the same interval can never collide. The high 8 bytes
// hold a random prefix redrawn whenever the counter enters a new interval
// (including interval zero, on first use), so operations in different
// intervals collide only if two 64-bit random draws repeat. A fresh sequencer
// therefore never extends a previous process's nonce sequence even when the
// counter restarts at zero.
//
// The sequencer holds no lock of its own; the owning encryption object
// serializes access.
type nonceSequencer struct {
	interval   uint32
	prefix     [noncePrefixSize]byte
	prefixFor  uint64 // interval index the current prefix was drawn for
	havePrefix bool
}

func newNonceSequencer(interval uint32) (*nonceSequencer, error) {
	if interval == 0 {
		return nil, NewValidationError("ivInterval", interval, "interval must be positive")
	}
	return &nonceSequencer{interval: interval}, nil
}

// nonceAt returns the nonce for the given counter value. Calling it again
// with the same counter returns the same nonce, so a failed encrypt can be
// retried without advancing the counter.
func (s *nonceSequencer) nonceAt(counter uint64) ([]byte, error) {
	idx := counter / uint64(s.interval)
	if !s.havePrefix || idx != s.prefixFor {
		if _, err := rand.Read(s.prefix[:]); err != nil {
			return nil, fmt.Errorf("failed to generate nonce prefix: %w", err)
		}
		s.prefixFor = idx
		s.havePrefix = true
	}

	nonce := make([]byte, nonceSize)
	copy(nonce, s.prefix[:])
	binary.BigEndian.PutUint32(nonce[noncePrefixSize:], uint32(counter%uint64(s.interval)))
	return nonce, nil
}
