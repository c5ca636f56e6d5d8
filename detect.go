package encryptlog

import (
	"context"
	"errors"
	"runtime"
)

// readFailureShape classifies the ways enumerating a keyless log can fail.
// Making the classification explicit keeps the detector's conservative bias
// auditable: exactly one shape counts as evidence of encryption.
type readFailureShape int

const (
	// readOK: the enumeration returned entries (possibly none)
	readOK readFailureShape = iota

	// readValueUnreadable: the log failed while decoding an entry's value
	// field, the characteristic shape of replication-level encryption: the
	// log cannot decode stored records at all, so its own access to a decoded
	// field fails before any entry is returned
	readValueUnreadable

	// readOther: any other failure; unclassified errors are never treated as
	// evidence of encryption, so unrelated infrastructure faults cannot
	// produce false positives
	readOther
)

// IsDatabaseEncrypted reports whether a log database that was opened without
// any encryption object appears to have been written with encryption enabled.
// Applications use it to decide whether to prompt for a password.
//
// The decision table, biased toward false whenever evidence is ambiguous:
//
//   - enumeration fails with the value-unreadable shape -> true
//   - enumeration fails any other way                   -> false
//   - log is empty                                      -> false
//   - every entry has a hash but no value               -> true (data-level encryption)
//   - anything else                                     -> false
//
// An empty log is indistinguishable from a fully encrypted one that also
// surfaces as empty; the false negative is accepted rather than risk
// misclassifying a legitimately empty, unencrypted log. No error or panic
// escapes this function.
func IsDatabaseEncrypted(ctx context.Context, log LogHandle) bool {
	entries, shape := readAll(ctx, log)

	switch shape {
	case readValueUnreadable:
		return true
	case readOther:
		return false
	}

	if len(entries) == 0 {
		return false
	}
	for _, entry := range entries {
		if entry.Hash == "" || entry.Value != nil {
			return false
		}
	}
	return true
}

// readAll enumerates the log and classifies the outcome. A panic out of the
// log's own decode path is folded into the classification rather than
// propagated: a runtime error (the nil-dereference a log hits when it reads a
// field of an entry it could not decode) counts as value-unreadable, anything
// else as an unclassified failure.
func readAll(ctx context.Context, log LogHandle) (entries []Entry, shape readFailureShape) {
	defer func() {
		if r := recover(); r != nil {
			entries = nil
			if _, ok := r.(runtime.Error); ok {
				shape = readValueUnreadable
			} else {
				shape = readOther
			}
		}
	}()

	if log == nil {
		return nil, readOther
	}

	entries, err := log.All(ctx)
	if err != nil {
		if errors.Is(err, ErrValueUnreadable) {
			return nil, readValueUnreadable
		}
		return nil, readOther
	}
	return entries, readOK
}
