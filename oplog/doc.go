// Package oplog is a minimal append-only, hash-linked log store with the
// pluggable-encryption slot encryptlog targets. Entries are persisted one
// file per content address on any absfs.FileSystem.
//
// Encryption is configured per role: the data role encrypts entry payloads
// only (the hash structure stays readable), while the replication role
// encrypts whole stored records. A log opened without the matching role
// surfaces exactly the observations encryptlog.IsDatabaseEncrypted
// classifies: absent values for data-level encryption, and a
// value-unreadable enumeration failure for replication-level encryption.
package oplog
