package oplog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sync"

	"github.com/absfs/absfs"
	"github.com/google/uuid"

	"github.com/oplog/encryptlog"
)

// Encryptor is the pluggable-encryption contract the log consumes, per role.
// *encryptlog.Encryption satisfies it.
type Encryptor interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

// Options configures a log store
type Options struct {
	// FS is the backing filesystem
	FS absfs.FileSystem

	// Dir is the directory holding the log's manifest and entries
	Dir string

	// Data encrypts entry payloads. The hash-linked structure stays readable
	// without it, but payloads decode to absent values.
	Data Encryptor

	// Replication encrypts whole stored records. Without it an encrypted log
	// cannot be enumerated at all.
	Replication Encryptor
}

// record is the on-disk form of one entry. When the replication role is
// configured, the marshaled record itself is sealed before writing.
type record struct {
	Hash    string `json:"hash"`
	Prev    string `json:"prev"`
	Clock   uint64 `json:"clock"`
	Payload []byte `json:"payload"`
}

// manifest is the log's mutable root: identity, head pointer, entry count
type manifest struct {
	ID    string `json:"id"`
	Head  string `json:"head"`
	Count uint64 `json:"count"`
}

const (
	manifestFile = "manifest.json"
	entriesDir   = "entries"
)

var (
	ErrNilFS        = errors.New("backing filesystem cannot be nil")
	ErrEmptyDir     = errors.New("log directory cannot be empty")
	ErrNotFound     = errors.New("log not found")
	ErrCorruptChain = errors.New("hash chain verification failed")
)

// Log is an append-only, hash-linked entry store
type Log struct {
	fs   absfs.FileSystem
	dir  string
	data Encryptor
	repl Encryptor

	mu  sync.Mutex
	man manifest
}

// Create initializes a new empty log under opts.Dir
func Create(opts Options) (*Log, error) {
	l, err := newLog(opts)
	if err != nil {
		return nil, err
	}
	if err := l.fs.MkdirAll(path.Join(l.dir, entriesDir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	l.man = manifest{ID: uuid.NewString()}
	if err := l.writeManifest(); err != nil {
		return nil, err
	}
	return l, nil
}

// Open opens an existing log. Pass no encryptors to open without keys, e.g.
// for encryption detection.
func Open(opts Options) (*Log, error) {
	l, err := newLog(opts)
	if err != nil {
		return nil, err
	}
	raw, err := readFile(l.fs, path.Join(l.dir, manifestFile))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, opts.Dir)
	}
	if err := json.Unmarshal(raw, &l.man); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return l, nil
}

func newLog(opts Options) (*Log, error) {
	if opts.FS == nil {
		return nil, ErrNilFS
	}
	if opts.Dir == "" {
		return nil, ErrEmptyDir
	}
	return &Log{
		fs:   opts.FS,
		dir:  opts.Dir,
		data: opts.Data,
		repl: opts.Replication,
	}, nil
}

// ID returns the log's identity
func (l *Log) ID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.man.ID
}

// Head returns the content address of the newest entry, or "" for an empty log
func (l *Log) Head() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.man.Head
}

// Count returns the number of entries in the log
func (l *Log) Count() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.man.Count
}

// Append seals value per the configured roles and links it to the current
// head. The entry hash covers the stored payload, so chain integrity is
// verifiable without key material.
func (l *Log) Append(ctx context.Context, value []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if value == nil {
		return "", errors.New("value cannot be nil")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	payload := value
	if l.data != nil {
		sealed, err := l.data.Encrypt(value)
		if err != nil {
			return "", fmt.Errorf("failed to encrypt value: %w", err)
		}
		payload = sealed
	}

	hash := entryHash(l.man.Head, payload)
	rec := record{
		Hash:    hash,
		Prev:    l.man.Head,
		Clock:   l.man.Count,
		Payload: payload,
	}

	stored, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("failed to encode record: %w", err)
	}
	if l.repl != nil {
		stored, err = l.repl.Encrypt(stored)
		if err != nil {
			return "", fmt.Errorf("failed to encrypt record: %w", err)
		}
	}

	if err := writeFile(l.fs, path.Join(l.dir, entriesDir, hash), stored); err != nil {
		return "", err
	}

	prevMan := l.man
	l.man.Head = hash
	l.man.Count++
	if err := l.writeManifest(); err != nil {
		l.man = prevMan
		return "", err
	}
	return hash, nil
}

// Get reads one raw stored record by content address, before any decoding.
// This is the "read raw bytes at a content address" capability.
func (l *Log) Get(ctx context.Context, hash string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return readFile(l.fs, path.Join(l.dir, entriesDir, hash))
}

// All enumerates decoded entries oldest-first.
//
// A record that cannot be decoded at all (the replication role was used at
// write time and this handle has no replication encryptor) fails the whole
// enumeration with an error wrapping encryptlog.ErrValueUnreadable. A payload
// that cannot be decrypted (data role missing or wrong password) degrades to
// an absent value for that entry only.
func (l *Log) All(ctx context.Context) ([]encryptlog.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var entries []encryptlog.Entry
	for hash := l.man.Head; hash != ""; {
		rec, err := l.readRecord(hash)
		if err != nil {
			return nil, err
		}
		entries = append(entries, encryptlog.Entry{
			Hash:  rec.Hash,
			Value: l.decodeValue(rec.Payload),
		})
		hash = rec.Prev
	}

	// head-to-tail walk yields newest first
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// readRecord loads, unseals, decodes, and chain-verifies one stored record
func (l *Log) readRecord(hash string) (*record, error) {
	stored, err := readFile(l.fs, path.Join(l.dir, entriesDir, hash))
	if err != nil {
		return nil, fmt.Errorf("failed to read entry %s: %w", hash, err)
	}

	if l.repl != nil {
		stored, err = l.repl.Decrypt(stored)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt entry %s: %w", hash, err)
		}
	}

	var rec record
	if err := json.Unmarshal(stored, &rec); err != nil {
		return nil, fmt.Errorf("entry %s: %w", hash, encryptlog.ErrValueUnreadable)
	}
	if entryHash(rec.Prev, rec.Payload) != rec.Hash || rec.Hash != hash {
		return nil, fmt.Errorf("entry %s: %w", hash, ErrCorruptChain)
	}
	return &rec, nil
}

// decodeValue recovers the plaintext value from a stored payload, or nil
// when the payload is sealed and this handle cannot open it
func (l *Log) decodeValue(payload []byte) []byte {
	if l.data != nil {
		value, err := l.data.Decrypt(payload)
		if err != nil {
			return nil
		}
		return value
	}
	if encryptlog.IsEnvelope(payload) {
		return nil
	}
	return payload
}

func (l *Log) writeManifest() error {
	raw, err := json.Marshal(l.man)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	return writeFile(l.fs, path.Join(l.dir, manifestFile), raw)
}

// entryHash computes the content address of an entry over its link and its
// stored payload
func entryHash(prev string, payload []byte) string {
	h := sha256.New()
	h.Write([]byte(prev))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

func readFile(fs absfs.FileSystem, name string) ([]byte, error) {
	f, err := fs.OpenFile(name, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func writeFile(fs absfs.FileSystem, name string, data []byte) error {
	f, err := fs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
