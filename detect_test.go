package encryptlog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeLog scripts the observable behaviors of a keyless log handle
type fakeLog struct {
	entries    []Entry
	err        error
	panicValue any
	derefNil   bool
}

func (f *fakeLog) All(ctx context.Context) ([]Entry, error) {
	if f.derefNil {
		// the shape a log hits when it reads a field of an entry it could
		// not decode
		var entry *Entry
		_ = entry.Value
	}
	if f.panicValue != nil {
		panic(f.panicValue)
	}
	return f.entries, f.err
}

func TestIsDatabaseEncrypted(t *testing.T) {
	hash := "zdpuAyvJre4WBeAGxUAJpBKx6mqNRCyzT1onhSZRvKjYzFEAE"

	tests := []struct {
		name string
		log  LogHandle
		want bool
	}{
		{
			name: "data encrypted: hashes present, values absent",
			log: &fakeLog{entries: []Entry{
				{Hash: hash + "1"},
				{Hash: hash + "2"},
				{Hash: hash + "3"},
			}},
			want: true,
		},
		{
			name: "unencrypted: values present",
			log: &fakeLog{entries: []Entry{
				{Hash: hash + "1", Value: []byte("record 1")},
				{Hash: hash + "2", Value: []byte("record 2")},
			}},
			want: false,
		},
		{
			name: "unencrypted: empty value is still a present value",
			log: &fakeLog{entries: []Entry{
				{Hash: hash, Value: []byte{}},
			}},
			want: false,
		},
		{
			name: "mixed entries are not classified as encrypted",
			log: &fakeLog{entries: []Entry{
				{Hash: hash + "1"},
				{Hash: hash + "2", Value: []byte("readable")},
			}},
			want: false,
		},
		{
			name: "entry without hash breaks the pattern",
			log:  &fakeLog{entries: []Entry{{Hash: ""}}},
			want: false,
		},
		{
			name: "empty log",
			log:  &fakeLog{},
			want: false,
		},
		{
			name: "replication encrypted: value-unreadable failure",
			log:  &fakeLog{err: fmt.Errorf("entry %s: %w", hash, ErrValueUnreadable)},
			want: true,
		},
		{
			name: "unrelated failure stays conservative",
			log:  &fakeLog{err: errors.New("connection reset by peer")},
			want: false,
		},
		{
			name: "nil handle",
			log:  nil,
			want: false,
		},
		{
			name: "decode nil dereference counts as encrypted",
			log:  &fakeLog{derefNil: true},
			want: true,
		},
		{
			name: "non-runtime panic stays conservative",
			log:  &fakeLog{panicValue: "storage backend exploded"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsDatabaseEncrypted(context.Background(), tt.log)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsDatabaseEncryptedNeverPanics(t *testing.T) {
	assert.NotPanics(t, func() {
		IsDatabaseEncrypted(context.Background(), &fakeLog{panicValue: errors.New("boom")})
	})
	assert.NotPanics(t, func() {
		IsDatabaseEncrypted(context.Background(), &fakeLog{derefNil: true})
	})
}
