package encryptlog

import (
	"bytes"
	"testing"
)

func benchEncryption(b *testing.B) *Encryption {
	b.Helper()
	enc, err := New(&Config{
		KeyProvider: NewPasswordKeyProvider([]byte("benchmark-password"), PBKDF2Params{Iterations: 1024}),
	})
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}
	return enc
}

func BenchmarkEncrypt(b *testing.B) {
	enc := benchEncryption(b)
	payload := bytes.Repeat([]byte("x"), 1024)

	// prime the lazy key derivation
	if _, err := enc.Encrypt(payload); err != nil {
		b.Fatalf("Encrypt failed: %v", err)
	}

	b.SetBytes(int64(len(payload)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := enc.Encrypt(payload); err != nil {
			b.Fatalf("Encrypt failed: %v", err)
		}
	}
}

func BenchmarkDecrypt(b *testing.B) {
	enc := benchEncryption(b)
	payload := bytes.Repeat([]byte("x"), 1024)
	sealed, err := enc.Encrypt(payload)
	if err != nil {
		b.Fatalf("Encrypt failed: %v", err)
	}

	b.SetBytes(int64(len(payload)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := enc.Decrypt(sealed); err != nil {
			b.Fatalf("Decrypt failed: %v", err)
		}
	}
}

func BenchmarkDeriveKeyPBKDF2(b *testing.B) {
	provider := NewPasswordKeyProvider([]byte("benchmark-password"), PBKDF2Params{})
	salt, err := provider.GenerateSalt()
	if err != nil {
		b.Fatalf("GenerateSalt failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := provider.DeriveKey(salt); err != nil {
			b.Fatalf("DeriveKey failed: %v", err)
		}
	}
}
