package encryptlog

import (
	"bytes"
	"testing"
)

func TestPBKDF2KeyDerivationDeterministic(t *testing.T) {
	provider := NewPasswordKeyProvider([]byte("test-password"), PBKDF2Params{Iterations: 1024})

	salt, err := provider.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt failed: %v", err)
	}
	if len(salt) != 32 {
		t.Errorf("salt length = %d, want 32", len(salt))
	}

	key1, err := provider.DeriveKey(salt)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	key2, err := provider.DeriveKey(salt)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	if !bytes.Equal(key1, key2) {
		t.Error("same password and salt produced different keys")
	}
	if len(key1) != 32 {
		t.Errorf("key length = %d, want 32", len(key1))
	}
}

func TestKeyDiffersAcrossSalts(t *testing.T) {
	provider := NewPasswordKeyProvider([]byte("test-password"), PBKDF2Params{Iterations: 1024})

	salt1, _ := provider.GenerateSalt()
	salt2, _ := provider.GenerateSalt()
	if bytes.Equal(salt1, salt2) {
		t.Fatal("GenerateSalt returned identical salts")
	}

	key1, err := provider.DeriveKey(salt1)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	key2, err := provider.DeriveKey(salt2)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	if bytes.Equal(key1, key2) {
		t.Error("different salts produced identical keys")
	}
}

func TestKeyDiffersAcrossPasswords(t *testing.T) {
	salt := bytes.Repeat([]byte{0x07}, 32)
	a := NewPasswordKeyProvider([]byte("password-a"), PBKDF2Params{Iterations: 1024})
	b := NewPasswordKeyProvider([]byte("password-b"), PBKDF2Params{Iterations: 1024})

	keyA, err := a.DeriveKey(salt)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	keyB, err := b.DeriveKey(salt)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	if bytes.Equal(keyA, keyB) {
		t.Error("different passwords produced identical keys")
	}
}

func TestDeriveKeyValidation(t *testing.T) {
	t.Run("empty password", func(t *testing.T) {
		provider := NewPasswordKeyProvider(nil, PBKDF2Params{Iterations: 1024})
		if _, err := provider.DeriveKey([]byte("salt")); err == nil {
			t.Error("expected error for empty password")
		}
	})

	t.Run("empty salt", func(t *testing.T) {
		provider := NewPasswordKeyProvider([]byte("pw"), PBKDF2Params{Iterations: 1024})
		if _, err := provider.DeriveKey(nil); err == nil {
			t.Error("expected error for empty salt")
		}
	})
}

func TestArgon2idDerivation(t *testing.T) {
	provider := NewPasswordKeyProviderArgon2id([]byte("test-password"), Argon2idParams{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
	})

	salt, err := provider.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt failed: %v", err)
	}

	key1, err := provider.DeriveKey(salt)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	key2, err := provider.DeriveKey(salt)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	if !bytes.Equal(key1, key2) {
		t.Error("Argon2id derivation not deterministic")
	}
	if len(key1) != 32 {
		t.Errorf("key length = %d, want 32", len(key1))
	}
}

func TestSHA512Variant(t *testing.T) {
	provider := NewPasswordKeyProvider([]byte("pw"), PBKDF2Params{
		Iterations: 1024,
		HashFunc:   SHA512,
	})
	sha256Provider := NewPasswordKeyProvider([]byte("pw"), PBKDF2Params{Iterations: 1024})

	salt := bytes.Repeat([]byte{0x09}, 32)
	key512, err := provider.DeriveKey(salt)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	key256, err := sha256Provider.DeriveKey(salt)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	if bytes.Equal(key512, key256) {
		t.Error("SHA-512 and SHA-256 variants produced identical keys")
	}
}
