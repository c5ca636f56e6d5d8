package encryptlog

import (
	"encoding/binary"
	"fmt"
)

const (
	// EnvelopeMagic identifies encryptlog ciphertext envelopes (ASCII: "ELOG")
	EnvelopeMagic = uint32(0x454C4F47)

	// CurrentVersion is the current envelope format version
	CurrentVersion = uint8(1)

	// minEnvelopeSize is the fixed prefix of an envelope:
	// 4 bytes (magic) + 1 byte (version) + 1 byte (cipher) + 2 bytes (salt size)
	minEnvelopeSize = 8
)

// envelope is the decoded form of the self-describing byte layout produced
// by Encrypt: everything Decrypt needs except the password.
type envelope struct {
	Cipher     CipherSuite
	Salt       []byte
	Nonce      []byte
	Ciphertext []byte // includes the authentication tag
}

// encodeEnvelope serializes an envelope:
// magic | version | cipher | salt size | salt | nonce size | nonce | ciphertext
func encodeEnvelope(cipher CipherSuite, salt, nonce, ciphertext []byte) []byte {
	size := minEnvelopeSize + len(salt) + 2 + len(nonce) + len(ciphertext)
	buf := make([]byte, 0, size)

	buf = binary.LittleEndian.AppendUint32(buf, EnvelopeMagic)
	buf = append(buf, CurrentVersion, uint8(cipher))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(salt)))
	buf = append(buf, salt...)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(nonce)))
	buf = append(buf, nonce...)
	buf = append(buf, ciphertext...)
	return buf
}

// parseEnvelope decodes and validates an envelope. Any framing problem is
// reported as ErrInvalidEnvelope; the caller folds it into a DecryptionError.
func parseEnvelope(data []byte) (*envelope, error) {
	if len(data) < minEnvelopeSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the envelope header", ErrInvalidEnvelope, len(data))
	}
	if binary.LittleEndian.Uint32(data[:4]) != EnvelopeMagic {
		return nil, fmt.Errorf("%w: bad magic bytes", ErrInvalidEnvelope)
	}
	if data[4] != CurrentVersion {
		return nil, fmt.Errorf("%w: version %d", ErrUnsupportedVersion, data[4])
	}

	cipher := CipherSuite(data[5])
	if cipher != CipherAES256GCM && cipher != CipherChaCha20Poly1305 {
		return nil, fmt.Errorf("%w: suite %d", ErrUnsupportedCipher, data[5])
	}

	rest := data[6:]
	saltSize := int(binary.LittleEndian.Uint16(rest))
	rest = rest[2:]
	if saltSize == 0 || len(rest) < saltSize+2 {
		return nil, fmt.Errorf("%w: truncated salt", ErrInvalidEnvelope)
	}
	salt := rest[:saltSize]
	rest = rest[saltSize:]

	nonceLen := int(binary.LittleEndian.Uint16(rest))
	rest = rest[2:]
	if nonceLen != nonceSize || len(rest) < nonceLen {
		return nil, fmt.Errorf("%w: truncated nonce", ErrInvalidEnvelope)
	}

	return &envelope{
		Cipher:     cipher,
		Salt:       salt,
		Nonce:      rest[:nonceLen],
		Ciphertext: rest[nonceLen:],
	}, nil
}

// IsEnvelope reports whether data begins with a well-formed encryptlog
// envelope header. Log stores use this to tell an encrypted payload from a
// plaintext one without attempting a decrypt.
func IsEnvelope(data []byte) bool {
	return len(data) >= minEnvelopeSize &&
		binary.LittleEndian.Uint32(data[:4]) == EnvelopeMagic &&
		data[4] == CurrentVersion
}
