// Package vault provides password-based authenticated encryption for backup
// blobs. A fresh salt and nonce are generated per call, so encrypting the
// same plaintext twice yields different ciphertext — a required property of
// the envelope format, not an accident.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Version is the current envelope format version. A mismatch on decrypt is
// fatal and reported before any cryptographic work.
const Version = 1

const (
	saltSize     = 16
	nonceSize    = 12
	keySize      = 32
	iterations   = 100_000
	checksumSize = 16
)

var (
	// ErrInvalidEnvelope marks input that is structurally not an envelope.
	ErrInvalidEnvelope = errors.New("vault: invalid envelope structure")
	// ErrUnsupportedVersion marks an envelope from a newer or unknown format.
	ErrUnsupportedVersion = errors.New("vault: unsupported envelope version")
	// ErrDecryptFailed deliberately does not distinguish a wrong password
	// from corrupted or tampered data.
	ErrDecryptFailed = errors.New("vault: incorrect password or corrupted data")
	// ErrIntegrity marks a plaintext checksum mismatch after a successful
	// AEAD open. It indicates a processing bug, not a user password error.
	ErrIntegrity = errors.New("vault: integrity check failed")
)

// Envelope is the versioned container wrapping ciphertext plus the
// parameters needed to decrypt it. All binary fields are base64 encoded. No
// plaintext is ever persisted alongside it.
type Envelope struct {
	Version  int    `json:"version"`
	Salt     string `json:"salt"`
	IV       string `json:"iv"`
	Data     string `json:"data"`
	Checksum string `json:"checksum"`
}

// Encrypt seals plaintext under a key derived from the password. The
// envelope additionally carries a truncated SHA-256 checksum of the
// plaintext as an integrity check beyond the AEAD tag.
func Encrypt(plaintext []byte, password string) (*Envelope, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	aead, err := newAEAD(password, salt)
	if err != nil {
		return nil, err
	}

	ciphertext := aead.Seal(nil, nonce, plaintext, nil)
	checksum := sha256.Sum256(plaintext)

	return &Envelope{
		Version:  Version,
		Salt:     base64.StdEncoding.EncodeToString(salt),
		IV:       base64.StdEncoding.EncodeToString(nonce),
		Data:     base64.StdEncoding.EncodeToString(ciphertext),
		Checksum: base64.StdEncoding.EncodeToString(checksum[:checksumSize]),
	}, nil
}

// Decrypt opens an envelope. Failure modes are distinct: an unsupported
// version fails before any key derivation, any AEAD or decoding failure
// collapses into ErrDecryptFailed, and a checksum mismatch after successful
// decryption surfaces as ErrIntegrity.
func Decrypt(env *Envelope, password string) ([]byte, error) {
	if env.Version != Version {
		return nil, fmt.Errorf("%w: got version %d", ErrUnsupportedVersion, env.Version)
	}

	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	nonce, err := base64.StdEncoding.DecodeString(env.IV)
	if err != nil || len(nonce) != nonceSize {
		return nil, ErrDecryptFailed
	}
	ciphertext, err := base64.StdEncoding.DecodeString(env.Data)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	storedChecksum, err := base64.StdEncoding.DecodeString(env.Checksum)
	if err != nil {
		return nil, ErrDecryptFailed
	}

	aead, err := newAEAD(password, salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}

	checksum := sha256.Sum256(plaintext)
	if subtle.ConstantTimeCompare(checksum[:checksumSize], storedChecksum) != 1 {
		return nil, ErrIntegrity
	}

	return plaintext, nil
}

// ParseEnvelope structurally validates arbitrary JSON before any
// cryptographic operation: the five envelope fields must be present with
// correct primitive types. Guards against feeding non-envelope documents
// into the decrypt path.
func ParseEnvelope(raw []byte) (*Envelope, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
	}

	var env Envelope
	if err := jsonField(fields, "version", &env.Version); err != nil {
		return nil, err
	}
	for name, dst := range map[string]*string{
		"salt":     &env.Salt,
		"iv":       &env.IV,
		"data":     &env.Data,
		"checksum": &env.Checksum,
	} {
		if err := jsonField(fields, name, dst); err != nil {
			return nil, err
		}
	}
	return &env, nil
}

func jsonField[T any](fields map[string]json.RawMessage, name string, dst *T) error {
	raw, ok := fields[name]
	if !ok {
		return fmt.Errorf("%w: missing field %q", ErrInvalidEnvelope, name)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: field %q has wrong type", ErrInvalidEnvelope, name)
	}
	return nil
}

// newAEAD derives a 256-bit key from password and salt via PBKDF2-SHA256 and
// wraps it in AES-GCM.
func newAEAD(password string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(password), salt, iterations, keySize, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("initializing cipher: %w", err)
	}
	return cipher.NewGCM(block)
}
