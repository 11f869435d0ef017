package services

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordMismatch = errors.New("password mismatch")
	ErrSaltMismatch     = errors.New("password salt mismatch")
)

const legacyBlockSize = 32

// LegacyCipher reads and writes the password format of accounts migrated from the
// previous system: PKCS7 padding to 32 bytes, XOR with SHA-256(key), base64 with
// '+' and '/' swapped for '@' and '_'.
type LegacyCipher struct {
	key []byte
}

func NewLegacyCipher(key string) *LegacyCipher {
	sum := sha256.Sum256([]byte(key))
	return &LegacyCipher{key: sum[:]}
}

func (c *LegacyCipher) xor(in []byte) []byte {
	out := make([]byte, len(in))
	for i, b := range in {
		out[i] = b ^ c.key[i%len(c.key)]
	}
	return out
}

func (c *LegacyCipher) Encrypt(plaintext string) string {
	data := []byte(plaintext)
	pad := legacyBlockSize - len(data)%legacyBlockSize
	data = append(data, bytes.Repeat([]byte{byte(pad)}, pad)...)
	enc := base64.StdEncoding.EncodeToString(c.xor(data))
	return strings.NewReplacer("+", "@", "/", "_").Replace(enc)
}

func (c *LegacyCipher) Decrypt(ciphertext string) (string, error) {
	raw := strings.NewReplacer("@", "+", "_", "/").Replace(ciphertext)
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("decode legacy password: %w", err)
	}
	if len(data) == 0 || len(data)%legacyBlockSize != 0 {
		return "", errors.New("decode legacy password: bad length")
	}
	plain := c.xor(data)
	pad := int(plain[len(plain)-1])
	if pad == 0 || pad > legacyBlockSize || !bytes.Equal(plain[len(plain)-pad:], bytes.Repeat([]byte{byte(pad)}, pad)) {
		return "", errors.New("decode legacy password: bad padding")
	}
	return string(plain[:len(plain)-pad]), nil
}

// PasswordVerifier checks login passwords against stored hashes.
type PasswordVerifier struct {
	legacy *LegacyCipher
	salt   string
}

func NewPasswordVerifier(legacyKey, legacySalt string) *PasswordVerifier {
	return &PasswordVerifier{legacy: NewLegacyCipher(legacyKey), salt: legacySalt}
}

// Verify compares password with stored, which is either a bcrypt hash or a legacy
// cipher text holding "salt|password" or the bare password. Stored values that do
// not decode are compared as plaintext.
func (v *PasswordVerifier) Verify(stored, password string) error {
	if IsHashed(stored) {
		if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)); err != nil {
			return ErrPasswordMismatch
		}
		return nil
	}

	plain, err := v.legacy.Decrypt(stored)
	if err != nil {
		if stored != password {
			return ErrPasswordMismatch
		}
		return nil
	}
	if salt, real, ok := strings.Cut(plain, "|"); ok {
		if v.salt != "" && salt != v.salt {
			return ErrSaltMismatch
		}
		plain = real
	}
	if plain != password {
		return ErrPasswordMismatch
	}
	return nil
}

// HashPassword produces the hash stored for new accounts.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// IsHashed reports whether stored is a bcrypt hash rather than a legacy value.
func IsHashed(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
