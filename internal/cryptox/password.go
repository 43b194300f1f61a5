package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophkms/internal/common"
	"golang.org/x/crypto/argon2"
)

var ErrMalformedHash = errors.New("malformed password hash")

// randomBytes supplies salts, file keys and nonces.
var randomBytes = common.GenerateRandByteArray

// Argon2Params controls the cost of argon2id password derivation.
type Argon2Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	SaltLen uint32
	KeyLen  uint32
}

// DefaultArgon2Params are the production settings.
var DefaultArgon2Params = Argon2Params{
	Time:    1,
	Memory:  64 * 1024,
	Threads: 4,
	SaltLen: 16,
	KeyLen:  32,
}

// PasswordHasher hashes and verifies passwords with argon2id. Hashes are
// self-describing ($argon2id$v=19$m=..,t=..,p=..$salt$key), so a change
// of parameters does not invalidate stored hashes.
type PasswordHasher struct {
	params Argon2Params
}

func NewPasswordHasher(p Argon2Params) *PasswordHasher {
	return &PasswordHasher{params: p}
}

func deriveKey(password, salt []byte, t, m uint32, p uint8, keyLen uint32) []byte {
	return argon2.IDKey(password, salt, t, m, p, keyLen)
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	salt, err := randomBytes(int(h.params.SaltLen))
	if err != nil {
		return "", fmt.Errorf("salt: %w", err)
	}
	key := deriveKey([]byte(password), salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory, h.params.Time, h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether password matches the encoded hash. A malformed
// hash never matches.
func (h *PasswordHasher) Verify(password, encoded string) bool {
	p, salt, want, err := decodeHash(encoded)
	if err != nil {
		return false
	}
	got := deriveKey([]byte(password), salt, p.Time, p.Memory, p.Threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}

func decodeHash(encoded string) (Argon2Params, []byte, []byte, error) {
	var p Argon2Params

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return p, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, ErrMalformedHash
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return p, nil, nil, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, ErrMalformedHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, ErrMalformedHash
	}

	p.SaltLen = uint32(len(salt))
	p.KeyLen = uint32(len(key))
	return p, salt, key, nil
}
