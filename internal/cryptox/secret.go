package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/dmitrijs2005/gophkms/internal/common"
)

const (
	codeMin = 100000
	codeMax = 999999

	tokenBytes = 32
)

// GenerateCode returns a six-digit one-time code drawn uniformly
// from [100000, 999999].
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}

// CodesEqual compares two one-time codes in constant time.
func CodesEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// GenerateToken returns an opaque session token with 256 bits of entropy.
func GenerateToken() (string, error) {
	return common.MakeRandHexString(tokenBytes)
}

// TokenDigest is the storage form of a session token.
func TokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
