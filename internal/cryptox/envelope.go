package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rsa"

	"github.com/dmitrijs2005/gophkms/internal/common"
)

// Envelope is a payload sealed with a fresh AES-256-GCM key. The key is
// wrapped for a resource's public key, so only holders of the resource's
// private key can open it.
type Envelope struct {
	Ciphertext []byte
	WrappedKey []byte
	Nonce      []byte
}

// Seal encrypts plaintext with a random file key and wraps that key for pub.
func Seal(pub *rsa.PublicKey, plaintext []byte) (*Envelope, error) {
	key, err := randomBytes(32)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce, err := randomBytes(aesgcm.NonceSize())
	if err != nil {
		return nil, err
	}
	ciphertext := aesgcm.Seal(nil, nonce, plaintext, nil)

	wrapped, err := WrapKey(pub, key)
	if err != nil {
		return nil, err
	}

	return &Envelope{Ciphertext: ciphertext, WrappedKey: wrapped, Nonce: nonce}, nil
}

// Open unwraps the file key with priv and decrypts the payload.
func Open(priv *rsa.PrivateKey, env *Envelope) ([]byte, error) {
	key, err := UnwrapKey(priv, env.WrappedKey)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return aesgcm.Open(nil, env.Nonce, env.Ciphertext, nil)
}
