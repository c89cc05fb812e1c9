package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"

	"keylink/internal/domain"
)

// NonceBytes is the GCM nonce length prefixed to every envelope.
const NonceBytes = 12

func newGCM(key domain.SessionKey) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext under key with a fresh random nonce and returns
// nonce || ciphertext || tag.
func Seal(key domain.SessionKey, plaintext []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, NonceBytes, NonceBytes+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(out); err != nil {
		return nil, err
	}
	return aead.Seal(out, out[:NonceBytes], plaintext, nil), nil
}

// Encrypt seals plaintext and returns the envelope in its base64 text form.
func Encrypt(key domain.SessionKey, plaintext []byte) (string, error) {
	env, err := Seal(key, plaintext)
	if err != nil {
		return "", err
	}
	return B64(env), nil
}

// Decrypt opens an envelope produced by Seal.
func Decrypt(key domain.SessionKey, envelope []byte) ([]byte, error) {
	if len(envelope) <= NonceBytes {
		return nil, domain.ErrEnvelopeTooShort
	}
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, envelope[:NonceBytes], envelope[NonceBytes:], nil)
	if err != nil {
		return nil, domain.ErrAuthentication
	}
	return pt, nil
}

// DecryptText decodes a base64 envelope and opens it.
func DecryptText(key domain.SessionKey, text string) ([]byte, error) {
	env, err := UnB64(text)
	if err != nil {
		return nil, err
	}
	return Decrypt(key, env)
}
