package secret

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// Encryptor encrypts credential secrets at rest with AES-256-GCM.
type Encryptor struct {
	aead cipher.AEAD
}

// NewEncryptor derives a 32-byte key from the configured key material.
func NewEncryptor(keyMaterial string) (*Encryptor, error) {
	if keyMaterial == "" {
		return nil, fmt.Errorf("credential encryption key is not configured")
	}

	key := sha256.Sum256([]byte(keyMaterial))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Encryptor{aead: aead}, nil
}

// Encrypt seals the JSON encoding of the secret. Output is nonce||ciphertext.
func (e *Encryptor) Encrypt(s Secret) ([]byte, error) {
	plaintext, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, e.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	return e.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt opens a sealed secret and rebuilds the union variant for typ.
func (e *Encryptor) Decrypt(typ string, data []byte) (Secret, error) {
	if len(data) < e.aead.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := data[:e.aead.NonceSize()], data[e.aead.NonceSize():]
	plaintext, err := e.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt secret: %w", err)
	}

	var decoded interface{}
	if err := json.Unmarshal(plaintext, &decoded); err != nil {
		return nil, err
	}
	return Parse(typ, decoded)
}
